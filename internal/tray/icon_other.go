//go:build !windows

package tray

func trayIcon() []byte {
	return pngIcon(iconSize)
}
