//go:build windows

package tray

// trayIcon returns the icon in the ICO format the Windows shell expects
func trayIcon() []byte {
	return wrapICO(pngIcon(iconSize), iconSize)
}
