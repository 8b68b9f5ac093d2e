//go:build linux

package autostart

import "os"

// Enable writes an XDG autostart entry
func Enable() error {
	cmd, err := command()
	if err != nil {
		return err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	content, err := desktopEntry(cmd)
	if err != nil {
		return err
	}
	return writeEntry(desktopEntryPath(home), content)
}

// Disable removes the autostart entry
func Disable() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return removeEntry(desktopEntryPath(home))
}

// IsEnabled reports whether the autostart entry exists
func IsEnabled() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	return entryExists(desktopEntryPath(home))
}
