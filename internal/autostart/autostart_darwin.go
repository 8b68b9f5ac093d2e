//go:build darwin

package autostart

import "os"

// Enable installs a launch agent that runs on login
func Enable() error {
	cmd, err := command()
	if err != nil {
		return err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	content, err := launchAgentPlist(cmd)
	if err != nil {
		return err
	}
	return writeEntry(launchAgentPath(home), content)
}

// Disable removes the launch agent
func Disable() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return removeEntry(launchAgentPath(home))
}

// IsEnabled reports whether the launch agent is installed
func IsEnabled() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	return entryExists(launchAgentPath(home))
}
