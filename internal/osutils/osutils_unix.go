//go:build !windows

package osutils

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// IsAdmin reports whether the process runs as root
func IsAdmin() bool {
	return os.Geteuid() == 0
}

// OpenPath opens a file or URL with the desktop's default application
func OpenPath(path string) error {
	name, args := openCommand(runtime.GOOS, path)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
