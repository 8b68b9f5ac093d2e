//go:build linux

package display

import (
	"fmt"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// xrandrEnumerator lists displays through the xrandr tool
type xrandrEnumerator struct {
	toolPath string
}

// NewEnumerator creates the platform display enumerator
func NewEnumerator() (Enumerator, error) {
	paths := []string{
		"xrandr", // In PATH
		"/usr/bin/xrandr",
		"/usr/local/bin/xrandr",
	}
	for _, p := range paths {
		if path, err := exec.LookPath(p); err == nil {
			return &xrandrEnumerator{toolPath: path}, nil
		}
	}
	return nil, ErrToolNotFound
}

func (e *xrandrEnumerator) ListDisplays() ([]DisplayInfo, error) {
	output, err := exec.Command(e.toolPath, "--query").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}

	displays, err := parseXrandr(string(output))
	if err != nil {
		return nil, err
	}
	if len(displays) == 0 {
		return nil, ErrNoDisplays
	}

	log.Debugf("Display: xrandr reported %d active outputs", len(displays))
	return displays, nil
}
