//go:build !windows && !darwin && !linux

package hotkey

import (
	"context"
	"errors"
)

func (m *Manager) startPlatform(ctx context.Context) error {
	return errors.New("global hotkeys are not supported on this platform")
}
