//go:build linux

package autostart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableDisableXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))

	assert.False(t, IsEnabled())
	require.NoError(t, Enable())
	assert.True(t, IsEnabled())
	assert.FileExists(t, filepath.Join(dir, "cfg", "autostart", "tkm.desktop"))

	require.NoError(t, Disable())
	assert.False(t, IsEnabled())
}
