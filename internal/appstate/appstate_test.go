package appstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), FileName))
	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
	assert.False(t, st.Window.HasGeometry())
}

func TestSaveLoad(t *testing.T) {
	s := NewStore(DefaultPath(filepath.Join(t.TempDir(), "sub")))

	want := State{
		Window: Window{Left: 10, Top: 1090, Width: 1900.5, Height: 1060, Fullscreen: true},
		Layout: Layout{TrackpadWidth: 420, NumpadVisible: true},
	}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Window.HasGeometry())
}

func TestLoadHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `[window]
left = -1920
top = 0
width = 1280
height = 720

[layout]
numpad_visible = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, -1920.0, got.Window.Left)
	assert.Equal(t, 1280.0, got.Window.Width)
	assert.False(t, got.Window.Fullscreen)
	assert.True(t, got.Layout.NumpadVisible)
	assert.Zero(t, got.Layout.TrackpadWidth)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[window\nleft = 1\n"), 0644))

	got, err := NewStore(path).Load()
	assert.Error(t, err)
	assert.Equal(t, State{}, got)
}
