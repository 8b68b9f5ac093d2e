package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBufferedBeforeRun(t *testing.T) {
	tr := New("TKM", "Touch Keyboard & Mouse", "Posture: Detecting...")
	assert.Equal(t, "Posture: Detecting...", tr.Status())

	tr.SetPostureStatus("Posture: Single Screen")
	tr.SetTooltip("TKM - Hidden (Side-by-Side mode)")
	tr.Notify("Keyboard Hidden", "switched to side-by-side")

	assert.Equal(t, "Posture: Single Screen", tr.Status())
	assert.Equal(t, "TKM - Hidden (Side-by-Side mode)", tr.Tooltip())
}

func TestMenuItemsBeforeRun(t *testing.T) {
	tr := New("TKM", "", "")
	show := tr.AddMenuItem("Show Keyboard", func() {})
	tr.AddSeparator()
	quit := tr.AddMenuItem("Quit", func() {})

	assert.Equal(t, 0, show)
	assert.Equal(t, 2, quit)

	tr.SetItemChecked(show, true)
	assert.True(t, tr.items[show].checked)

	// separators and out of range ids are ignored
	assert.NotPanics(t, func() {
		tr.SetItemChecked(1, true)
		tr.SetItemChecked(9, true)
	})
}

func TestIconIsPNG(t *testing.T) {
	data := pngIcon(iconSize)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())
	assert.Equal(t, iconSize, img.Bounds().Dy())

	// corners stay transparent, the body is opaque
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
	_, _, _, a = img.At(iconSize/2, iconSize/2).RGBA()
	assert.NotZero(t, a)
}

func TestWrapICO(t *testing.T) {
	data := pngIcon(iconSize)
	ico := wrapICO(data, iconSize)

	require.Len(t, ico, 22+len(data))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[2:4]), "type icon")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[4:6]), "one image")
	assert.Equal(t, byte(iconSize), ico[6])
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(ico[14:18]))
	assert.Equal(t, uint32(22), binary.LittleEndian.Uint32(ico[18:22]))
	assert.Equal(t, data, ico[22:])
}
