package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xrandrBookLayout = `Screen 0: minimum 320 x 200, current 1920 x 2280, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 290mm x 170mm
   1920x1080     60.00*+  59.97    48.00
   1680x1050     59.95
eDP-2 connected 1920x1200+0+1080 (normal left inverted right x axis y axis) 290mm x 180mm
   1920x1200     60.00*+
HDMI-1 disconnected (normal left inverted right x axis y axis)
DP-1 connected (normal left inverted right x axis y axis)
   2560x1440     59.95 +
`

func TestParseXrandr(t *testing.T) {
	displays, err := parseXrandr(xrandrBookLayout)
	require.NoError(t, err)
	require.Len(t, displays, 2)

	assert.Equal(t, DisplayInfo{
		ID:       "eDP-1",
		Bounds:   Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080},
		WorkArea: Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080},
		Primary:  true,
	}, displays[0])

	assert.Equal(t, "eDP-2", displays[1].ID)
	assert.False(t, displays[1].Primary)
	assert.Equal(t, 1080, displays[1].Bounds.Top)
	assert.Equal(t, 1200, displays[1].Bounds.Height())
}

func TestParseXrandrNegativeOffsets(t *testing.T) {
	out := "DP-1 connected 2560x1440-2560+0 (normal) 600mm x 340mm\n" +
		"DP-2 connected primary 1920x1080+0-200 (normal) 530mm x 300mm\n"

	displays, err := parseXrandr(out)
	require.NoError(t, err)
	require.Len(t, displays, 2)

	assert.Equal(t, Rect{Left: -2560, Top: 0, Right: 0, Bottom: 1440}, displays[0].Bounds)
	assert.Equal(t, Rect{Left: 0, Top: -200, Right: 1920, Bottom: 880}, displays[1].Bounds)
	assert.True(t, displays[1].Primary)
}

func TestParseXrandrNothingActive(t *testing.T) {
	displays, err := parseXrandr("Screen 0: minimum 8 x 8\nVGA-1 disconnected (normal)\n")
	require.NoError(t, err)
	assert.Empty(t, displays)
}

func TestRect(t *testing.T) {
	r := Rect{Left: -100, Top: 50, Right: 1820, Bottom: 1130}
	assert.Equal(t, 1920, r.Width())
	assert.Equal(t, 1080, r.Height())
	assert.Equal(t, "1920x1080+-100+50", r.String())
}

func TestStaticEnumerator(t *testing.T) {
	_, err := Static(nil).ListDisplays()
	assert.ErrorIs(t, err, ErrNoDisplays)

	layout := Static{{ID: "a"}, {ID: "b"}}
	got, err := layout.ListDisplays()
	require.NoError(t, err)
	got[0].ID = "changed"
	assert.Equal(t, "a", layout[0].ID, "callers get a copy")
}

func uevent(fields ...string) []byte {
	return []byte(strings.Join(fields, "\x00") + "\x00")
}

func TestIsDisplayUevent(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		want bool
	}{
		{
			name: "drm hotplug",
			msg:  uevent("change@/devices/pci0000:00/0000:00:02.0/drm/card0", "ACTION=change", "DEVPATH=/devices/pci0000:00/0000:00:02.0/drm/card0", "SUBSYSTEM=drm", "HOTPLUG=1"),
			want: true,
		},
		{
			name: "connector added",
			msg:  uevent("add@/devices/drm/card1", "ACTION=add", "SUBSYSTEM=drm"),
			want: true,
		},
		{
			name: "usb device",
			msg:  uevent("add@/devices/usb1/1-1", "ACTION=add", "SUBSYSTEM=usb"),
			want: false,
		},
		{
			name: "drm bind",
			msg:  uevent("bind@/devices/drm/card0", "ACTION=bind", "SUBSYSTEM=drm"),
			want: false,
		},
		{
			name: "libudev header",
			msg:  uevent("libudev", "SUBSYSTEM=drm", "ACTION=change"),
			want: false,
		},
		{
			name: "empty",
			msg:  nil,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDisplayUevent(tt.msg))
		})
	}
}
