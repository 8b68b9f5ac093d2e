package posture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkm/internal/display"
)

func screen(id string, left, top, w, h int) display.DisplayInfo {
	r := display.Rect{Left: left, Top: top, Right: left + w, Bottom: top + h}
	return display.DisplayInfo{ID: id, Bounds: r, WorkArea: r}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		screens []display.DisplayInfo
		want    Arrangement
		posture Posture
	}{
		{"none", nil, ArrangementSingle, PostureSingleScreen},
		{"one", []display.DisplayInfo{screen("a", 0, 0, 1920, 1080)}, ArrangementSingle, PostureSingleScreen},
		{
			"stacked top first",
			[]display.DisplayInfo{screen("top", 0, 0, 1920, 1080), screen("bottom", 0, 1080, 1920, 1080)},
			ArrangementVerticalTopBottom, PostureBookMode,
		},
		{
			"stacked bottom first",
			[]display.DisplayInfo{screen("bottom", 10, 1080, 1920, 1080), screen("top", 0, 0, 1920, 1080)},
			ArrangementVerticalBottomTop, PostureBookMode,
		},
		{
			"stacked within tolerance",
			[]display.DisplayInfo{screen("a", 0, 0, 1920, 1080), screen("b", 49, 1080, 1920, 1080)},
			ArrangementVerticalTopBottom, PostureBookMode,
		},
		{
			"side by side",
			[]display.DisplayInfo{screen("l", 0, 0, 1920, 1080), screen("r", 1920, 20, 1920, 1080)},
			ArrangementHorizontalLeftRight, PostureLaptopMode,
		},
		{
			"side by side reversed",
			[]display.DisplayInfo{screen("r", 1920, 0, 1920, 1080), screen("l", 0, 0, 1920, 1080)},
			ArrangementHorizontalRightLeft, PostureLaptopMode,
		},
		{
			"edge exactly at tolerance",
			[]display.DisplayInfo{screen("a", 0, 0, 1920, 1080), screen("b", 1920, 50, 1920, 1080)},
			ArrangementOther, PostureUnknown,
		},
		{
			"diagonal",
			[]display.DisplayInfo{screen("a", 0, 0, 1920, 1080), screen("b", 1000, 700, 1920, 1080)},
			ArrangementOther, PostureUnknown,
		},
		{
			"three",
			[]display.DisplayInfo{screen("a", 0, 0, 10, 10), screen("b", 0, 10, 10, 10), screen("c", 10, 0, 10, 10)},
			ArrangementUnknown, PostureUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.screens, DefaultTolerance)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.posture, FromArrangement(got))
		})
	}
}

func TestSortByLeftThenTop(t *testing.T) {
	screens := []display.DisplayInfo{
		screen("c", 100, 0, 10, 10),
		screen("b", 0, 500, 10, 10),
		screen("a", 0, 0, 10, 10),
	}
	Sort(screens)
	assert.Equal(t, "a", screens[0].ID)
	assert.Equal(t, "b", screens[1].ID)
	assert.Equal(t, "c", screens[2].ID)
}

func TestKeyboardScreenIsLowest(t *testing.T) {
	screens := []display.DisplayInfo{screen("top", 0, 0, 1920, 1080), screen("bottom", 0, 1080, 1920, 1080)}

	got, ok := KeyboardScreen(screens, ArrangementVerticalTopBottom)
	require.True(t, ok)
	assert.Equal(t, "bottom", got.ID)

	_, ok = KeyboardScreen(screens, ArrangementHorizontalLeftRight)
	assert.False(t, ok)
}

func TestPostureDescribe(t *testing.T) {
	assert.Equal(t, "Book Mode (Keyboard Active)", PostureBookMode.Describe())
	assert.Equal(t, "Side-by-Side (Keyboard Hidden)", PostureLaptopMode.Describe())
	assert.Equal(t, "Single Screen", PostureSingleScreen.Describe())
	assert.Equal(t, "Detecting...", PostureUnknown.Describe())
}

// layout is a mutable enumerator for tests
type layout struct {
	screens []display.DisplayInfo
	err     error
}

func (l *layout) ListDisplays() ([]display.DisplayInfo, error) {
	if l.err != nil {
		return nil, l.err
	}
	return append([]display.DisplayInfo(nil), l.screens...), nil
}

var (
	bookLayout = []display.DisplayInfo{
		screen("bottom", 0, 1080, 1920, 1080),
		screen("top", 0, 0, 1920, 1080),
	}
	laptopLayout = []display.DisplayInfo{
		screen("left", 0, 0, 1920, 1080),
		screen("right", 1920, 0, 1920, 1080),
	}
)

func TestDetectPostureEmitsOncePerChange(t *testing.T) {
	l := &layout{screens: bookLayout}
	c := NewClassifier(l, 0)

	var events []Event
	c.Subscribe(func(ev Event) { events = append(events, ev) })

	assert.True(t, c.DetectPosture())
	assert.False(t, c.DetectPosture())
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, PostureBookMode, ev.Posture)
	// sorted: top (0,0) before bottom (0,1080)
	assert.Equal(t, ArrangementVerticalTopBottom, ev.Arrangement)
	assert.Equal(t, "top", ev.Screens[0].ID)

	assert.True(t, c.ShouldShowKeyboard())
	kb, ok := c.KeyboardScreen()
	require.True(t, ok)
	assert.Equal(t, "bottom", kb.ID)

	l.screens = laptopLayout
	assert.True(t, c.DetectPosture())
	require.Len(t, events, 2)
	assert.Equal(t, PostureLaptopMode, events[1].Posture)
	assert.False(t, c.ShouldShowKeyboard())
	_, ok = c.KeyboardScreen()
	assert.False(t, ok)
}

func TestDetectPostureKeepsStateOnFailure(t *testing.T) {
	l := &layout{screens: bookLayout}
	c := NewClassifier(l, 0)
	require.True(t, c.DetectPosture())

	emitted := 0
	c.Subscribe(func(Event) { emitted++ })

	l.err = errors.New("display server gone")
	assert.False(t, c.DetectPosture())

	l.err = nil
	l.screens = nil
	assert.False(t, c.DetectPosture())

	assert.Zero(t, emitted)
	assert.Equal(t, PostureBookMode, c.Posture())
	assert.Equal(t, ArrangementVerticalTopBottom, c.Arrangement())
	_, ok := c.KeyboardScreen()
	assert.True(t, ok)
}

func TestArrangementChangeWithSamePostureEmits(t *testing.T) {
	l := &layout{screens: bookLayout}
	c := NewClassifier(l, 0)
	require.True(t, c.DetectPosture())

	// top screen nudged right, so the bottom one sorts first
	l.screens = []display.DisplayInfo{
		screen("top", 10, 0, 1920, 1080),
		screen("bottom", 0, 1080, 1920, 1080),
	}
	var got []Event
	c.Subscribe(func(ev Event) { got = append(got, ev) })
	require.True(t, c.DetectPosture())

	require.Len(t, got, 1)
	assert.Equal(t, PostureBookMode, got[0].Posture)
	assert.Equal(t, ArrangementVerticalBottomTop, got[0].Arrangement)

	kb, ok := c.KeyboardScreen()
	require.True(t, ok)
	assert.Equal(t, "bottom", kb.ID)
}

func TestScreensSorted(t *testing.T) {
	c := NewClassifier(&layout{screens: laptopLayout[:1:1]}, 0)
	screens, err := c.Screens()
	require.NoError(t, err)
	assert.Len(t, screens, 1)

	_, err = NewClassifier(&layout{err: display.ErrToolNotFound}, 0).Screens()
	assert.ErrorIs(t, err, display.ErrToolNotFound)
}
