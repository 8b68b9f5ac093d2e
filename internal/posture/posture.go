// Package posture classifies the display arrangement of a dual-screen
// device and derives its physical posture.
package posture

import (
	"cmp"
	"slices"

	"tkm/internal/display"
)

// DefaultTolerance is the pixel slack when comparing screen edges
const DefaultTolerance = 50

// Arrangement is the relative placement of the displays
type Arrangement int

const (
	ArrangementUnknown Arrangement = iota
	ArrangementSingle
	ArrangementVerticalTopBottom
	ArrangementVerticalBottomTop
	ArrangementHorizontalLeftRight
	ArrangementHorizontalRightLeft
	ArrangementOther
)

func (a Arrangement) String() string {
	switch a {
	case ArrangementSingle:
		return "Single"
	case ArrangementVerticalTopBottom:
		return "VerticalTopBottom"
	case ArrangementVerticalBottomTop:
		return "VerticalBottomTop"
	case ArrangementHorizontalLeftRight:
		return "HorizontalLeftRight"
	case ArrangementHorizontalRightLeft:
		return "HorizontalRightLeft"
	case ArrangementOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Vertical reports whether the screens are stacked
func (a Arrangement) Vertical() bool {
	return a == ArrangementVerticalTopBottom || a == ArrangementVerticalBottomTop
}

// Horizontal reports whether the screens are side by side
func (a Arrangement) Horizontal() bool {
	return a == ArrangementHorizontalLeftRight || a == ArrangementHorizontalRightLeft
}

// Posture is the physical use mode
type Posture int

const (
	PostureUnknown Posture = iota
	PostureSingleScreen
	PostureBookMode
	PostureLaptopMode
)

func (p Posture) String() string {
	switch p {
	case PostureSingleScreen:
		return "SingleScreen"
	case PostureBookMode:
		return "BookMode"
	case PostureLaptopMode:
		return "LaptopMode"
	default:
		return "Unknown"
	}
}

// Describe returns the status line shown to the user
func (p Posture) Describe() string {
	switch p {
	case PostureBookMode:
		return "Book Mode (Keyboard Active)"
	case PostureLaptopMode:
		return "Side-by-Side (Keyboard Hidden)"
	case PostureSingleScreen:
		return "Single Screen"
	default:
		return "Detecting..."
	}
}

// FromArrangement maps an arrangement to its posture
func FromArrangement(a Arrangement) Posture {
	switch {
	case a.Vertical():
		return PostureBookMode
	case a.Horizontal():
		return PostureLaptopMode
	case a == ArrangementSingle:
		return PostureSingleScreen
	default:
		return PostureUnknown
	}
}

// Sort orders screens by left edge, then top edge
func Sort(screens []display.DisplayInfo) {
	slices.SortStableFunc(screens, func(a, b display.DisplayInfo) int {
		if c := cmp.Compare(a.Bounds.Left, b.Bounds.Left); c != 0 {
			return c
		}
		return cmp.Compare(a.Bounds.Top, b.Bounds.Top)
	})
}

// Classify determines the arrangement of screens
func Classify(screens []display.DisplayInfo, tolerance int) Arrangement {
	switch {
	case len(screens) < 2:
		return ArrangementSingle
	case len(screens) > 2:
		return ArrangementUnknown
	}

	a, b := screens[0].Bounds, screens[1].Bounds
	if abs(a.Left-b.Left) < tolerance {
		if a.Top < b.Top {
			return ArrangementVerticalTopBottom
		}
		return ArrangementVerticalBottomTop
	}
	if abs(a.Top-b.Top) < tolerance {
		if a.Left < b.Left {
			return ArrangementHorizontalLeftRight
		}
		return ArrangementHorizontalRightLeft
	}
	return ArrangementOther
}

// KeyboardScreen picks the lower screen of a vertical arrangement
func KeyboardScreen(screens []display.DisplayInfo, a Arrangement) (display.DisplayInfo, bool) {
	if !a.Vertical() || len(screens) == 0 {
		return display.DisplayInfo{}, false
	}
	lowest := screens[0]
	for _, s := range screens[1:] {
		if s.Bounds.Top > lowest.Bounds.Top {
			lowest = s
		}
	}
	return lowest, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
