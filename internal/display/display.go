// Package display enumerates the attached displays and reports when the OS
// display configuration changes.
package display

import (
	"context"
	"fmt"
)

// Rect is a rectangle in virtual-desktop pixels. Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width of the rectangle
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height of the rectangle
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width(), r.Height(), r.Left, r.Top)
}

// DisplayInfo is an immutable snapshot of one display
type DisplayInfo struct {
	ID       string `json:"id"`
	Bounds   Rect   `json:"bounds"`
	WorkArea Rect   `json:"work_area"`
	Primary  bool   `json:"primary"`
}

// Enumerator lists the currently attached displays
type Enumerator interface {
	// ListDisplays returns every active display in OS order
	ListDisplays() ([]DisplayInfo, error)
}

// Notifier signals display configuration changes
type Notifier interface {
	// Start begins watching. The channel receives a value per change and
	// is closed once ctx is done.
	Start(ctx context.Context) (<-chan struct{}, error)
}

// EnumeratorFunc adapts a function to Enumerator
type EnumeratorFunc func() ([]DisplayInfo, error)

func (f EnumeratorFunc) ListDisplays() ([]DisplayInfo, error) {
	return f()
}

// Static is an Enumerator that always returns the same layout
type Static []DisplayInfo

func (s Static) ListDisplays() ([]DisplayInfo, error) {
	if len(s) == 0 {
		return nil, ErrNoDisplays
	}
	out := make([]DisplayInfo, len(s))
	copy(out, s)
	return out, nil
}
