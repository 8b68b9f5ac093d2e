// Package placement shows, hides and positions the keyboard window as the
// device posture changes.
package placement

import (
	log "github.com/sirupsen/logrus"

	"tkm/internal/appstate"
	"tkm/internal/display"
	"tkm/internal/posture"
)

const (
	// TooltipDefault is the tray tooltip while the window is available
	TooltipDefault = "Touch Keyboard & Mouse"
	// TooltipHidden is the tray tooltip while the window is hidden by posture
	TooltipHidden = "TKM - Hidden (Side-by-Side mode)"
)

// Window is the keyboard surface being placed
type Window interface {
	Show() error
	Hide() error
	// Place moves and resizes the window; fullscreen covers bounds entirely
	Place(bounds display.Rect, fullscreen bool) error
}

// Geometry is implemented by windows that can report where they sit
type Geometry interface {
	// Geometry returns the last bounds; ok is false before the first placement
	Geometry() (bounds display.Rect, fullscreen bool, ok bool)
}

// Status receives the user visible posture status
type Status interface {
	SetPostureStatus(text string)
	SetTooltip(text string)
	Notify(title, message string)
}

// Policy reacts to posture events. It runs on the dispatch queue and is
// not safe for concurrent use.
type Policy struct {
	window Window
	status Status
	store  *appstate.Store

	state        appstate.State
	hiddenByMode bool
	minimized    bool
	fullscreen   bool
	keyboard     display.DisplayInfo
	hasKeyboard  bool
}

// NewPolicy creates a policy. store may be nil to skip persistence.
func NewPolicy(window Window, status Status, store *appstate.Store) *Policy {
	p := &Policy{window: window, status: status, store: store}
	if store != nil {
		st, err := store.Load()
		if err != nil {
			log.WithError(err).Warn("Placement: app state unreadable, using defaults")
		}
		p.state = st
	}
	return p
}

// SetDefaultFullscreen covers the keyboard screen when no geometry has
// been saved yet
func (p *Policy) SetDefaultFullscreen(on bool) {
	p.fullscreen = on
}

// StartMinimized keeps the window hidden until ShowKeyboard, even in book
// mode
func (p *Policy) StartMinimized() {
	p.minimized = true
}

// State returns the geometry the policy currently holds
func (p *Policy) State() appstate.State {
	return p.state
}

// HiddenByPosture reports whether the window was hidden for side-by-side use
func (p *Policy) HiddenByPosture() bool {
	return p.hiddenByMode
}

// Handle applies a posture event
func (p *Policy) Handle(ev posture.Event) {
	p.keyboard, p.hasKeyboard = posture.KeyboardScreen(ev.Screens, ev.Arrangement)

	p.status.SetPostureStatus("Posture: " + ev.Posture.Describe())

	switch ev.Posture {
	case posture.PostureLaptopMode:
		p.status.SetTooltip(TooltipHidden)
		p.hiddenByMode = true
		if err := p.window.Hide(); err != nil {
			log.WithError(err).Warn("Placement: hide failed")
		}
		p.status.Notify("Keyboard Hidden",
			"Screens are side-by-side. Keyboard will reappear when you switch to book mode.")
		log.Info("Placement: side-by-side, keyboard hidden")

	case posture.PostureBookMode:
		p.status.SetTooltip(TooltipDefault)
		p.hiddenByMode = false
		if p.minimized {
			log.Debug("Placement: book mode, staying minimized")
			return
		}
		p.show()

	default:
		p.status.SetTooltip(TooltipDefault)
		if p.hiddenByMode {
			p.hiddenByMode = false
			p.show()
		}
	}
}

// ShowKeyboard brings the window back on request, whatever the posture
func (p *Policy) ShowKeyboard() {
	p.hiddenByMode = false
	p.minimized = false
	p.show()
}

func (p *Policy) show() {
	bounds, fullscreen, ok := p.target()
	if ok {
		if err := p.window.Place(bounds, fullscreen); err != nil {
			log.WithError(err).Warn("Placement: place failed")
		}
	}
	if err := p.window.Show(); err != nil {
		log.WithError(err).Warn("Placement: show failed")
		return
	}
	log.WithFields(log.Fields{
		"bounds":     bounds.String(),
		"fullscreen": fullscreen,
		"placed":     ok,
	}).Info("Placement: keyboard shown")
}

// target picks where the window goes: the whole keyboard screen when
// fullscreen, else the saved geometry, else the keyboard screen's work area
func (p *Policy) target() (display.Rect, bool, bool) {
	w := p.state.Window
	fullscreen := w.Fullscreen || (p.fullscreen && !w.HasGeometry())
	if fullscreen && p.hasKeyboard {
		return p.keyboard.Bounds, true, true
	}
	if w.HasGeometry() {
		left, top := int(w.Left), int(w.Top)
		return display.Rect{
			Left:   left,
			Top:    top,
			Right:  left + int(w.Width),
			Bottom: top + int(w.Height),
		}, false, true
	}
	if p.hasKeyboard {
		return p.keyboard.WorkArea, false, true
	}
	return display.Rect{}, false, false
}

// Remember records a user move or resize and persists it
func (p *Policy) Remember(bounds display.Rect, fullscreen bool) {
	p.state.Window.Fullscreen = fullscreen
	if !fullscreen {
		p.state.Window.Left = float64(bounds.Left)
		p.state.Window.Top = float64(bounds.Top)
		p.state.Window.Width = float64(bounds.Width())
		p.state.Window.Height = float64(bounds.Height())
	}
	p.save()
}

// Close saves where the window was last placed, so the next start restores it
func (p *Policy) Close() {
	g, ok := p.window.(Geometry)
	if !ok {
		return
	}
	bounds, fullscreen, ok := g.Geometry()
	if !ok {
		return
	}
	p.Remember(bounds, fullscreen)
}

func (p *Policy) save() {
	if p.store == nil {
		return
	}
	if err := p.store.Save(p.state); err != nil {
		log.WithError(err).Warn("Placement: could not save app state")
	}
}
