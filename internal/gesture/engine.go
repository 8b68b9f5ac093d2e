package gesture

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"tkm/internal/input"
)

// Contact is one touch point between its down and up events
type Contact struct {
	ID        int
	Position  Point
	Start     Point
	StartTime time.Time

	// last sampled position, the base of the next delta
	last Point
}

// Session is the set of active contacts and the state derived from them.
// A session starts with the first contact into an empty surface and ends
// when the last contact lifts.
type Session struct {
	ID        string
	StartTime time.Time
	HasMoved  bool

	// MaxDisplacement is the largest distance any contact strayed from its start
	MaxDisplacement float64

	// Clicked is set when a physical button was pressed during the session
	Clicked bool

	contacts map[int]*Contact
	// down order; order[0] is the primary contact
	order []int
}

// Active reports whether any contact is down
func (s *Session) Active() bool {
	return len(s.order) > 0
}

// Len returns the number of active contacts
func (s *Session) Len() int {
	return len(s.order)
}

// Contact returns a copy of an active contact
func (s *Session) Contact(id int) (Contact, bool) {
	c, ok := s.contacts[id]
	if !ok {
		return Contact{}, false
	}
	return *c, true
}

// Primary returns the id of the oldest active contact
func (s *Session) Primary() (int, bool) {
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[0], true
}

// Engine recognizes cursor moves, scrolls and taps. It is not safe for
// concurrent use; all callbacks must come from the one goroutine that owns
// the touch surface.
type Engine struct {
	cfg     Config
	session Session

	lastTapTime time.Time
	lastTapEnd  Point
}

// NewEngine creates an engine with the given thresholds
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		session: Session{contacts: make(map[int]*Contact)},
	}
}

// Config returns the active thresholds
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig swaps thresholds. An in-flight session keeps going under the new values.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
}

// Session exposes the live session for inspection
func (e *Engine) Session() *Session {
	return &e.session
}

// LastTap returns when and where the previous tap ended
func (e *Engine) LastTap() (time.Time, Point) {
	return e.lastTapTime, e.lastTapEnd
}

// ContactDown starts tracking a contact. Downs never emit actions.
func (e *Engine) ContactDown(id int, pos Point, now time.Time) []Action {
	s := &e.session
	if _, exists := s.contacts[id]; exists {
		log.WithField("contact", id).Debug("Gesture: duplicate down ignored")
		return nil
	}

	if !s.Active() {
		s.ID = uuid.NewString()
		s.StartTime = now
		s.HasMoved = false
		s.MaxDisplacement = 0
	}

	s.contacts[id] = &Contact{
		ID:        id,
		Position:  pos,
		Start:     pos,
		StartTime: now,
		last:      pos,
	}
	s.order = append(s.order, id)

	log.WithFields(log.Fields{"session": s.ID, "contact": id, "active": len(s.order)}).Debug("Gesture: contact down")
	return nil
}

// ContactMove updates a contact and emits a cursor move (one contact), a
// scroll (two contacts) or nothing (three or more).
func (e *Engine) ContactMove(id int, pos Point) []Action {
	s := &e.session
	c, ok := s.contacts[id]
	if !ok {
		log.WithField("contact", id).Debug("Gesture: move for untracked contact ignored")
		return nil
	}

	c.Position = pos
	if d := pos.Dist(c.Start); d > s.MaxDisplacement {
		s.MaxDisplacement = d
	}

	delta := pos.Sub(c.last)
	c.last = pos

	switch len(s.order) {
	case 1:
		dx := delta.X * e.cfg.Sensitivity
		dy := delta.Y * e.cfg.Sensitivity
		if math.Max(math.Abs(dx), math.Abs(dy)) > e.cfg.MoveEmitThreshold {
			s.HasMoved = true
			return []Action{CursorMove(int(dx), int(dy))}
		}
	case 2:
		if id != s.order[0] {
			return nil
		}
		dx := delta.X * e.cfg.ScrollSensitivity
		dy := delta.Y * e.cfg.ScrollSensitivity
		if math.Abs(dy) > math.Abs(dx) && math.Abs(dy) > e.cfg.ScrollEmitThreshold {
			s.HasMoved = true
			return []Action{Scroll(input.AxisVertical, int(-dy*e.cfg.ScrollMultiplier))}
		}
		if math.Abs(dx) > e.cfg.ScrollEmitThreshold {
			s.HasMoved = true
			return []Action{Scroll(input.AxisHorizontal, int(dx*e.cfg.ScrollMultiplier))}
		}
	}
	return nil
}

// ContactUp stops tracking a contact. When it was the last one the session
// ends and, if it was short and still, a tap is emitted: one left click, or
// two when it follows the previous tap within the double tap threshold.
func (e *Engine) ContactUp(id int, now time.Time) []Action {
	s := &e.session
	c, ok := s.contacts[id]
	if !ok {
		log.WithField("contact", id).Debug("Gesture: up for untracked contact ignored")
		return nil
	}

	delete(s.contacts, id)
	s.order = slices.DeleteFunc(s.order, func(v int) bool { return v == id })
	if s.Active() {
		return nil
	}

	elapsed := now.Sub(s.StartTime)
	fields := log.Fields{
		"session":  s.ID,
		"elapsed":  elapsed,
		"moved":    s.HasMoved,
		"distance": s.MaxDisplacement,
		"clicked":  s.Clicked,
	}

	var actions []Action
	if elapsed < e.cfg.TapThreshold && !s.HasMoved && !s.Clicked && s.MaxDisplacement <= e.cfg.TapMoveThreshold {
		if !e.lastTapTime.IsZero() && now.Sub(e.lastTapTime) < e.cfg.DoubleTapThreshold {
			actions = []Action{Click(input.ButtonLeft), Click(input.ButtonLeft)}
			log.WithFields(fields).Debug("Gesture: double tap")
		} else {
			actions = []Action{Click(input.ButtonLeft)}
			log.WithFields(fields).Debug("Gesture: tap")
		}
		e.lastTapTime = now
		e.lastTapEnd = c.Position
	} else {
		log.WithFields(fields).Debug("Gesture: drag ended")
	}

	e.reset()
	return actions
}

// MarkClicked records a physical button press in the live session, so
// the contact that pressed it does not also count as a tap
func (e *Engine) MarkClicked() {
	if e.session.Active() {
		e.session.Clicked = true
	}
}

// Cancel drops the session without emitting anything
func (e *Engine) Cancel() []Action {
	if e.session.Active() {
		log.WithField("session", e.session.ID).Debug("Gesture: session cancelled")
	}
	e.reset()
	return nil
}

func (e *Engine) reset() {
	e.session = Session{contacts: make(map[int]*Contact)}
}
