// Package touch turns Linux multitouch (protocol B) input into contact
// down, move and up events for the trackpad.
package touch

import (
	"slices"
	"time"

	"tkm/internal/gesture"
	"tkm/internal/input"
)

// Linux input event codes, from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport  = 0x00
	synDropped = 0x03

	absMTSlot       = 0x2f
	absMTPositionX  = 0x35
	absMTPositionY  = 0x36
	absMTTrackingID = 0x39

	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
)

var padButtons = map[uint16]input.Button{
	btnLeft:   input.ButtonLeft,
	btnRight:  input.ButtonRight,
	btnMiddle: input.ButtonMiddle,
}

// Event is one raw evdev input event
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
	Time  time.Time
}

// Kind of a contact event
type Kind int

const (
	KindDown Kind = iota
	KindMove
	KindUp
	KindCancel
	KindButtonDown
	KindButtonUp
)

func (k Kind) String() string {
	switch k {
	case KindDown:
		return "down"
	case KindMove:
		return "move"
	case KindUp:
		return "up"
	case KindCancel:
		return "cancel"
	case KindButtonDown:
		return "button down"
	case KindButtonUp:
		return "button up"
	}
	return "unknown"
}

// ContactEvent is a decoded contact transition. ID is the kernel tracking
// id; Button is set for button kinds only.
type ContactEvent struct {
	Kind     Kind
	ID       int
	Position gesture.Point
	Button   input.Button
	Time     time.Time
}

// Surface receives decoded contacts. gesture.Trackpad implements it.
type Surface interface {
	ContactDown(id int, pos gesture.Point, now time.Time)
	ContactMove(id int, pos gesture.Point)
	ContactUp(id int, now time.Time)
	ButtonDown(button input.Button)
	ButtonUp(button input.Button)
	Cancel()
}

type slot struct {
	// tracking id as of the last report, -1 when empty
	reported int
	// tracking id in the frame being assembled
	pending int
	x, y    int32
	moved   bool
}

// Decoder assembles protocol B frames into contact events
type Decoder struct {
	scaleX, scaleY float64

	current int
	slots   map[int]*slot
	buttons []ContactEvent
	dropped bool
}

// NewDecoder creates a decoder converting device units to surface pixels
// by the given factors
func NewDecoder(scaleX, scaleY float64) *Decoder {
	if scaleX <= 0 {
		scaleX = 1
	}
	if scaleY <= 0 {
		scaleY = 1
	}
	return &Decoder{
		scaleX: scaleX,
		scaleY: scaleY,
		slots:  make(map[int]*slot),
	}
}

func (d *Decoder) slot(n int) *slot {
	s, ok := d.slots[n]
	if !ok {
		s = &slot{reported: -1, pending: -1}
		d.slots[n] = s
	}
	return s
}

func (d *Decoder) point(s *slot) gesture.Point {
	return gesture.Point{X: float64(s.x) * d.scaleX, Y: float64(s.y) * d.scaleY}
}

// Feed consumes one raw event. At each SYN_REPORT it returns the frame's
// contact events: moves of already known contacts first, then ups, then
// downs, each group in slot order, then pad button changes.
func (d *Decoder) Feed(ev Event) []ContactEvent {
	switch ev.Type {
	case evKey:
		b, ok := padButtons[ev.Code]
		if !ok || d.dropped {
			return nil
		}
		// value 2 is auto-repeat
		switch ev.Value {
		case 1:
			d.buttons = append(d.buttons, ContactEvent{Kind: KindButtonDown, Button: b})
		case 0:
			d.buttons = append(d.buttons, ContactEvent{Kind: KindButtonUp, Button: b})
		}
	case evAbs:
		// the kernel does not repeat the slot, so it is followed even
		// through dropped events
		if ev.Code == absMTSlot {
			d.current = int(ev.Value)
			return nil
		}
		if d.dropped {
			return nil
		}
		switch ev.Code {
		case absMTTrackingID:
			d.slot(d.current).pending = int(ev.Value)
		case absMTPositionX:
			s := d.slot(d.current)
			s.x, s.moved = ev.Value, true
		case absMTPositionY:
			s := d.slot(d.current)
			s.y, s.moved = ev.Value, true
		}
	case evSyn:
		switch ev.Code {
		case synDropped:
			d.dropped = true
		case synReport:
			if d.dropped {
				return d.resync(ev.Time)
			}
			return d.frame(ev.Time)
		}
	}
	return nil
}

// resync forgets every contact after the kernel dropped events. Contacts
// still on the surface are ignored until they lift.
func (d *Decoder) resync(now time.Time) []ContactEvent {
	d.dropped = false
	d.buttons = nil
	for _, s := range d.slots {
		s.reported, s.pending, s.moved = -1, -1, false
	}
	return []ContactEvent{{Kind: KindCancel, Time: now}}
}

func (d *Decoder) frame(now time.Time) []ContactEvent {
	keys := make([]int, 0, len(d.slots))
	for k := range d.slots {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var moves, ups, downs []ContactEvent
	for _, k := range keys {
		s := d.slots[k]
		switch {
		case s.pending == s.reported:
			if s.reported >= 0 && s.moved {
				moves = append(moves, ContactEvent{Kind: KindMove, ID: s.reported, Position: d.point(s), Time: now})
			}
		default:
			if s.reported >= 0 {
				ups = append(ups, ContactEvent{Kind: KindUp, ID: s.reported, Time: now})
			}
			if s.pending >= 0 {
				downs = append(downs, ContactEvent{Kind: KindDown, ID: s.pending, Position: d.point(s), Time: now})
			}
			s.reported = s.pending
		}
		s.moved = false
	}

	for _, b := range d.buttons {
		b.Time = now
		downs = append(downs, b)
	}
	d.buttons = d.buttons[:0]

	return slices.Concat(moves, ups, downs)
}

// Apply forwards decoded events to a surface
func Apply(surface Surface, events []ContactEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case KindDown:
			surface.ContactDown(ev.ID, ev.Position, ev.Time)
		case KindMove:
			surface.ContactMove(ev.ID, ev.Position)
		case KindUp:
			surface.ContactUp(ev.ID, ev.Time)
		case KindButtonDown:
			surface.ButtonDown(ev.Button)
		case KindButtonUp:
			surface.ButtonUp(ev.Button)
		case KindCancel:
			surface.Cancel()
		}
	}
}

// pixelsPerUnit converts a device resolution in units per millimetre to a
// 96 dpi pixel factor
func pixelsPerUnit(resolution int32) float64 {
	if resolution <= 0 {
		return 1
	}
	return 96.0 / 25.4 / float64(resolution)
}
