package posture

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"tkm/internal/display"
)

// Event announces a posture or arrangement change
type Event struct {
	Posture     Posture
	Arrangement Arrangement
	Screens     []display.DisplayInfo
}

// Classifier tracks the current posture. It is not safe for concurrent
// use; the monitor drives it from the dispatch queue.
type Classifier struct {
	enum      display.Enumerator
	tolerance int

	posture     Posture
	arrangement Arrangement
	screens     []display.DisplayInfo

	subscribers []func(Event)
}

// NewClassifier creates a classifier. A non-positive tolerance selects
// DefaultTolerance.
func NewClassifier(enum display.Enumerator, tolerance int) *Classifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Classifier{
		enum:      enum,
		tolerance: tolerance,
	}
}

// Subscribe registers fn for change events
func (c *Classifier) Subscribe(fn func(Event)) {
	c.subscribers = append(c.subscribers, fn)
}

// Screens enumerates the displays sorted by left then top
func (c *Classifier) Screens() ([]display.DisplayInfo, error) {
	screens, err := c.enum.ListDisplays()
	if err != nil {
		return nil, err
	}
	Sort(screens)
	return screens, nil
}

// DetectPosture re-enumerates and reclassifies. Subscribers are notified
// only when the posture or arrangement differs from the retained pair.
// It reports whether an event was emitted.
func (c *Classifier) DetectPosture() bool {
	screens, err := c.Screens()
	if err != nil {
		log.WithError(err).Warn("Classifier: enumeration failed, keeping previous posture")
		return false
	}
	if len(screens) == 0 {
		log.Warn("Classifier: no displays reported, keeping previous posture")
		return false
	}

	arrangement := Classify(screens, c.tolerance)
	posture := FromArrangement(arrangement)
	c.screens = screens

	if arrangement == c.arrangement && posture == c.posture {
		return false
	}

	log.WithFields(log.Fields{
		"from":        c.posture.String(),
		"to":          posture.String(),
		"arrangement": arrangement.String(),
		"screens":     len(screens),
	}).Info("Classifier: posture changed")

	c.arrangement = arrangement
	c.posture = posture

	ev := Event{Posture: posture, Arrangement: arrangement, Screens: slices.Clone(screens)}
	for _, fn := range c.subscribers {
		fn(ev)
	}
	return true
}

// Posture returns the retained posture
func (c *Classifier) Posture() Posture {
	return c.posture
}

// Arrangement returns the retained arrangement
func (c *Classifier) Arrangement() Arrangement {
	return c.arrangement
}

// ShouldShowKeyboard reports whether the keyboard belongs on screen
func (c *Classifier) ShouldShowKeyboard() bool {
	return c.posture == PostureBookMode
}

// KeyboardScreen returns the lower display when in a vertical arrangement
func (c *Classifier) KeyboardScreen() (display.DisplayInfo, bool) {
	return KeyboardScreen(c.screens, c.arrangement)
}
