package gesture

import (
	log "github.com/sirupsen/logrus"

	"tkm/internal/input"
)

// Forwarder applies actions to an injector. Injection is best effort: a
// failed call is logged and skipped, never retried and never surfaced to
// the touch handler.
type Forwarder struct {
	injector input.Injector
}

// NewForwarder wraps an injector
func NewForwarder(injector input.Injector) *Forwarder {
	return &Forwarder{injector: injector}
}

// Apply forwards actions in order and returns how many succeeded
func (f *Forwarder) Apply(actions []Action) int {
	sent := 0
	for _, a := range actions {
		var err error
		switch a.Kind {
		case ActionCursorMove:
			err = f.injector.MoveCursorBy(a.DX, a.DY)
		case ActionScroll:
			err = f.injector.Scroll(a.Axis, a.Amount)
		case ActionClick:
			err = f.injector.Click(a.Button)
		default:
			log.Warnf("Gesture: unknown action kind %d dropped", a.Kind)
			continue
		}
		if err != nil {
			log.WithError(err).WithField("action", a.String()).Warn("Gesture: injection failed, event skipped")
			continue
		}
		sent++
	}
	return sent
}
