package input

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Call is one recorded injector invocation
type Call struct {
	Op     string
	DX, DY int
	Button Button
	Down   bool
	Axis   Axis
	Amount int
	Key    uint16
}

func (c Call) String() string {
	switch c.Op {
	case "move":
		return fmt.Sprintf("move(%d,%d)", c.DX, c.DY)
	case "button":
		return fmt.Sprintf("button(%v,%v)", c.Button, c.Down)
	case "click":
		return fmt.Sprintf("click(%v)", c.Button)
	case "scroll":
		return fmt.Sprintf("scroll(%v,%d)", c.Axis, c.Amount)
	case "key":
		return fmt.Sprintf("key(0x%X,%v)", c.Key, c.Down)
	}
	return c.Op
}

// Recorder is an Injector that records calls instead of touching the OS.
// It backs dry-run mode and tests. Err, when set, is returned from every
// call after it is recorded.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	Err   error
	Echo  bool
}

// NewRecorder creates an empty recorder. With echo set each call is logged.
func NewRecorder(echo bool) *Recorder {
	return &Recorder{Echo: echo}
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	err := r.Err
	r.mu.Unlock()
	if r.Echo {
		log.Infof("Inject (dry-run): %s", c)
	}
	return err
}

// Calls returns a copy of the recorded calls
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets all recorded calls
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) MoveCursorBy(dx, dy int) error {
	return r.record(Call{Op: "move", DX: dx, DY: dy})
}

func (r *Recorder) SetButtonState(button Button, down bool) error {
	return r.record(Call{Op: "button", Button: button, Down: down})
}

func (r *Recorder) Click(button Button) error {
	return r.record(Call{Op: "click", Button: button})
}

func (r *Recorder) Scroll(axis Axis, amount int) error {
	return r.record(Call{Op: "scroll", Axis: axis, Amount: amount})
}

func (r *Recorder) PressKey(code uint16) error {
	return r.record(Call{Op: "key", Key: code, Down: true})
}

func (r *Recorder) ReleaseKey(code uint16) error {
	return r.record(Call{Op: "key", Key: code, Down: false})
}

func (r *Recorder) Close() error {
	return nil
}
