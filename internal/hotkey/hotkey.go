// Package hotkey watches the physical keyboard for global hotkeys.
package hotkey

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"tkm/internal/keyboard"
)

// Manager matches key state against registered chords. Keys are virtual
// key codes; left and right modifier variants count as the generic one.
type Manager struct {
	mu       sync.Mutex
	hotkeys  []*registeredHotkey
	down     map[uint16]bool
	dispatch func(func())
}

type registeredHotkey struct {
	keys     []uint16
	original string
	callback func()
	// fired until one of the chord's keys is released, so auto-repeat
	// does not trigger the callback again
	fired bool
}

// NewManager creates a hotkey manager. Callbacks are handed to dispatch;
// a nil dispatch runs each callback on its own goroutine.
func NewManager(dispatch func(func())) *Manager {
	if dispatch == nil {
		dispatch = func(fn func()) { go fn() }
	}
	return &Manager{
		down:     make(map[uint16]bool),
		dispatch: dispatch,
	}
}

// Register binds a chord such as "Ctrl+Alt+K". An empty chord is ignored.
func (m *Manager) Register(chord string, callback func()) error {
	if chord == "" {
		return nil
	}
	codes, err := keyboard.ParseChord(chord)
	if err != nil {
		return err
	}
	for i, c := range codes {
		codes[i] = normalize(c)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = append(m.hotkeys, &registeredHotkey{
		keys:     codes,
		original: chord,
		callback: callback,
	})
	return nil
}

// Clear removes all registered hotkeys
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = nil
}

// UpdateState records a key transition and triggers completed chords
func (m *Manager) UpdateState(vk uint16, isDown bool) {
	vk = normalize(vk)

	m.mu.Lock()
	if isDown {
		m.down[vk] = true
	} else {
		delete(m.down, vk)
	}

	var triggered []*registeredHotkey
	for _, hk := range m.hotkeys {
		if !m.allDown(hk.keys) {
			hk.fired = false
			continue
		}
		if isDown && !hk.fired {
			hk.fired = true
			triggered = append(triggered, hk)
		}
	}
	m.mu.Unlock()

	for _, hk := range triggered {
		log.WithField("hotkey", hk.original).Info("Hotkey: triggered")
		m.dispatch(hk.callback)
	}
}

func (m *Manager) allDown(keys []uint16) bool {
	for _, k := range keys {
		if !m.down[k] {
			return false
		}
	}
	return true
}

// Start installs the platform hook. It returns once the hook is running
// or has failed; the hook is removed when ctx is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	return m.startPlatform(ctx)
}

func normalize(vk uint16) uint16 {
	switch vk {
	case 0xA0, 0xA1:
		return keyboard.VKShift
	case 0xA2, 0xA3:
		return keyboard.VKControl
	case 0xA4, 0xA5:
		return keyboard.VKMenu
	case 0x5C:
		return keyboard.VKLWin
	}
	return vk
}
