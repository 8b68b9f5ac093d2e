//go:build linux

package hotkey

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	evdev "github.com/holoplot/go-evdev"
	log "github.com/sirupsen/logrus"

	"tkm/internal/input"
)

var errNoKeyboards = errors.New("no readable keyboards")

// findKeyboards opens every device that looks like a physical keyboard
func findKeyboards() ([]*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var kbds []*evdev.InputDevice
	for _, p := range paths {
		if p.Name == input.VirtualKeyboardName {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		codes := dev.CapableEvents(evdev.EV_KEY)
		if slices.Contains(codes, evdev.KEY_A) && slices.Contains(codes, evdev.KEY_ENTER) {
			kbds = append(kbds, dev)
		} else {
			dev.Close()
		}
	}
	if len(kbds) == 0 {
		return nil, errNoKeyboards
	}
	return kbds, nil
}

// startPlatform reads the keyboards without grabbing them, so keys still
// reach the desktop. Reading /dev/input needs the input group.
func (m *Manager) startPlatform(ctx context.Context) error {
	kbds, err := findKeyboards()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, dev := range kbds {
		wg.Add(1)
		go m.watch(dev, &wg)
	}
	log.WithField("keyboards", len(kbds)).Info("Hotkey: watching keyboards")

	go func() {
		<-ctx.Done()
		for _, dev := range kbds {
			dev.Close()
		}
		wg.Wait()
		log.Debug("Hotkey: keyboards released")
	}()
	return nil
}

func (m *Manager) watch(dev *evdev.InputDevice, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return
		}
		// value 2 is auto-repeat
		if ev.Type != evdev.EV_KEY || ev.Value == 2 {
			continue
		}
		if vk, ok := input.VKFromLinuxKey(uint16(ev.Code)); ok {
			m.UpdateState(vk, ev.Value == 1)
		}
	}
}
