//go:build linux

package touch

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	evdev "github.com/holoplot/go-evdev"
	log "github.com/sirupsen/logrus"

	"tkm/internal/dispatch"
)

// Device is an open multitouch input device
type Device struct {
	dev     *evdev.InputDevice
	path    string
	name    string
	grabbed bool
	decoder *Decoder

	closeOnce sync.Once
	closeErr  error
}

// Options controls how a device is opened
type Options struct {
	// Path of the event node; empty picks the first multitouch device
	Path string
	// Grab takes exclusive access so the desktop does not also see the touches
	Grab bool
	// Scale overrides the unit to pixel factor; zero derives it from the
	// device resolution
	Scale float64
}

func isMultitouch(dev *evdev.InputDevice) bool {
	codes := dev.CapableEvents(evdev.EV_ABS)
	return slices.Contains(codes, evdev.ABS_MT_SLOT) &&
		slices.Contains(codes, evdev.ABS_MT_TRACKING_ID)
}

// FindDevice returns the path of the first multitouch device
func FindDevice() (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}

	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		mt := isMultitouch(dev)
		dev.Close()
		if mt {
			log.Infof("Touch: found multitouch device %q at %s", p.Name, p.Path)
			return p.Path, nil
		}
	}
	return "", ErrNoTouchDevice
}

// Open opens a multitouch device
func Open(opts Options) (*Device, error) {
	path := opts.Path
	if path == "" {
		found, err := FindDevice()
		if err != nil {
			return nil, err
		}
		path = found
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !isMultitouch(dev) {
		dev.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotMultitouch)
	}

	name, _ := dev.Name()

	scaleX, scaleY := opts.Scale, opts.Scale
	if opts.Scale <= 0 {
		scaleX, scaleY = 1, 1
		if infos, err := dev.AbsInfos(); err == nil {
			scaleX = pixelsPerUnit(infos[evdev.ABS_MT_POSITION_X].Resolution)
			scaleY = pixelsPerUnit(infos[evdev.ABS_MT_POSITION_Y].Resolution)
		}
	}

	d := &Device{
		dev:     dev,
		path:    path,
		name:    name,
		decoder: NewDecoder(scaleX, scaleY),
	}

	if opts.Grab {
		if err := dev.Grab(); err != nil {
			log.WithError(err).Warnf("Touch: could not grab %s, touches will also reach the desktop", path)
		} else {
			d.grabbed = true
		}
	}

	log.WithFields(log.Fields{
		"path":   path,
		"name":   name,
		"scaleX": scaleX,
		"scaleY": scaleY,
	}).Info("Touch: device opened")
	return d, nil
}

// Name returns the device name
func (d *Device) Name() string {
	return d.name
}

// Path returns the event node path
func (d *Device) Path() string {
	return d.path
}

// Run reads frames until ctx is done or the device fails, posting each
// frame to q for surface. When it returns a Cancel has been posted so no
// contact or pad button is left active.
func (d *Device) Run(ctx context.Context, q *dispatch.Queue, surface Surface) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// unblocks ReadOne
			d.Close()
		case <-stop:
		}
	}()

	defer func() {
		if err := q.Post(surface.Cancel); err != nil {
			log.WithError(err).Debug("Touch: cancel not delivered")
		}
	}()

	for {
		ev, err := d.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read %s: %w", d.path, err)
		}

		events := d.decoder.Feed(Event{
			Type:  uint16(ev.Type),
			Code:  uint16(ev.Code),
			Value: ev.Value,
			Time:  time.Unix(ev.Time.Unix()),
		})
		if len(events) == 0 {
			continue
		}
		if err := q.Post(func() { Apply(surface, events) }); err != nil {
			return err
		}
	}
}

// Close releases the device. It is safe to call more than once.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		if d.grabbed {
			d.dev.Ungrab()
		}
		d.closeErr = d.dev.Close()
	})
	return d.closeErr
}
