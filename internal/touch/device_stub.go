//go:build !linux

package touch

import (
	"context"

	"tkm/internal/dispatch"
)

// Device is an open multitouch input device
type Device struct{}

// Options controls how a device is opened
type Options struct {
	Path  string
	Grab  bool
	Scale float64
}

// FindDevice returns the path of the first multitouch device
func FindDevice() (string, error) {
	return "", ErrUnsupportedPlatform
}

// Open opens a multitouch device
func Open(opts Options) (*Device, error) {
	return nil, ErrUnsupportedPlatform
}

func (d *Device) Name() string { return "" }

func (d *Device) Path() string { return "" }

func (d *Device) Run(ctx context.Context, q *dispatch.Queue, surface Surface) error {
	return ErrUnsupportedPlatform
}

func (d *Device) Close() error {
	return nil
}
