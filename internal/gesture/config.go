package gesture

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid gesture config")

// Config holds the recognition thresholds
type Config struct {
	// Sensitivity multiplies single-contact deltas into cursor pixels
	Sensitivity float64

	// ScrollSensitivity multiplies two-contact deltas before the scroll test
	ScrollSensitivity float64

	// ScrollMultiplier converts scaled deltas into wheel units
	ScrollMultiplier float64

	// TapThreshold is the longest session that still counts as a tap
	TapThreshold time.Duration

	// DoubleTapThreshold is the longest gap between two taps merged into a double click
	DoubleTapThreshold time.Duration

	// TapMoveThreshold is the largest displacement from the start point that still counts as a tap
	TapMoveThreshold float64

	// MoveEmitThreshold filters single-contact jitter
	MoveEmitThreshold float64

	// ScrollEmitThreshold filters two-contact jitter
	ScrollEmitThreshold float64
}

// DefaultConfig returns the stock trackpad tuning
func DefaultConfig() Config {
	return Config{
		Sensitivity:         1.5,
		ScrollSensitivity:   2.0,
		ScrollMultiplier:    10,
		TapThreshold:        200 * time.Millisecond,
		DoubleTapThreshold:  300 * time.Millisecond,
		TapMoveThreshold:    10,
		MoveEmitThreshold:   0.5,
		ScrollEmitThreshold: 2,
	}
}

// Validate rejects thresholds that would make the engine misbehave
func (c Config) Validate() error {
	switch {
	case c.Sensitivity <= 0:
		return fmt.Errorf("%w: sensitivity must be positive, got %v", ErrInvalidConfig, c.Sensitivity)
	case c.ScrollSensitivity <= 0:
		return fmt.Errorf("%w: scroll sensitivity must be positive, got %v", ErrInvalidConfig, c.ScrollSensitivity)
	case c.ScrollMultiplier <= 0:
		return fmt.Errorf("%w: scroll multiplier must be positive, got %v", ErrInvalidConfig, c.ScrollMultiplier)
	case c.TapThreshold <= 0:
		return fmt.Errorf("%w: tap threshold must be positive, got %v", ErrInvalidConfig, c.TapThreshold)
	case c.DoubleTapThreshold <= 0:
		return fmt.Errorf("%w: double tap threshold must be positive, got %v", ErrInvalidConfig, c.DoubleTapThreshold)
	case c.TapMoveThreshold < 0, c.MoveEmitThreshold < 0, c.ScrollEmitThreshold < 0:
		return fmt.Errorf("%w: movement thresholds must not be negative", ErrInvalidConfig)
	}
	return nil
}
