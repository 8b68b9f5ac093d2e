package config

import "errors"

// ErrInvalid is returned when a configuration value is out of range
var ErrInvalid = errors.New("invalid configuration")
