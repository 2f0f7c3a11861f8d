package config

import (
	"errors"
)

// Load wraps ErrLoadConfig around unreadable files or environment, and
// Validate wraps ErrInvalidConfig around out-of-range engine settings.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
