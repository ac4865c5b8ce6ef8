package config

import "errors"

var (
	// ErrInvalidConfig is returned when a document fails to decode or validate
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownPreset is returned when a preset name is not in the loaded config
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrNotLoaded is returned when querying a manager before a successful load
	ErrNotLoaded = errors.New("config not loaded")
)
