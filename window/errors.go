package window

import "errors"

var (
	// ErrDuplicateWindow is returned when an explicit id is already in use
	ErrDuplicateWindow = errors.New("duplicate window id")
	// ErrUnknownWindow is returned for operations on an id the manager does not own
	ErrUnknownWindow = errors.New("unknown window")
)
