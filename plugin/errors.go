package plugin

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrUnknownPlugin is returned when instantiating an unregistered name
	ErrUnknownPlugin = errors.New("unknown plugin")
	// ErrDuplicatePlugin is returned when a name is registered twice, the first registration stays
	ErrDuplicatePlugin = errors.New("plugin already registered")
	// ErrPluginConstruction wraps factory and Init faults
	ErrPluginConstruction = errors.New("plugin construction failed")
	// ErrNilFactory is returned when registering a nil factory
	ErrNilFactory = errors.New("nil plugin factory")
)

// Lifecycle operations named in a FaultError
const (
	OpFactory = "factory"
	OpInit    = "init"
	OpUpdate  = "update"
	OpDestroy = "destroy"
)

// FaultError describes an error or panic raised by a plugin call
type FaultError struct {
	Window string
	Plugin string
	Op     string
	Err    error
	// Panic holds the recovered value when the fault was a panic
	Panic any
	Stack []byte
}

func (e *FaultError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("plugin %q in window %q: %s panicked: %v", e.Plugin, e.Window, e.Op, e.Panic)
	}
	return fmt.Sprintf("plugin %q in window %q: %s failed: %v", e.Plugin, e.Window, e.Op, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// guard runs fn, converting a returned error or a panic into a *FaultError
func guard(window, name, op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fe := &FaultError{Window: window, Plugin: name, Op: op, Panic: r, Stack: debug.Stack()}
			if e, ok := r.(error); ok {
				fe.Err = e
			}
			err = fe
		}
	}()
	if ferr := fn(); ferr != nil {
		return &FaultError{Window: window, Plugin: name, Op: op, Err: ferr}
	}
	return nil
}
