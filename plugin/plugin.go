// Package plugin defines the effect lifecycle contract and the manager that hosts
// one effect instance per window with fault isolation.
//
// A plugin is constructed by its Factory, initialized once with a Context, updated
// every tick, and destroyed when its window replaces or drops it. Any returned error
// or panic from these calls is a fault: it is reported and contained to the window.
package plugin

import (
	"github.com/lixenwraith/hollywood/cursor"
	"github.com/lixenwraith/hollywood/render"
)

// Plugin is the lifecycle contract every effect satisfies
type Plugin interface {
	// Init receives the hosting window's context, the viewport is lent until Destroy
	Init(ctx Context) error
	// Update advances the effect by dt seconds and draws into the viewport
	Update(dt float64, aux AuxState) error
	// Destroy releases the instance, it must not touch the viewport afterwards
	Destroy()
}

// Base provides a no-op Destroy for plugins without teardown
type Base struct{}

// Destroy does nothing
func (Base) Destroy() {}

// Factory constructs a fresh, uninitialized instance
type Factory func() (Plugin, error)

// Context is handed to Init
type Context struct {
	Viewport *render.Viewport
	Width    int
	Height   int
	Cursor   *cursor.Cursor
	// Rand returns a float in [0,1)
	Rand func() float64
}

// AuxState is passed to every Update
type AuxState struct {
	WindowID string
	Plugin   string
	// Elapsed is the manager's accumulated running time in seconds
	Elapsed float64
	Frame   uint64
}
