package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps plugin names to factories
// It is an explicit value owned by the engine and passed to whoever resolves names
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory by name, first registration wins
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("%w: %q", ErrNilFactory, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePlugin, name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup retrieves a factory by name
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns all registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered plugins
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
