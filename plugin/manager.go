package plugin

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/hollywood/constants"
)

// record is one active instance bound to a window
type record struct {
	windowID string
	name     string
	instance Plugin
	faults   uint64
	// limiter throttles repeated update fault reports of this window
	limiter *rate.Limiter
}

// Stats counts lifecycle events since the manager was created
type Stats struct {
	Instantiated uint64
	Destroyed    uint64
	Unknown      uint64
	InitFaults   uint64
	UpdateFaults uint64
}

// Manager instantiates, updates and destroys plugin instances, one per window
// Not safe for concurrent use; the engine drives it from the tick loop only
type Manager struct {
	registry *Registry
	logger   *zap.Logger

	active map[string]*record
	order  []*record // insertion order for deterministic updates

	elapsed float64
	frame   uint64
	stats   Stats
}

// NewManager creates a manager resolving names through reg
func NewManager(reg *Registry, logger *zap.Logger) *Manager {
	if reg == nil {
		reg = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		registry: reg,
		logger:   logger.Named("plugins"),
		active:   make(map[string]*record),
	}
}

// Registry returns the registry the manager resolves names through
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Register adds a factory to the registry, a duplicate name is rejected and reported
func (m *Manager) Register(name string, factory Factory) error {
	if err := m.registry.Register(name, factory); err != nil {
		m.logger.Warn("plugin registration rejected", zap.String("plugin", name), zap.Error(err))
		return err
	}
	m.logger.Debug("plugin registered", zap.String("plugin", name))
	return nil
}

// Instantiate constructs the named plugin, initializes it with ctx and records it against windowID
// Returns nil and an error on unknown names and construction faults, leaving no record behind
func (m *Manager) Instantiate(name, windowID string, ctx Context) (Plugin, error) {
	factory, ok := m.registry.Lookup(name)
	if !ok {
		m.stats.Unknown++
		m.logger.Error("plugin not found", zap.String("plugin", name), zap.String("window", windowID))
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}

	// One instance per window: an existing record is torn down before the new one starts
	if _, exists := m.active[windowID]; exists {
		m.DestroyPlugin(windowID)
	}

	var instance Plugin
	err := guard(windowID, name, OpFactory, func() error {
		p, ferr := factory()
		if ferr != nil {
			return ferr
		}
		if p == nil {
			return fmt.Errorf("factory returned nil instance")
		}
		instance = p
		return nil
	})
	if err == nil {
		err = guard(windowID, name, OpInit, func() error {
			return instance.Init(ctx)
		})
		if err != nil {
			// Release whatever the half-initialized instance acquired
			_ = guard(windowID, name, OpDestroy, func() error {
				instance.Destroy()
				return nil
			})
		}
	}
	if err != nil {
		m.stats.InitFaults++
		m.logger.Error("failed to instantiate plugin",
			zap.String("plugin", name),
			zap.String("window", windowID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrPluginConstruction, err)
	}

	rec := &record{
		windowID: windowID,
		name:     name,
		instance: instance,
		limiter:  rate.NewLimiter(rate.Every(constants.FaultReportInterval), constants.FaultReportBurst),
	}
	m.active[windowID] = rec
	m.order = append(m.order, rec)
	m.stats.Instantiated++
	return instance, nil
}

// Update advances every active instance
// A fault in one instance is reported and skipped, the instance stays attached and is retried next tick
func (m *Manager) Update(dt float64) {
	m.elapsed += dt
	m.frame++

	for _, rec := range m.order {
		aux := AuxState{
			WindowID: rec.windowID,
			Plugin:   rec.name,
			Elapsed:  m.elapsed,
			Frame:    m.frame,
		}
		err := guard(rec.windowID, rec.name, OpUpdate, func() error {
			return rec.instance.Update(dt, aux)
		})
		if err == nil {
			continue
		}
		rec.faults++
		m.stats.UpdateFaults++
		if rec.limiter.Allow() {
			m.logger.Error("error updating plugin",
				zap.String("plugin", rec.name),
				zap.String("window", rec.windowID),
				zap.Uint64("faults", rec.faults),
				zap.Error(err),
			)
		}
	}
}

// DestroyPlugin tears down the instance recorded for windowID
// The record is removed even if Destroy faults
func (m *Manager) DestroyPlugin(windowID string) {
	rec, ok := m.active[windowID]
	if !ok {
		return
	}
	delete(m.active, windowID)
	for i, r := range m.order {
		if r == rec {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.stats.Destroyed++

	err := guard(windowID, rec.name, OpDestroy, func() error {
		rec.instance.Destroy()
		return nil
	})
	if err != nil {
		m.logger.Error("error destroying plugin",
			zap.String("plugin", rec.name),
			zap.String("window", windowID),
			zap.Error(err),
		)
	}
}

// DestroyAll tears down every active instance
func (m *Manager) DestroyAll() {
	for len(m.order) > 0 {
		m.DestroyPlugin(m.order[0].windowID)
	}
}

// Active returns the instance recorded for windowID, nil if none
func (m *Manager) Active(windowID string) Plugin {
	if rec, ok := m.active[windowID]; ok {
		return rec.instance
	}
	return nil
}

// ActiveName returns the plugin name recorded for windowID
func (m *Manager) ActiveName(windowID string) (string, bool) {
	rec, ok := m.active[windowID]
	if !ok {
		return "", false
	}
	return rec.name, true
}

// ActiveCount returns the number of recorded instances
func (m *Manager) ActiveCount() int {
	return len(m.order)
}

// Faults returns the update fault count of the instance recorded for windowID
func (m *Manager) Faults(windowID string) uint64 {
	if rec, ok := m.active[windowID]; ok {
		return rec.faults
	}
	return 0
}

// Stats returns lifecycle counters
func (m *Manager) Stats() Stats {
	return m.stats
}
