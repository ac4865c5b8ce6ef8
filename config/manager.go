// Package config loads, resolves and persists the desktop configuration.
//
// Documents are YAML, JSON or TOML selected by file extension. Every default is
// filled once at load time, consumers read fully resolved values only.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Option configures a Manager
type Option func(*Manager)

// WithCachePath sets an override file preferred over the load path when parseable
func WithCachePath(path string) Option {
	return func(m *Manager) {
		m.cachePath = path
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager owns the configuration value, the core only reads from it
type Manager struct {
	mu        sync.RWMutex
	logger    *zap.Logger
	cachePath string

	raw      File
	resolved Resolved
	source   string
	loaded   bool
}

// NewManager creates an empty manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("config")
	return m
}

// Load reads the cache file if set and valid, otherwise path
// On failure the previously loaded configuration stays in effect
func (m *Manager) Load(path string) error {
	if m.cachePath != "" {
		raw, resolved, err := readFile(m.cachePath)
		if err == nil {
			m.replace(m.cachePath, raw, resolved)
			m.logger.Info("config loaded from cache", zap.String("path", m.cachePath))
			return nil
		}
		if !os.IsNotExist(err) {
			m.logger.Warn("failed to parse cached config, falling back to file",
				zap.String("path", m.cachePath), zap.Error(err))
		}
	}

	return m.LoadFile(path)
}

// LoadFile reads path without consulting the cache
// Reloads use it so an edit to path is never shadowed by a stale cache
func (m *Manager) LoadFile(path string) error {
	raw, resolved, err := readFile(path)
	if err != nil {
		m.logger.Error("failed to load config", zap.String("path", path), zap.Error(err))
		return err
	}
	m.replace(path, raw, resolved)
	m.logger.Info("config loaded from file",
		zap.String("path", path),
		zap.Strings("presets", resolved.Names),
	)
	return nil
}

// LoadData decodes an in-memory document, name selects the format by extension
// The cache file is not consulted
func (m *Manager) LoadData(name string, data []byte) error {
	raw, resolved, err := decodeResolve(name, data)
	if err != nil {
		m.logger.Error("failed to load config", zap.String("source", name), zap.Error(err))
		return err
	}
	m.replace(name, raw, resolved)
	m.logger.Info("config loaded from memory", zap.String("source", name), zap.Strings("presets", resolved.Names))
	return nil
}

func (m *Manager) replace(source string, raw File, resolved Resolved) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.resolved = resolved
	m.source = source
	m.loaded = true
}

// Loaded reports whether any load succeeded
func (m *Manager) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Source returns the path the current configuration came from
func (m *Manager) Source() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source
}

// Global returns the resolved global section, zero value before load
func (m *Manager) Global() Global {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolved.Global
}

// Preset returns the resolved preset by name
func (m *Manager) Preset(name string) (Preset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return Preset{}, ErrNotLoaded
	}
	p, ok := m.resolved.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames returns preset names in sorted order
func (m *Manager) PresetNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.resolved.Names...)
}

// SetMaintainAspectRatio updates the layout policy flag
func (m *Manager) SetMaintainAspectRatio(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw.Global.MaintainAspectRatio = v
	m.resolved.Global.MaintainAspectRatio = v
}

// Save writes the current document to path, an empty path writes the cache file
func (m *Manager) Save(path string) error {
	if path == "" {
		path = m.cachePath
	}
	if path == "" {
		return fmt.Errorf("save: no path and no cache configured")
	}

	m.mu.RLock()
	if !m.loaded {
		m.mu.RUnlock()
		return ErrNotLoaded
	}
	data, err := encode(path, m.raw)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	m.logger.Info("config saved", zap.String("path", path))
	return nil
}

// readFile decodes and resolves the document at path
func readFile(path string) (File, Resolved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, Resolved{}, err
	}
	return decodeResolve(path, data)
}

func decodeResolve(name string, data []byte) (File, Resolved, error) {
	f, err := Decode(name, data)
	if err != nil {
		return File{}, Resolved{}, err
	}
	r, err := Resolve(f)
	if err != nil {
		return File{}, Resolved{}, fmt.Errorf("%s: %w", name, err)
	}
	return f, r, nil
}

// Decode parses data in the format implied by the extension of name
func Decode(name string, data []byte) (File, error) {
	var f File
	switch format(name) {
	case "toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return File{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	default:
		// JSON is a subset of YAML
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	return f, nil
}

func encode(name string, f File) ([]byte, error) {
	switch format(name) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		return json.MarshalIndent(f, "", "  ")
	default:
		return yaml.Marshal(f)
	}
}

func format(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
