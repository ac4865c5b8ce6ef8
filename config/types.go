package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Size is a width/height pair in cells
type Size struct {
	Width  int `yaml:"width" toml:"width" json:"width"`
	Height int `yaml:"height" toml:"height" json:"height"`
}

// File is the on-disk document
type File struct {
	Global  RawGlobal            `yaml:"global" toml:"global" json:"global"`
	Presets map[string]RawPreset `yaml:"presets" toml:"presets" json:"presets"`
}

// RawGlobal holds global settings as written by the user
type RawGlobal struct {
	ReferenceResolution *Size `yaml:"referenceResolution,omitempty" toml:"referenceResolution,omitempty" json:"referenceResolution,omitempty"`
	MaintainAspectRatio bool  `yaml:"maintainAspectRatio" toml:"maintainAspectRatio" json:"maintainAspectRatio"`
}

// RawPreset is a named window set
type RawPreset struct {
	Windows []RawWindow `yaml:"windows" toml:"windows" json:"windows"`
}

// RawWindow is an unresolved window description, nil fields take defaults
type RawWindow struct {
	ID            string    `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	X             int       `yaml:"x" toml:"x" json:"x"`
	Y             int       `yaml:"y" toml:"y" json:"y"`
	Width         *int      `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty"`
	Height        *int      `yaml:"height,omitempty" toml:"height,omitempty" json:"height,omitempty"`
	Title         *string   `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	Style         *RawStyle `yaml:"style,omitempty" toml:"style,omitempty" json:"style,omitempty"`
	Plugin        PluginRef `yaml:"plugin" toml:"plugin" json:"plugin"`
	CycleInterval *int      `yaml:"cycleInterval,omitempty" toml:"cycleInterval,omitempty" json:"cycleInterval,omitempty"`
}

// RawStyle is an unresolved chrome style
type RawStyle struct {
	BorderColor *ColorValue `yaml:"borderColor,omitempty" toml:"borderColor,omitempty" json:"borderColor,omitempty"`
	BorderWidth *int        `yaml:"borderWidth,omitempty" toml:"borderWidth,omitempty" json:"borderWidth,omitempty"`
	BgColor     *ColorValue `yaml:"bgColor,omitempty" toml:"bgColor,omitempty" json:"bgColor,omitempty"`
	TitleColor  *ColorValue `yaml:"titleColor,omitempty" toml:"titleColor,omitempty" json:"titleColor,omitempty"`
	Line        string      `yaml:"line,omitempty" toml:"line,omitempty" json:"line,omitempty"`
}

// PluginRef is a single plugin name or an ordered list for cycling
type PluginRef []string

// UnmarshalYAML accepts a scalar name or a sequence of names
func (p *PluginRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		return p.set([]string{name})
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		return p.set(names)
	default:
		return fmt.Errorf("line %d: plugin must be a name or a list of names", node.Line)
	}
}

// UnmarshalTOML accepts a string or an array of strings
func (p *PluginRef) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		return p.set([]string{v})
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("plugin list entry %v is not a string", item)
			}
			names = append(names, s)
		}
		return p.set(names)
	default:
		return fmt.Errorf("plugin must be a name or a list of names, got %T", data)
	}
}

func (p *PluginRef) set(names []string) error {
	if len(names) == 0 {
		return errors.New("plugin list is empty")
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return errors.New("plugin name is empty")
		}
	}
	*p = names
	return nil
}

// ColorValue is a 24-bit RGB color given as a number or a hex string
type ColorValue uint32

// ParseColor parses "00FF00", "0x00ff00" or "#00ff00"
func ParseColor(s string) (ColorValue, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	if len(h) > 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	if h == "" {
		return 0, fmt.Errorf("empty color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil || v > 0xFFFFFF {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return ColorValue(v), nil
}

// zeroPadded reports a bare literal like 003300, which YAML would read as octal
func zeroPadded(v string) bool {
	return len(v) > 1 && v[0] == '0' && v[1] != 'x' && v[1] != 'X'
}

func colorFromInt(v int64) (ColorValue, error) {
	if v < 0 || v > 0xFFFFFF {
		return 0, fmt.Errorf("color %d out of range", v)
	}
	return ColorValue(v), nil
}

// UnmarshalYAML accepts an integer or a hex string
func (c *ColorValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a number or hex string", node.Line)
	}
	var parsed ColorValue
	var err error
	if node.ShortTag() == "!!int" && !zeroPadded(node.Value) {
		var n int64
		if err = node.Decode(&n); err != nil {
			return err
		}
		parsed, err = colorFromInt(n)
	} else {
		parsed, err = ParseColor(node.Value)
	}
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// UnmarshalTOML accepts an integer or a hex string
func (c *ColorValue) UnmarshalTOML(data any) error {
	var parsed ColorValue
	var err error
	switch v := data.(type) {
	case int64:
		parsed, err = colorFromInt(v)
	case string:
		parsed, err = ParseColor(v)
	default:
		err = fmt.Errorf("color must be a number or hex string, got %T", data)
	}
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
