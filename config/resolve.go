package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/lixenwraith/hollywood/constants"
)

// Global is the resolved global section
type Global struct {
	// ReferenceResolution is zero when no layout scaling is configured
	ReferenceResolution Size
	MaintainAspectRatio bool
}

// HasReference reports whether a usable reference resolution is configured
func (g Global) HasReference() bool {
	return g.ReferenceResolution.Width > 0 && g.ReferenceResolution.Height > 0
}

// Style is a resolved window style with numeric colors
type Style struct {
	BorderColor uint32
	BorderWidth int
	BgColor     uint32
	TitleColor  uint32
	Line        string
}

// Window is a resolved window description, every field carries a usable value
type Window struct {
	ID            string
	X, Y          int
	Width, Height int
	Title         string
	Style         Style
	Plugins       []string
	CycleInterval time.Duration
}

// Preset is a resolved named window set
type Preset struct {
	Name    string
	Windows []Window
}

// Resolved is a fully defaulted configuration
type Resolved struct {
	Global  Global
	Presets map[string]Preset
	Names   []string
}

// Resolve validates f and fills every default
func Resolve(f File) (Resolved, error) {
	r := Resolved{
		Global:  Global{MaintainAspectRatio: f.Global.MaintainAspectRatio},
		Presets: make(map[string]Preset, len(f.Presets)),
	}
	if ref := f.Global.ReferenceResolution; ref != nil {
		if ref.Width < 0 || ref.Height < 0 {
			return Resolved{}, fmt.Errorf("%w: negative reference resolution %dx%d", ErrInvalidConfig, ref.Width, ref.Height)
		}
		r.Global.ReferenceResolution = *ref
	}

	for name, raw := range f.Presets {
		p := Preset{Name: name, Windows: make([]Window, 0, len(raw.Windows))}
		for i, rw := range raw.Windows {
			w, err := resolveWindow(rw)
			if err != nil {
				return Resolved{}, fmt.Errorf("%w: preset %q window %d: %v", ErrInvalidConfig, name, i, err)
			}
			p.Windows = append(p.Windows, w)
		}
		r.Presets[name] = p
		r.Names = append(r.Names, name)
	}
	sort.Strings(r.Names)
	return r, nil
}

func resolveWindow(rw RawWindow) (Window, error) {
	if len(rw.Plugin) == 0 {
		return Window{}, fmt.Errorf("no plugin assigned")
	}
	w := Window{
		ID:            rw.ID,
		X:             rw.X,
		Y:             rw.Y,
		Width:         orPositive(rw.Width, constants.DefaultWindowWidth),
		Height:        orPositive(rw.Height, constants.DefaultWindowHeight),
		Title:         constants.DefaultWindowTitle,
		Plugins:       append([]string(nil), rw.Plugin...),
		CycleInterval: time.Duration(orPositive(rw.CycleInterval, int(constants.DefaultCycleInterval.Milliseconds()))) * time.Millisecond,
		Style: Style{
			BorderColor: constants.DefaultBorderColor,
			BorderWidth: constants.DefaultBorderWidth,
			BgColor:     constants.DefaultBgColor,
			TitleColor:  constants.DefaultTitleColor,
		},
	}
	if rw.Title != nil {
		w.Title = *rw.Title
	}
	if w.Width <= 0 || w.Height <= 0 {
		return Window{}, fmt.Errorf("non-positive size %dx%d", w.Width, w.Height)
	}
	if w.CycleInterval <= 0 {
		return Window{}, fmt.Errorf("non-positive cycle interval %v", w.CycleInterval)
	}

	if st := rw.Style; st != nil {
		w.Style.BorderColor = orColor(st.BorderColor, w.Style.BorderColor)
		w.Style.BgColor = orColor(st.BgColor, w.Style.BgColor)
		w.Style.TitleColor = orColor(st.TitleColor, w.Style.TitleColor)
		w.Style.BorderWidth = orInt(st.BorderWidth, w.Style.BorderWidth)
		w.Style.Line = st.Line
		if w.Style.BorderWidth < 0 {
			return Window{}, fmt.Errorf("negative border width %d", w.Style.BorderWidth)
		}
	}
	return w, nil
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// orPositive treats an unset or zero value as unset
func orPositive(v *int, def int) int {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

func orColor(v *ColorValue, def uint32) uint32 {
	if v == nil {
		return def
	}
	return uint32(*v)
}
