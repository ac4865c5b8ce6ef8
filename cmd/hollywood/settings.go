package main

import (
	"flag"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// settings are the host options, read from HOLLYWOOD_* variables then overridden by flags
type settings struct {
	Config   string `envconfig:"CONFIG" default:"asset/config.yaml"`
	Preset   string `envconfig:"PRESET" default:"default"`
	FPS      int    `envconfig:"FPS" default:"30"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
	LogDir   string `envconfig:"LOG_DIR" default:"logs"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	Mute     bool   `envconfig:"MUTE" default:"false"`
	Cache    string `envconfig:"CACHE"`
	Watch    bool   `envconfig:"WATCH" default:"true"`
}

func loadSettings(args []string) (settings, error) {
	var s settings
	if err := envconfig.Process("hollywood", &s); err != nil {
		return s, fmt.Errorf("environment: %w", err)
	}

	fs := flag.NewFlagSet("hollywood", flag.ContinueOnError)
	fs.StringVar(&s.Config, "config", s.Config, "Desktop configuration file (yaml, json, toml)")
	fs.StringVar(&s.Preset, "preset", s.Preset, "Preset applied after boot")
	fs.IntVar(&s.FPS, "fps", s.FPS, "Frame rate")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "Write a debug log")
	fs.StringVar(&s.LogDir, "log-dir", s.LogDir, "Log directory")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "Log level")
	fs.BoolVar(&s.Mute, "mute", s.Mute, "Disable audio")
	fs.StringVar(&s.Cache, "cache", s.Cache, "Override cache file preferred over -config")
	fs.BoolVar(&s.Watch, "watch", s.Watch, "Reload when the configuration file changes")
	if err := fs.Parse(args); err != nil {
		return s, err
	}

	if s.FPS <= 0 {
		return s, fmt.Errorf("fps must be positive, got %d", s.FPS)
	}
	return s, nil
}
