package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/hollywood/asset"
	"github.com/lixenwraith/hollywood/audio"
	"github.com/lixenwraith/hollywood/config"
	"github.com/lixenwraith/hollywood/core"
	"github.com/lixenwraith/hollywood/effects"
	"github.com/lixenwraith/hollywood/engine"
	"github.com/lixenwraith/hollywood/logging"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the desktop crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	s, err := loadSettings(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "hollywood: %v\n", err)
		os.Exit(2)
	}

	if err := run(s); err != nil {
		fmt.Fprintf(os.Stderr, "hollywood: %v\n", err)
		os.Exit(1)
	}
}

func run(s settings) error {
	logger, closeLog, err := logging.New(logging.Config{Debug: s.Debug, Dir: s.LogDir, Level: s.LogLevel})
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashScreen(screen)
	// Normal exit terminal cleanup
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()
	screen.HideCursor()

	var player audio.Player = audio.Silent{}
	if !s.Mute {
		if sp, err := audio.NewSpeaker(); err == nil {
			player = sp
		} else {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		}
	}

	cfg := config.NewManager(config.WithCachePath(s.Cache), config.WithLogger(logger))
	e := engine.New(cfg, engine.WithLogger(logger), engine.WithAudio(player))
	defer e.Shutdown()

	if err := e.Init(engine.NewScreenSurface(screen)); err != nil {
		return err
	}
	if err := effects.RegisterAll(e.RegisterPlugin); err != nil {
		logger.Warn("effect registration incomplete", zap.Error(err))
	}
	// Config and preset failures leave an empty desktop, not a dead process
	err = e.LoadConfig(s.Config)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("config file missing, using built-in layout", zap.String("path", s.Config))
		err = e.LoadConfigData(asset.DefaultConfigName, asset.DefaultConfig)
	}
	if err == nil {
		_ = e.ApplyPreset(s.Preset)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reload <-chan struct{}
	if s.Watch {
		if ch, err := config.Watch(ctx, s.Config, logger); err == nil {
			reload = ch
		} else {
			logger.Warn("config watch disabled", zap.String("path", s.Config), zap.Error(err))
		}
	}

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// Nil event after Fini
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	frameTicker := time.NewTicker(time.Second / time.Duration(s.FPS))
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a := keyAction(ev)
				if a.quit {
					return nil
				}
				if a.ok {
					e.HandleCommand(a.command)
				}
			case *tcell.EventResize:
				screen.Sync()
				e.HandleResize(ev.Size())
			}

		case _, open := <-reload:
			if !open {
				reload = nil
				continue
			}
			if err := e.ReloadConfig(s.Config); err == nil {
				logger.Info("configuration reloaded", zap.String("path", s.Config))
			}

		case <-frameTicker.C:
			e.Frame()
		}
	}
}
