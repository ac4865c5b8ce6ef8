// Package logging builds the file-backed zap logger
// The terminal owns stdout and stderr, so log output only ever goes to a file
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FileName is the active log file inside the log directory
	FileName = "hollywood.log"
	// MaxSize triggers rotation at startup when exceeded
	MaxSize = 10 * 1024 * 1024
)

// Config selects logging behavior
type Config struct {
	Debug bool
	Dir   string
	Level string
}

// New returns a JSON file logger, or a no-op logger when debug is off
// The returned close function flushes and closes the file and is always non-nil
func New(cfg Config) (*zap.Logger, func(), error) {
	if !cfg.Debug {
		return zap.NewNop(), func() {}, nil
	}

	level := zapcore.DebugLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := rotate(path, time.Now()); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(f),
		zap.NewAtomicLevelAt(level),
	)
	logger := zap.New(core, zap.AddCaller())

	closeFn := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, closeFn, nil
}

// rotate moves an oversized log aside under a timestamped name
func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= MaxSize {
		return nil
	}
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	rotated := fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
