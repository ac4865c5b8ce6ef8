package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/hollywood/core"
)

// watchDebounce coalesces editor write bursts into one notification
const watchDebounce = 150 * time.Millisecond

// Watch notifies on changes to path until ctx is done
// The parent directory is watched so atomic rename saves are observed.
// The returned channel is closed when watching stops; it never blocks the watcher,
// notifications pending consumption are coalesced.
func Watch(ctx context.Context, path string, logger *zap.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	out := make(chan struct{}, 1)
	core.Go(func() {
		defer close(out)
		defer w.Close()

		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					debounce = time.After(watchDebounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))
			case <-debounce:
				debounce = nil
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	})
	return out, nil
}
