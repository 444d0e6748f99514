package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce collapses the burst of events an editor save produces.
const DefaultWatchDebounce = 250 * time.Millisecond

// Watch reloads the store whenever its catalog file is written or replaced.
// The watcher is registered before Watch returns; events are handled in the
// background until ctx is cancelled. A reload that fails validation is logged
// and the previous catalog stays in place.
func (s *InMemoryStore) Watch(ctx context.Context, debounce time.Duration) error {
	if s.configPath == "" {
		return errors.New("catalog has no backing file to watch")
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	// Watch the directory: editors and config management replace files via rename.
	if err := watcher.Add(filepath.Dir(s.configPath)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	go s.watchLoop(ctx, watcher, debounce)

	s.logger.Info("Watching catalog for changes", "config_path", s.configPath)
	return nil
}

func (s *InMemoryStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration) {
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(s.configPath)
	var timer *time.Timer

	reload := func() {
		if err := s.Reload(); err != nil {
			s.logger.Warn("Catalog reload failed, keeping previous catalog", "error", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Catalog watcher error", "error", err)
		}
	}
}
