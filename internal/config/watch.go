package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rgehrsitz/viager/internal/domain"
)

// DefaultWatchDebounce batches the bursts of events editors emit on save
const DefaultWatchDebounce = 300 * time.Millisecond

// WatchOffers reloads the offer file whenever it changes and passes the
// result (or the load error) to onChange. It blocks until ctx is done.
// The parent directory is watched so editors that save by rename are seen.
func WatchOffers(ctx context.Context, path string, debounce time.Duration, onChange func(*domain.Configuration, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	parser := NewInputParser()
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(nil, fmt.Errorf("watch error: %w", err))

		case <-timer.C:
			onChange(parser.LoadFromFile(abs))
		}
	}
}
