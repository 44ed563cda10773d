package runtimecfg

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch revalidates the configuration document whenever it is replaced on
// disk. The server serves the file straight from disk regardless; this only
// surfaces a bad redeploy in the logs instead of in the next user's browser.
// Blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and deploy scripts replace the file
	// rather than writing it in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			if _, err := Load(path); err != nil {
				logger.Warn("configuration document changed and is no longer servable",
					zap.String("path", path),
					zap.Error(err))
				continue
			}
			logger.Info("configuration document reloaded", zap.String("path", path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("configuration watcher error", zap.Error(err))
		}
	}
}
