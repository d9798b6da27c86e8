package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a config file whenever it is written or recreated.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

// NewWatcher watches the directory holding path, so editors that replace
// the file on save are seen too.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		path:    filepath.Clean(path),
		watcher: fsw,
		logger:  logger,
	}, nil
}

// Run delivers every successfully reloaded Config to onChange until ctx is
// done or Close is called. Reload failures are logged and skipped.
func (w *Watcher) Run(ctx context.Context, onChange func(Config)) {
	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}

			w.logger.Info("config reloaded", zap.String("path", w.path))
			onChange(cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
