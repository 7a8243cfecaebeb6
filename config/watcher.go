package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/compass/logging"
	"go.viam.com/compass/utils"
)

// Editors often write a file in several steps; wait for them to finish before re-reading.
const reloadDebounce = 50 * time.Millisecond

// A Watcher re-reads a config file whenever it changes on disk.
type Watcher struct {
	path    string
	logger  logging.Logger
	inner   *fsnotify.Watcher
	configs chan *Config
	workers *utils.StoppableWorkers
}

// NewWatcher watches the config file at path. The directory is watched rather than the file
// so that editors replacing the file through a rename are still seen.
func NewWatcher(ctx context.Context, path string, logger logging.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := inner.Add(filepath.Dir(absPath)); err != nil {
		return nil, errors.Wrapf(multierr.Combine(err, inner.Close()), "cannot watch %q", path)
	}

	w := &Watcher{
		path:    absPath,
		logger:  logger,
		inner:   inner,
		configs: make(chan *Config, 1),
	}
	debounced := debounce.New(reloadDebounce)
	w.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		w.run(ctx, debounced)
	})
	return w, nil
}

// Config yields each successfully read config. Only the newest unread one is kept.
func (w *Watcher) Config() <-chan *Config {
	return w.configs
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.workers.Stop()
	return w.inner.Close()
}

func (w *Watcher) run(ctx context.Context, debounced func(func())) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.inner.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounced(func() { w.reload(ctx) })
		case err, ok := <-w.inner.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("error watching config", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	cfg, err := Read(ctx, w.path, w.logger)
	if err != nil {
		w.logger.Warnw("ignoring invalid config change", "path", w.path, "error", err)
		return
	}
	w.logger.Infow("config changed", "path", w.path)
	for {
		select {
		case w.configs <- cfg:
			return
		default:
		}
		// Drop the stale unread config.
		select {
		case <-w.configs:
		default:
		}
	}
}
