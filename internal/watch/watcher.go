// Package watch re-validates a site configuration file whenever it changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/load"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
	"github.com/fsnotify/fsnotify"
)

// Handler receives the result of every reload. Exactly one of cfg and err is non-nil.
type Handler func(cfg *siteconfig.SiteConfig, err error)

// Watcher monitors one configuration file.
type Watcher struct {
	path     string
	handler  Handler
	loadOpts []load.Option
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLoadOptions passes options through to load.Site.
func WithLoadOptions(opts ...load.Option) Option {
	return func(w *Watcher) { w.loadOpts = opts }
}

// New starts watching the directory that holds configPath. Changes are not
// reported until Run is called.
func New(configPath string, handler Handler, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		path:     absPath,
		handler:  handler,
		debounce: 500 * time.Millisecond,
		watcher:  fw,
	}
	for _, opt := range opts {
		opt(w)
	}

	// Editors often replace the file, so the directory is watched instead.
	dir := filepath.Dir(absPath)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch config directory %s: %w", dir, err)
	}
	return w, nil
}

// Close releases the underlying watcher. Run calls it on return.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run delivers debounced reloads to the handler until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.Close() }()

	slog.Info("Watching configuration", logfields.Path(w.path))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Remove) {
				slog.Warn("Config file removed", logfields.Path(event.Name))
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("Config file change detected", logfields.Path(event.Name), logfields.Event(event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Config watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	start := time.Now()
	cfg, err := load.Site(w.path, w.loadOpts...)
	elapsed := logfields.DurationMS(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		slog.Debug("Configuration reload failed", logfields.Path(w.path), elapsed, logfields.Error(err))
		w.handler(nil, err)
		return
	}
	slog.Debug("Configuration reloaded", logfields.Path(w.path), elapsed)
	w.handler(cfg, nil)
}
