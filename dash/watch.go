package dash

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher redraws the charts of a configuration every time the configuration
// file or one of its dataset files is written.
type Watcher struct {
	file    string
	out     io.Writer
	dash    *Dash
	watcher *fsnotify.Watcher
	dirs    map[string]struct{}
	logger  *slog.Logger

	// called after each reload, with the error of the reload if any.
	OnReload func(error)
}

func NewWatcher(file string, out io.Writer, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := Load(file)
	if err != nil {
		return nil, err
	}
	d, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	w := Watcher{
		file:    filepath.Clean(file),
		out:     out,
		dash:    d,
		watcher: watcher,
		dirs:    make(map[string]struct{}),
		logger:  logger.With(slog.String("module", "watch")),
	}
	return &w, nil
}

// Run draws the charts once, then again after every change until ctx is
// done. Reload errors are logged and the previous charts are kept.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.redraw(ctx); err != nil {
		return err
	}
	if err := w.watch(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !w.watched(ev.Name) {
				continue
			}
			w.logger.Debug("file changed", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			err := w.reload(ctx)
			if err != nil {
				w.logger.Error("reload failed", slog.String("file", ev.Name), slog.String("err", err.Error()))
			}
			if w.OnReload != nil {
				w.OnReload(err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", slog.String("err", err.Error()))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) error {
	cfg, err := Load(w.file)
	if err != nil {
		return err
	}
	if err := w.dash.Reload(cfg); err != nil {
		return err
	}
	if err := w.redraw(ctx); err != nil {
		return err
	}
	return w.watch()
}

func (w *Watcher) redraw(ctx context.Context) error {
	if err := w.dash.Draw(ctx); err != nil {
		return err
	}
	return w.dash.Write(ctx, w.out)
}

// watch follows the directories of the files since editors often replace a
// file instead of writing it in place. Directories no longer holding any of
// the files are dropped.
func (w *Watcher) watch() error {
	dirs := make(map[string]struct{})
	for _, f := range w.files() {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range w.dirs {
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Remove(dir); err != nil {
			w.logger.Warn("unwatch failed", slog.String("dir", dir), slog.String("err", err.Error()))
		}
		delete(w.dirs, dir)
	}
	for dir := range dirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	return nil
}

func (w *Watcher) watched(file string) bool {
	file = filepath.Clean(file)
	for _, f := range w.files() {
		if f == file {
			return true
		}
	}
	return false
}

func (w *Watcher) files() []string {
	list := []string{w.file}
	for _, f := range w.dash.Datasets.Files() {
		list = append(list, filepath.Clean(f))
	}
	return list
}
