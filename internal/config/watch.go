package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the reloaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the configuration at path whenever it changes and passes
// the result to fn. It returns once the watch is established; watching
// stops when ctx is done.
//
// The parent directory is watched so that atomic saves (write to a
// temporary file, then rename) are seen.
func Watch(ctx context.Context, path string, debounce time.Duration, fn ReloadFunc) error {
	if _, err := FormatForPath(path); err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return err
	}

	go watchLoop(ctx, fsw, absPath, debounce, fn)
	return nil
}

func watchLoop(ctx context.Context, fsw *fsnotify.Watcher, path string, debounce time.Duration, fn ReloadFunc) {
	defer fsw.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				fire = time.After(debounce)
			}

		case <-fire:
			fire = nil
			fn(Load(path))

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			fn(nil, err)
		}
	}
}
