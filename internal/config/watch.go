package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it is written.
type Watcher struct {
	path    string
	flags   *Flags
	fs      *fsnotify.Watcher
	changes chan *Config
	errs    chan error
	done    chan struct{}
}

// Watch starts watching path. Reloaded configs have the same flag
// overrides applied as at startup. The directory is watched rather than
// the file so editors that save by renaming are seen too.
func Watch(path string, flags *Flags) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:    abs,
		flags:   flags,
		fs:      fw,
		changes: make(chan *Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers the latest reloaded config. Only the newest pending
// config is kept.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

// Errors delivers reload failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg := Default()
			if err := loadFromFile(cfg, w.path); err != nil {
				w.report(fmt.Errorf("reloading %s: %w", w.path, err))
				continue
			}
			w.flags.Apply(cfg)
			w.publish(cfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) publish(cfg *Config) {
	// Drop a stale pending config so the reader always sees the newest.
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- cfg:
	default:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
