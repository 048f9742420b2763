package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reloads the config file on edits and delivers the parsed result.
// The parent directory is watched rather than the file itself since most
// editors replace the file on save.
type Watcher struct {
	watcher *fsnotify.Watcher
	file    string

	Configs chan *Config
	Errors  chan error

	closeCh chan struct{}
	once    sync.Once
}

func Watch(file string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	file = filepath.Clean(file)
	if err := w.Add(filepath.Dir(file)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		file:    file,
		Configs: make(chan *Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			now := time.Now()
			if now.Sub(last) < debounce {
				continue
			}

			cfg, err := Load(w.file)
			if err != nil {
				// Likely a save in progress, report and wait for the
				// next event.
				w.sendErr(err)
				continue
			}
			last = now

			select {
			case w.Configs <- cfg:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
