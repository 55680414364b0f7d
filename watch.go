package stache

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadCallback is invoked once per template recompiled after a
// filesystem change. tpl is nil when err is non-nil.
type ReloadCallback func(name string, tpl *Template, err error)

// Watcher recompiles a Folder's templates when files under its root
// change. Events are debounced so an editor's save dance triggers one
// reload, and every reload recompiles the whole set because partials
// are inlined at compile time.
type Watcher struct {
	folder   *Folder
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu        sync.Mutex
	callbacks []ReloadCallback

	done      chan struct{}
	closeOnce sync.Once
}

// Watch starts watching the folder's directory tree. A non-positive
// debounce falls back to 250ms.
func (f *Folder) Watch(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		folder:   f,
		fsw:      fsw,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.loop()
	f.log.Info("watching template folder", zap.String("dir", f.dir))
	return w, nil
}

// OnReload registers cb to run after every reload.
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	dirty := false

	for {
		select {
		case <-w.done:
			timer.Stop()
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				// New subdirectories need their own watch.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(ev.Name); err != nil {
						w.folder.log.Warn("watch add failed",
							zap.String("path", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if w.folder.ext != "" && filepath.Ext(ev.Name) != w.folder.ext {
				continue
			}
			if dirty {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			dirty = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.folder.log.Error("watch error", zap.Error(err))

		case <-timer.C:
			if !dirty {
				continue
			}
			dirty = false
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	results := w.folder.refresh()

	w.mu.Lock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, r := range results {
		for _, cb := range callbacks {
			cb(r.name, r.tpl, r.err)
		}
	}
}
