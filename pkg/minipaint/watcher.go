package minipaint

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// configWatcher calls onChange once a burst of writes to one file has
// settled for the debounce interval. onError receives watcher failures.
type configWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
	onError  func(error)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// newConfigWatcher watches the directory holding path, so editors that
// replace the file by renaming are seen too.
func newConfigWatcher(path string, debounce time.Duration, onChange func(), onError func(error)) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &configWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start runs the event loop in a goroutine.
func (cw *configWatcher) Start() {
	go cw.loop()
}

// Stop ends the event loop and waits for it. Safe to call more than once.
func (cw *configWatcher) Stop() {
	cw.stopOnce.Do(func() { close(cw.stop) })
	<-cw.done
}

// relevant reports whether ev touches the watched file with an operation
// that can change its content.
func (cw *configWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		name = ev.Name
	}
	return name == cw.path
}

func (cw *configWatcher) loop() {
	defer close(cw.done)
	defer cw.watcher.Close()

	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-cw.stop:
			return

		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if cw.relevant(ev) {
				timer.Reset(cw.debounce)
			}

		case <-timer.C:
			cw.onChange()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			if cw.onError != nil {
				cw.onError(err)
			}
		}
	}
}
