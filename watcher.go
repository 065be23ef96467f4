package imagegate

import (
	"github.com/fsnotify/fsnotify"
)

// CacheWatcher invalidates a dimension probe's cache when a watched
// file changes on disk. The cache already guards against stale content
// via its header digest; the watcher drops entries eagerly so changed
// files are not re-hashed against a dead entry.
type CacheWatcher struct {
	watcher *fsnotify.Watcher
	probe   *DimensionProbe
	done    chan struct{}
}

// NewCacheWatcher creates a watcher bound to the given probe.
func NewCacheWatcher(probe *DimensionProbe) (*CacheWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &CacheWatcher{
		watcher: w,
		probe:   probe,
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

func (w *CacheWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.probe.Invalidate(event.Name)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// Add starts watching a path.
func (w *CacheWatcher) Add(path string) error {
	return w.watcher.Add(path)
}

// Remove stops watching a path.
func (w *CacheWatcher) Remove(path string) error {
	return w.watcher.Remove(path)
}

// Close stops the watcher.
func (w *CacheWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
