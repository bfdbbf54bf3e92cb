// Package watch reports, debounced, when watched files change on disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/plane/internal/debug"
)

// FileWatcher watches individual files. It watches their parent
// directories, since editors and atomic saves replace files by renaming.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]bool // Watched file paths
	dirs     map[string]int  // Watched directories and how many files use them
	notify   chan string
	done     chan struct{}
	debounce time.Duration
}

// NewFileWatcher creates a watcher that reports a file once no event has
// touched it for debounce.
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	fw := &FileWatcher{
		watcher:  w,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		notify:   make(chan string, 10),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go fw.run()
	return fw, nil
}

func (fw *FileWatcher) run() {
	lastEvent := make(map[string]time.Time)
	ticker := time.NewTicker(fw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)) {
				continue
			}
			name := filepath.Clean(event.Name)
			fw.mu.Lock()
			watched := fw.files[name]
			fw.mu.Unlock()
			if watched {
				lastEvent[name] = time.Now()
				debug.Log(debug.WATCH, "event %s on %s", event.Op, name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "fsnotify error: %v", err)

		case now := <-ticker.C:
			for name, at := range lastEvent {
				if now.Sub(at) < fw.debounce {
					continue
				}
				select {
				case fw.notify <- name:
					debug.Log(debug.WATCH, "change notification: %s", name)
				default:
					// Channel full, the consumer will reload anyway
				}
				delete(lastEvent, name)
			}
		}
	}
}

// Watch starts reporting changes to path.
func (fw *FileWatcher) Watch(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.files[path] {
		return nil
	}
	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return err
		}
	}
	fw.dirs[dir]++
	fw.files[path] = true
	debug.Log(debug.WATCH, "now watching %s", path)
	return nil
}

// Unwatch stops reporting changes to path.
func (fw *FileWatcher) Unwatch(path string) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[path] {
		return
	}
	delete(fw.files, path)
	fw.dirs[dir]--
	if fw.dirs[dir] == 0 {
		delete(fw.dirs, dir)
		if err := fw.watcher.Remove(dir); err != nil {
			// The directory may already be gone
			debug.Log(debug.WATCH, "error unwatching %s: %v", dir, err)
		}
	}
}

// Notify returns the channel that receives changed file paths.
func (fw *FileWatcher) Notify() <-chan string {
	return fw.notify
}

// Close shuts down the watcher
func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
