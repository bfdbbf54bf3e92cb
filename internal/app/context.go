// Package app wires the navigation, path bar and tag packages into windows
// of tabs, and owns the services they share.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/justyntemme/plane/internal/config"
	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/locate"
	"github.com/justyntemme/plane/internal/schedule"
	"github.com/justyntemme/plane/internal/store"
	"github.com/justyntemme/plane/internal/tags"
	"github.com/justyntemme/plane/internal/trash"
	"github.com/justyntemme/plane/internal/watch"
)

// Context holds the services every window uses. It is created once at
// startup and closed at teardown; everything runs on the goroutine that
// owns it.
type Context struct {
	Config  config.Config
	Home    string
	Tags    *tags.Registry
	Locator *locate.Locator
	Store   *store.DB          // nil when the state database could not be opened
	Trash   *trash.Trash       // nil where no trash is available
	Watcher *watch.FileWatcher // nil when watching is disabled
	Queue   *schedule.Queue

	windows []*Window
}

// NewContext opens the services described by cfg. Only the tag registry is
// required; the store, trash and watcher degrade to nil with an error log.
func NewContext(cfg config.Config) (*Context, error) {
	locator, err := locate.New(64)
	if err != nil {
		return nil, err
	}
	c := &Context{
		Config:  cfg,
		Home:    cfg.HomeDir(),
		Locator: locator,
		Queue:   &schedule.Queue{},
	}

	reg, err := tags.Load(cfg.TagFile())
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	c.Tags = reg

	if db, err := store.Open(cfg.StorePath()); err != nil {
		debug.Error(debug.STORE, "failed to open state database: %v", err)
	} else {
		c.Store = db
	}

	if t, err := trash.Default(); err != nil {
		debug.Log(debug.TRASH, "no trash: %v", err)
	} else {
		c.Trash = t
	}

	if cfg.Watch.Enabled {
		fw, err := watch.NewFileWatcher(time.Duration(cfg.Watch.DebounceMs) * time.Millisecond)
		if err != nil {
			debug.Error(debug.WATCH, "failed to create watcher: %v", err)
		} else if err := fw.Watch(reg.Path()); err != nil {
			debug.Error(debug.WATCH, "cannot watch %s: %v", reg.Path(), err)
			fw.Close()
		} else {
			c.Watcher = fw
		}
	}

	debug.Log(debug.APP, "context ready: home=%s tags=%s", c.Home, reg.Path())
	return c, nil
}

// Poll handles pending outside changes without blocking. It reports
// whether the tag registry changed.
func (c *Context) Poll() bool {
	if c.Watcher == nil {
		return false
	}
	changed := false
	for {
		select {
		case path := <-c.Watcher.Notify():
			debug.Log(debug.WATCH, "change in %s", path)
			ok, err := c.Tags.Reload()
			if err != nil {
				debug.Error(debug.TAGS, "%v", err)
				continue
			}
			changed = changed || ok
		default:
			return changed
		}
	}
}

// Tick advances deferred presentation work by d.
func (c *Context) Tick(d time.Duration) int {
	return c.Queue.Advance(d)
}

// Close flushes window state and releases the services. Window state is
// written before the store closes.
func (c *Context) Close() error {
	var errs []error
	for _, w := range c.windows {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.windows = nil
	if c.Watcher != nil {
		if err := c.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
