package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/location"
	"github.com/justyntemme/plane/internal/store"
	"github.com/justyntemme/plane/internal/tags"
	"github.com/justyntemme/plane/internal/tagview"
	"github.com/justyntemme/plane/internal/trash"
)

var (
	ErrNotDirectory = errors.New("not a directory")
	ErrExists       = errors.New("already exists")
	ErrInvalidName  = errors.New("invalid name")
	ErrNoSelection  = errors.New("nothing selected")
)

// LastLocationKey is the setting holding the active location at close.
const LastLocationKey = "last_location"

// Window is a set of tabs, one of them active.
type Window struct {
	ctx    *Context
	tabs   []*Tab
	active int
	undo   *UndoQueue

	unsubTags func()
	closed    bool
}

// NewWindow opens a window, restoring the saved tabs when configured to.
// Without saved tabs it opens one tab at home.
func (c *Context) NewWindow() (*Window, error) {
	w := &Window{ctx: c, undo: NewUndoQueue(c.Config.Trash.UndoDepth)}
	w.unsubTags = c.Tags.Subscribe(func(change tags.Change) {
		for _, t := range w.tabs {
			t.tagsChanged(change)
		}
	})

	if c.Config.Tabs.RestoreOnStart && c.Store != nil {
		saved, err := c.Store.Tabs()
		if err != nil {
			debug.Error(debug.STORE, "cannot restore tabs: %v", err)
		}
		for _, s := range saved {
			t, err := newTab(c, s.Location)
			if err != nil {
				w.detach()
				return nil, err
			}
			if s.Selected {
				w.active = len(w.tabs)
			}
			w.tabs = append(w.tabs, t)
		}
		debug.Log(debug.APP, "restored %d tabs", len(w.tabs))
	}

	if len(w.tabs) == 0 {
		t, err := newTab(c, location.FromPath(c.Home))
		if err != nil {
			w.detach()
			return nil, err
		}
		w.tabs = []*Tab{t}
		w.active = 0
	}

	c.windows = append(c.windows, w)
	return w, nil
}

// Active returns the active tab.
func (w *Window) Active() *Tab { return w.tabs[w.active] }

// ActiveIndex returns the position of the active tab.
func (w *Window) ActiveIndex() int { return w.active }

// Tabs returns the tabs in order.
func (w *Window) Tabs() []*Tab { return append([]*Tab(nil), w.tabs...) }

// Undo returns the window's undo queue.
func (w *Window) Undo() *UndoQueue { return w.undo }

// NewTab opens a tab at loc and activates it. A zero loc uses the
// configured new tab location.
func (w *Window) NewTab(loc location.Location) (*Tab, error) {
	if loc.IsZero() {
		loc = w.newTabLocation()
	}
	t, err := newTab(w.ctx, loc)
	if err != nil {
		return nil, err
	}
	w.tabs = append(w.tabs, t)
	w.active = len(w.tabs) - 1
	debug.Log(debug.APP, "created tab %s at %s (index %d)", t.ID, loc, w.active)
	return t, nil
}

func (w *Window) newTabLocation() location.Location {
	setting := w.ctx.Config.Tabs.NewTabLocation
	switch setting {
	case "home":
		return location.FromPath(w.ctx.Home)
	case "current", "":
		return w.Active().Location()
	default:
		// Treat as custom path
		if info, err := os.Stat(setting); err == nil && info.IsDir() {
			return location.FromPath(setting)
		}
		debug.Log(debug.APP, "new tab location %q is not a directory, using current", setting)
		return w.Active().Location()
	}
}

// CloseTab closes the tab at index. The last tab cannot be closed.
func (w *Window) CloseTab(index int) bool {
	if len(w.tabs) <= 1 || index < 0 || index >= len(w.tabs) {
		return false
	}
	w.tabs[index].close()
	w.tabs = append(w.tabs[:index], w.tabs[index+1:]...)

	// Keep the same tab active if it was after the closed one
	if w.active > index || w.active >= len(w.tabs) {
		w.active--
	}
	debug.Log(debug.APP, "closed tab %d, active is %d", index, w.active)
	return true
}

// SwitchTab activates the tab at index.
func (w *Window) SwitchTab(index int) bool {
	if index < 0 || index >= len(w.tabs) {
		return false
	}
	w.active = index
	return true
}

// NextTab activates the tab after the active one, wrapping around.
func (w *Window) NextTab() {
	w.active = (w.active + 1) % len(w.tabs)
}

// PrevTab activates the tab before the active one, wrapping around.
func (w *Window) PrevTab() {
	w.active = (w.active - 1 + len(w.tabs)) % len(w.tabs)
}

// Navigate opens what was typed in the path entry in the active tab.
func (w *Window) Navigate(input string) error {
	t := w.Active()
	loc, err := location.Parse(input, t.Location(), w.ctx.Home, w.ctx.Tags.Tags())
	if err != nil {
		return err
	}
	if p, ok := loc.Path(); ok {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", p, ErrNotDirectory)
		}
	} else if loc.Kind() == location.Path {
		// Remote volumes are often mounted right before they are opened.
		w.ctx.Locator.Invalidate()
	}
	t.Nav.NavigateTo(loc)
	return nil
}

// Back goes back in the active tab.
func (w *Window) Back() bool { return w.Active().Nav.GoBack() }

// Forward goes forward in the active tab.
func (w *Window) Forward() bool { return w.Active().Nav.GoForward() }

// AddTag narrows the active tab by a registered tag.
func (w *Window) AddTag(tag string) error {
	if !w.ctx.Tags.Contains(tag) {
		return fmt.Errorf("%q: %w", tag, tags.ErrUnknownTag)
	}
	w.Active().Nav.AddTag(tag)
	return nil
}

// OpenSegment handles a click on the i-th path bar segment. In a tag
// location it keeps the tags up to and including the clicked one.
func (w *Window) OpenSegment(i int) bool {
	t := w.Active()
	seg, ok := t.Bar.Segment(i)
	if !ok {
		return false
	}
	loc := seg.Location()
	if seg.Tag != "" {
		loc = location.FromTags(t.Location().Tags()[:i+1]...)
	}
	t.Nav.NavigateTo(loc)
	return true
}

// OpenItem opens a listed item: directories and tags navigate, files are
// left to the caller.
func (w *Window) OpenItem(it Item) bool {
	t := w.Active()
	switch it := it.(type) {
	case TagItem:
		t.Nav.AddTag(it.Tag)
		return true
	case FileItem:
		if it.IsDir {
			t.Nav.NavigateTo(location.FromPath(it.Path))
			return true
		}
	}
	return false
}

// CopySelection copies the active tab's selection to the clipboard.
func (w *Window) CopySelection() error {
	items := w.Active().Selected()
	if len(items) == 0 {
		return ErrNoSelection
	}
	return Copy(items)
}

// TrashSelection moves the selected files to the trash and records an
// undo action for the ones that moved. It returns the feedback message.
func (w *Window) TrashSelection() (string, error) {
	if w.ctx.Trash == nil {
		return "", trash.ErrUnavailable
	}
	t := w.Active()
	paths := filePaths(t.Selected())
	if len(paths) == 0 {
		return "", ErrNoSelection
	}

	res := w.ctx.Trash.Batch(paths)
	if len(res.Trashed) > 0 {
		w.undo.Push(trashAction{trash: w.ctx.Trash, items: res.Trashed})
	}
	t.Select()
	t.refresh()

	var errs []error
	for _, f := range res.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
	}
	return res.Message(), errors.Join(errs...)
}

// UndoLast reverts the newest undoable action.
func (w *Window) UndoLast() (string, error) {
	desc, err := w.undo.Undo()
	if err == nil {
		w.Active().refresh()
	}
	return desc, err
}

// NewFolder creates a folder named name in the active location. In a tag
// location it goes into the folder that carries the location's tags,
// created as needed.
func (w *Window) NewFolder(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	t := w.Active()
	loc := t.Location()
	var dir string
	switch loc.Kind() {
	case location.Tags:
		dir = tagview.FolderFor(w.ctx.Home, loc.Tags(), w.ctx.Tags.Tags())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	case location.Path:
		p, ok := loc.Path()
		if !ok {
			return "", fmt.Errorf("%s: %w", loc, ErrNotDirectory)
		}
		dir = p
	default:
		return "", fmt.Errorf("%s: %w", loc, ErrNotDirectory)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, ErrExists)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", err
	}
	debug.Log(debug.FS, "created folder %s", path)
	t.refresh()
	return path, nil
}

// Close saves the tabs and detaches the window. It is safe to call twice.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}

	var err error
	if w.ctx.Store != nil && len(w.tabs) > 0 {
		saved := make([]store.Tab, len(w.tabs))
		for i, t := range w.tabs {
			saved[i] = store.Tab{Location: t.Location(), Selected: i == w.active}
		}
		if err = w.ctx.Store.SaveTabs(saved); err != nil {
			debug.Error(debug.STORE, "cannot save tabs: %v", err)
		}
		if serr := w.ctx.Store.SaveSetting(LastLocationKey, location.Format(w.Active().Location())); serr != nil {
			debug.Error(debug.STORE, "%v", serr)
		}
	}
	w.detach()
	return err
}

func (w *Window) detach() {
	w.closed = true
	if w.unsubTags != nil {
		w.unsubTags()
		w.unsubTags = nil
	}
	for _, t := range w.tabs {
		t.close()
	}
}
