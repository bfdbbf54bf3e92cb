package app

import (
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/justyntemme/plane/internal/crumbs"
	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/fs"
	"github.com/justyntemme/plane/internal/location"
	"github.com/justyntemme/plane/internal/nav"
	"github.com/justyntemme/plane/internal/tags"
	"github.com/justyntemme/plane/internal/tagview"
)

// Tab is one navigation surface with its own history, path bar and tag
// view.
type Tab struct {
	ID    uuid.UUID
	Nav   *nav.Manager
	Stack *nav.Stack
	Bar   *crumbs.Bar

	ctx   *Context
	view  *tagview.View
	unsub func()
}

func newTab(ctx *Context, loc location.Location) (*Tab, error) {
	cfg := ctx.Config
	view, err := tagview.New(ctx.Home, tagview.Options{Ignore: cfg.TagView.Ignore, MaxDepth: cfg.TagView.MaxDepth})
	if err != nil {
		return nil, err
	}

	resolver := &crumbs.Resolver{Locator: ctx.Locator, Home: ctx.Home, HomeLabel: cfg.PathBar.HomeLabel}
	t := &Tab{
		ID:   uuid.New(),
		Bar:  crumbs.NewBar(resolver, ctx.Queue, cfg.Transition()),
		ctx:  ctx,
		view: view,
	}
	t.Nav, t.Stack = nav.New(loc, cfg.History.MaxEntries)
	t.unsub = t.Nav.Subscribe(t.onNav)
	t.show()
	return t, nil
}

func (t *Tab) onNav(ev nav.Event) {
	switch ev.Kind {
	case nav.EventPushed, nav.EventPopped:
		t.show()
	case nav.EventForwardCleared:
		debug.Log(debug.NAV, "tab %s: forward history cleared", t.ID)
	}
}

// show brings the path bar and tag view to the visible location.
func (t *Tab) show() {
	loc := t.Nav.Visible()
	t.Bar.Update(loc)
	if loc.Kind() == location.Tags {
		if _, err := t.view.Open(loc.Tags(), t.ctx.Tags.Tags()); err != nil {
			debug.Error(debug.FS, "cannot open %s: %v", loc, err)
		}
	}
}

func (t *Tab) tagsChanged(change tags.Change) {
	if t.Location().Kind() != location.Tags {
		return
	}
	if _, err := t.view.Refilter(change); err != nil {
		debug.Error(debug.FS, "cannot refilter %s: %v", t.Location(), err)
	}
}

// Location returns the visible location.
func (t *Tab) Location() location.Location { return t.Nav.Visible() }

// Title names the tab after its location.
func (t *Tab) Title() string {
	loc := t.Location()
	switch loc.Kind() {
	case location.Tags:
		return strings.Join(loc.Tags(), " + ")
	case location.Path:
		if p, ok := loc.Path(); ok {
			if p == t.ctx.Home {
				return t.ctx.Config.PathBar.HomeLabel
			}
			if base := filepath.Base(p); base != "" && base != "." {
				return base
			}
			return p
		}
		u, err := url.Parse(loc.URI())
		if err != nil {
			return loc.URI()
		}
		if base := path.Base(u.Path); u.Path != "" && base != "/" {
			return base
		}
		return u.Host
	}
	return ""
}

// Items lists the visible location. A tag location lists the tags that
// narrow it, then the files of its folders.
func (t *Tab) Items() []Item {
	loc := t.Location()
	var items []Item
	switch loc.Kind() {
	case location.Tags:
		for _, tag := range t.view.SubTags() {
			items = append(items, TagItem{Tag: tag})
		}
		for _, it := range t.view.Items() {
			items = append(items, FileItem{Path: it.Path, IsDir: it.IsDir})
		}
	case location.Path:
		dir, ok := loc.Path()
		if !ok {
			return nil
		}
		entries, err := fs.List(dir)
		if err != nil {
			debug.Log(debug.FS, "cannot list %s: %v", dir, err)
			return nil
		}
		for _, e := range entries {
			items = append(items, FileItem{Path: e.Path, IsDir: e.IsDir})
		}
	}
	return items
}

// Select replaces the selection of the visible entry. The selection stays
// with the entry, so going back and forward restores it.
func (t *Tab) Select(items ...Item) {
	e := t.Stack.Visible()
	if e == nil {
		return
	}
	e.State.Selected = e.State.Selected[:0]
	for _, it := range items {
		e.State.Selected = append(e.State.Selected, it.Text())
	}
}

// Selected returns the selected items that are still listed.
func (t *Tab) Selected() []Item {
	e := t.Stack.Visible()
	if e == nil || len(e.State.Selected) == 0 {
		return nil
	}
	var out []Item
	for _, it := range t.Items() {
		if slices.Contains(e.State.Selected, it.Text()) {
			out = append(out, it)
		}
	}
	return out
}

// refresh re-collects a tag location after files under home changed.
func (t *Tab) refresh() {
	if t.Location().Kind() == location.Tags {
		t.show()
	}
}

func (t *Tab) close() {
	if t.unsub != nil {
		t.unsub()
		t.unsub = nil
	}
}
