// Package tagview resolves tag locations to folders. Tagged files live in
// nested folders under home named after tags, so home/work/2024 holds files
// tagged both "work" and "2024".
package tagview

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gobwas/glob"

	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/tags"
)

// Folder is a tag folder and the tags its path spells out.
type Folder struct {
	Path string
	Tags []string
}

// Item is an entry shown on a tag page.
type Item struct {
	Name  string
	Path  string
	IsDir bool
}

// Options tune folder collection.
type Options struct {
	Ignore   []string
	MaxDepth int
}

// View holds the folders matching one tag selection.
type View struct {
	home     string
	ignore   []glob.Glob
	maxDepth int

	selected   []string
	registered []string
	folders    []Folder
	walks      int
}

// New returns a view rooted at home.
func New(home string, opts Options) (*View, error) {
	v := &View{home: filepath.Clean(home), maxDepth: opts.MaxDepth}
	if v.maxDepth <= 0 {
		v.maxDepth = 8
	}
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		v.ignore = append(v.ignore, g)
	}
	return v, nil
}

// Open selects tags and collects the matching folders.
func (v *View) Open(selected, registered []string) ([]Folder, error) {
	v.selected = slices.Clone(selected)
	if err := v.rebuild(registered); err != nil {
		return nil, err
	}
	return v.Folders(), nil
}

// Refilter updates the view after the registry changed, doing as little as
// the change allows. A reorder keeps membership, a removal can only drop
// folders, and an addition can reveal folders never walked into, so only
// that one walks again.
func (v *View) Refilter(change tags.Change) ([]Folder, error) {
	switch change.Strictness {
	case tags.Different:
		v.registered = slices.Clone(change.Tags)
		for i := range v.folders {
			v.folders[i].Tags = inOrder(v.folders[i].Tags, v.registered)
		}
	case tags.LessStrict:
		v.registered = slices.Clone(change.Tags)
		v.selected = slices.DeleteFunc(v.selected, func(t string) bool { return !slices.Contains(v.registered, t) })
		v.folders = slices.DeleteFunc(v.folders, func(f Folder) bool { return !v.matches(f) })
	default:
		if err := v.rebuild(change.Tags); err != nil {
			return nil, err
		}
	}
	debug.Log(debug.FS, "refilter (%s): %d folders", change.Strictness, len(v.folders))
	return v.Folders(), nil
}

// Folders returns the matching folders sorted by path.
func (v *View) Folders() []Folder {
	out := make([]Folder, len(v.folders))
	for i, f := range v.folders {
		out[i] = Folder{Path: f.Path, Tags: slices.Clone(f.Tags)}
	}
	return out
}

// Walks counts full folder walks, so callers can tell a refilter from a
// rebuild.
func (v *View) Walks() int { return v.walks }

// Items lists the entries of every matching folder, leaving out nested tag
// folders since those are reached through their own tags.
func (v *View) Items() []Item {
	var items []Item
	for _, f := range v.folders {
		entries, err := os.ReadDir(f.Path)
		if err != nil {
			debug.Log(debug.FS, "cannot list %s: %v", f.Path, err)
			continue
		}
		for _, e := range entries {
			if e.IsDir() && slices.Contains(v.registered, e.Name()) {
				continue
			}
			if v.ignored(e.Name()) {
				continue
			}
			items = append(items, Item{Name: e.Name(), Path: filepath.Join(f.Path, e.Name()), IsDir: e.IsDir()})
		}
	}
	return items
}

// SubTags lists registered tags not yet selected that have a folder inside
// one of the matching folders, in registry order. Opening one narrows the
// view.
func (v *View) SubTags() []string {
	var found []string
	for _, f := range v.folders {
		entries, err := os.ReadDir(f.Path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && slices.Contains(v.registered, e.Name()) && !slices.Contains(v.selected, e.Name()) {
				found = append(found, e.Name())
			}
		}
	}
	return inOrder(found, v.registered)
}

// FolderFor returns where a new folder for selected belongs: home joined
// with the selected tags in registry order.
func FolderFor(home string, selected, registered []string) string {
	return filepath.Join(append([]string{home}, inOrder(selected, registered)...)...)
}

func (v *View) rebuild(registered []string) error {
	v.registered = slices.Clone(registered)
	v.selected = slices.DeleteFunc(v.selected, func(t string) bool { return !slices.Contains(v.registered, t) })

	var (
		mu      sync.Mutex
		folders []Folder
	)
	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, v.home, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_WALK, "walk error at %q: %v", path, err)
			return nil
		}
		if path == v.home || !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(v.home, path)
		if err != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		name := d.Name()
		if v.ignored(name) || !slices.Contains(v.registered, name) || len(parts) > v.maxDepth {
			return fastwalk.SkipDir
		}

		folder := Folder{Path: path, Tags: inOrder(parts, v.registered)}
		if v.matches(folder) {
			mu.Lock()
			folders = append(folders, folder)
			mu.Unlock()
		}
		debug.Log(debug.FS_WALK, "tag folder %s", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", v.home, err)
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Path < folders[j].Path })
	v.folders = folders
	v.walks++
	debug.Log(debug.FS, "walked %s: %d folders for %v", v.home, len(folders), v.selected)
	return nil
}

// matches reports whether f carries every selected tag and only registered
// ones.
func (v *View) matches(f Folder) bool {
	if len(v.selected) == 0 {
		return false
	}
	for _, t := range f.Tags {
		if !slices.Contains(v.registered, t) {
			return false
		}
	}
	for _, t := range v.selected {
		if !slices.Contains(f.Tags, t) {
			return false
		}
	}
	return true
}

func (v *View) ignored(name string) bool {
	for _, g := range v.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// inOrder returns the members of tags that are registered, in registry
// order.
func inOrder(tags, registered []string) []string {
	var out []string
	for _, r := range registered {
		if slices.Contains(tags, r) {
			out = append(out, r)
		}
	}
	return out
}
