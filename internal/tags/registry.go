// Package tags keeps the ordered list of tags a user has created. The list
// is persisted as newline-joined text and every change is broadcast with a
// hint about how it affects views filtered by tags.
package tags

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/justyntemme/plane/internal/debug"
)

// Strictness classifies a change for filtered views.
type Strictness int

const (
	Different Strictness = iota
	MoreStrict
	LessStrict
)

func (s Strictness) String() string {
	switch s {
	case MoreStrict:
		return "more-strict"
	case LessStrict:
		return "less-strict"
	default:
		return "different"
	}
}

// Direction is where Move shifts a tag.
type Direction int

const (
	Up Direction = iota
	Down
)

var (
	ErrUnknownTag = errors.New("unknown tag")
	ErrInvalidTag = errors.New("invalid tag")
)

// Change is broadcast after every mutation.
type Change struct {
	Strictness Strictness
	Tags       []string
}

type subscriber struct {
	id int
	fn func(Change)
}

// Registry is the ordered, duplicate-free tag list.
type Registry struct {
	path string
	tags []string

	subs   []subscriber
	nextID int
}

// Load reads the tag file at path. A missing file is an empty registry.
func Load(path string) (*Registry, error) {
	r := &Registry{path: path}
	tags, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	r.tags = tags
	debug.Log(debug.TAGS, "loaded %d tags from %s", len(tags), path)
	return r, nil
}

// Path returns the backing file.
func (r *Registry) Path() string { return r.path }

// Tags returns a copy of the list in order.
func (r *Registry) Tags() []string { return slices.Clone(r.tags) }

// Contains reports whether tag is registered.
func (r *Registry) Contains(tag string) bool { return slices.Contains(r.tags, tag) }

// Subscribe registers fn for changes and returns a function that
// unregisters it.
func (r *Registry) Subscribe(fn func(Change)) func() {
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// Validate reports whether tag can name a tag folder.
func Validate(tag string) error {
	if strings.TrimSpace(tag) == "" || strings.ContainsAny(tag, "/\\\n\r") || tag == "." || tag == ".." {
		return fmt.Errorf("%q: %w", tag, ErrInvalidTag)
	}
	return nil
}

// Add appends tags that are not registered yet.
func (r *Registry) Add(tags ...string) error {
	for _, tag := range tags {
		if err := Validate(tag); err != nil {
			return err
		}
	}
	added := 0
	for _, tag := range tags {
		if !r.Contains(tag) {
			r.tags = append(r.tags, tag)
			added++
		}
	}
	if added == 0 {
		return nil
	}
	return r.update(MoreStrict)
}

// Remove drops tags that are registered.
func (r *Registry) Remove(tags ...string) error {
	before := len(r.tags)
	r.tags = slices.DeleteFunc(r.tags, func(t string) bool { return slices.Contains(tags, t) })
	if len(r.tags) == before {
		return nil
	}
	return r.update(LessStrict)
}

// Move swaps tag with its neighbour in dir. At either end it does nothing.
func (r *Registry) Move(tag string, dir Direction) error {
	i := slices.Index(r.tags, tag)
	if i < 0 {
		return fmt.Errorf("%q: %w", tag, ErrUnknownTag)
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(r.tags) {
		return nil
	}
	r.tags[i], r.tags[j] = r.tags[j], r.tags[i]
	return r.update(Different)
}

// Reload rereads the file after an outside edit and broadcasts if the list
// changed.
func (r *Registry) Reload() (bool, error) {
	tags, err := readFile(r.path)
	if err != nil {
		return false, fmt.Errorf("reloading tags: %w", err)
	}
	if slices.Equal(tags, r.tags) {
		return false, nil
	}
	s := classify(r.tags, tags)
	r.tags = tags
	debug.Log(debug.TAGS, "reloaded %d tags after external change (%s)", len(tags), s)
	r.broadcast(s)
	return true, nil
}

// classify names the hint for replacing old with cur. An edit that both
// adds and removes tags is reported as MoreStrict, which makes views
// collect their folders again.
func classify(old, cur []string) Strictness {
	added := slices.ContainsFunc(cur, func(t string) bool { return !slices.Contains(old, t) })
	removed := slices.ContainsFunc(old, func(t string) bool { return !slices.Contains(cur, t) })
	switch {
	case added:
		return MoreStrict
	case removed:
		return LessStrict
	default:
		return Different
	}
}

// update persists the whole list and tells subscribers. The in-memory list
// stays mutated even if the write fails.
func (r *Registry) update(s Strictness) error {
	err := writeFile(r.path, r.tags)
	if err != nil {
		debug.Error(debug.TAGS, "cannot save tags to %s: %v", r.path, err)
		err = fmt.Errorf("saving tags: %w", err)
	} else {
		debug.Log(debug.TAGS, "saved %d tags (%s)", len(r.tags), s)
	}
	r.broadcast(s)
	return err
}

func (r *Registry) broadcast(s Strictness) {
	change := Change{Strictness: s, Tags: r.Tags()}
	for _, sub := range append([]subscriber(nil), r.subs...) {
		sub.fn(change)
	}
}
