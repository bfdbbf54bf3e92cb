// Package location models where a navigation surface can point: a directory
// (by URI) or a combination of tags.
package location

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// Kind distinguishes path locations from tag locations.
type Kind int

const (
	Invalid Kind = iota
	Path
	Tags
)

func (k Kind) String() string {
	switch k {
	case Path:
		return "path"
	case Tags:
		return "tags"
	default:
		return "invalid"
	}
}

// Location is either a URI or an ordered tag list, never both.
type Location struct {
	kind Kind
	uri  string
	tags []string
}

// FromPath returns a file:// location for a local path.
func FromPath(path string) Location {
	if path == "" {
		return Location{}
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Clean(path))}
	return Location{kind: Path, uri: u.String()}
}

// FromURI returns a path location for uri. A bare local path is accepted too.
func FromURI(uri string) Location {
	if uri == "" {
		return Location{}
	}
	if !strings.Contains(uri, "://") {
		return FromPath(uri)
	}
	return Location{kind: Path, uri: uri}
}

// FromTags returns a tag location. Duplicate and empty tags are dropped,
// first occurrence wins.
func FromTags(tags ...string) Location {
	var clean []string
	for _, t := range tags {
		if t == "" || slices.Contains(clean, t) {
			continue
		}
		clean = append(clean, t)
	}
	if len(clean) == 0 {
		return Location{}
	}
	return Location{kind: Tags, tags: clean}
}

func (l Location) Kind() Kind { return l.kind }

// IsZero reports whether l points nowhere.
func (l Location) IsZero() bool { return l.kind == Invalid }

// URI returns the location URI, empty for tag locations.
func (l Location) URI() string { return l.uri }

// Tags returns a copy of the tag list, nil for path locations.
func (l Location) Tags() []string { return slices.Clone(l.tags) }

// HasTag reports whether tag is part of a tag location.
func (l Location) HasTag(tag string) bool { return slices.Contains(l.tags, tag) }

// WithTag returns a tag location extended by tag. Path locations start a
// fresh tag list.
func (l Location) WithTag(tag string) Location {
	if l.kind != Tags {
		return FromTags(tag)
	}
	return FromTags(append(l.Tags(), tag)...)
}

// Scheme returns the URI scheme ("file", "sftp", ...).
func (l Location) Scheme() string {
	if l.kind != Path {
		return ""
	}
	scheme, _, ok := strings.Cut(l.uri, "://")
	if !ok {
		return ""
	}
	return scheme
}

// Path returns the local filesystem path of a file:// location.
func (l Location) Path() (string, bool) {
	if l.Scheme() != "file" {
		return "", false
	}
	u, err := url.Parse(l.uri)
	if err != nil {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// Equal compares structurally: same URI string, or same ordered tags.
func (l Location) Equal(o Location) bool {
	if l.kind != o.kind {
		return false
	}
	if l.kind == Tags {
		return slices.Equal(l.tags, o.tags)
	}
	return l.uri == o.uri
}

func (l Location) String() string {
	switch l.kind {
	case Path:
		return l.uri
	case Tags:
		return "tags:" + strings.Join(l.tags, "+")
	default:
		return "<none>"
	}
}
