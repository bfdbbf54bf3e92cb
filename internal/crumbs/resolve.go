// Package crumbs turns a location into path bar segments and keeps the
// displayed segments in sync with the visible location.
package crumbs

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/locate"
	"github.com/justyntemme/plane/internal/location"
)

const (
	HomeIcon = "user-home-symbolic"
	RootIcon = "drive-harddisk-symbolic"
)

// Segment is one clickable unit of the path bar. Exactly one of URI and
// Tag is set.
type Segment struct {
	Label  string
	Icon   string
	URI    string
	Tag    string
	Active bool
}

func (s Segment) sameTarget(o Segment) bool {
	return s.URI == o.URI && s.Tag == o.Tag
}

// Location returns what clicking the segment opens.
func (s Segment) Location() location.Location {
	if s.Tag != "" {
		return location.FromTags(s.Tag)
	}
	return location.FromURI(s.URI)
}

// Locator is the metadata source for scheme roots and mounts.
type Locator interface {
	RootInfo(scheme string) (locate.Info, error)
	EnclosingMount(loc location.Location) (locate.Mount, error)
}

// Resolver builds segment lists.
type Resolver struct {
	Locator   Locator
	Home      string
	HomeLabel string
}

// Segments returns the path bar content for loc.
func (r *Resolver) Segments(loc location.Location) []Segment {
	switch loc.Kind() {
	case location.Tags:
		tags := loc.Tags()
		segments := make([]Segment, 0, len(tags))
		for _, tag := range tags {
			segments = append(segments, Segment{Label: tag, Tag: tag})
		}
		return segments
	case location.Path:
		return r.pathSegments(loc)
	default:
		return nil
	}
}

func (r *Resolver) pathSegments(loc location.Location) []Segment {
	u, err := url.Parse(loc.URI())
	if err != nil {
		debug.Error(debug.CRUMB, "cannot parse location %q: %v", loc.URI(), err)
		return nil
	}
	prefix := u.Scheme + "://" + u.Host
	parts := components(u.Path)

	var base *Segment
	skip := 0
	if u.Scheme != "file" {
		base, skip = r.remoteBase(loc, u)
	}

	if home, ok := r.homeOf(loc); ok {
		skip = len(components(filepath.ToSlash(home)))
		base = &Segment{Label: r.homeLabel(), Icon: HomeIcon, URI: location.FromPath(home).URI()}
	} else if u.Scheme == "file" {
		base = &Segment{Icon: RootIcon, URI: location.FromPath("/").URI()}
	}

	var segments []Segment
	if base != nil {
		segments = append(segments, *base)
	}
	for i := skip; i < len(parts); i++ {
		segments = append(segments, Segment{
			Label: parts[i],
			URI:   prefix + (&url.URL{Path: "/" + strings.Join(parts[:i+1], "/")}).EscapedPath(),
		})
	}
	if n := len(segments); n > 0 {
		segments[n-1].Active = true
	}
	return segments
}

// remoteBase resolves the first segment of a non-local location: the
// scheme root if it can be queried, else the enclosing mount, else nothing.
// skip counts path components the base already covers.
func (r *Resolver) remoteBase(loc location.Location, u *url.URL) (*Segment, int) {
	if r.Locator == nil {
		return nil, 0
	}
	info, rootErr := r.Locator.RootInfo(u.Scheme)
	if rootErr == nil {
		return &Segment{Label: info.Name, Icon: info.Icon, URI: info.URI}, 0
	}

	mount, mountErr := r.Locator.EnclosingMount(loc)
	if mountErr == nil {
		skip := 0
		if mu, err := url.Parse(mount.URI); err == nil {
			skip = len(components(mu.Path))
		}
		return &Segment{Label: mount.Name, Icon: mount.Icon, URI: mount.URI}, skip
	}

	debug.Error(debug.CRUMB, "cannot get information for location %q: %v; %v", loc.URI(), rootErr, mountErr)
	return nil, 0
}

func (r *Resolver) homeOf(loc location.Location) (string, bool) {
	if r.Home == "" {
		return "", false
	}
	p, ok := loc.Path()
	if !ok {
		return "", false
	}
	home := filepath.Clean(r.Home)
	rel, err := filepath.Rel(home, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return home, true
}

func (r *Resolver) homeLabel() string {
	if r.HomeLabel == "" {
		return "Home"
	}
	return r.HomeLabel
}

func components(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
