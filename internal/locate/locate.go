// Package locate answers the metadata questions a path bar asks about a
// location: what the root of its scheme is called and which mount holds it.
package locate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/location"
)

var (
	// ErrNoRoot means the scheme root cannot be queried.
	ErrNoRoot = errors.New("scheme root has no metadata")
	// ErrNoMount means no mount encloses the location.
	ErrNoMount = errors.New("no enclosing mount")
)

// Info describes the root of a scheme.
type Info struct {
	Name string
	Icon string
	URI  string
}

// Mount is a mounted volume, local or remote.
type Mount struct {
	Name string
	Icon string
	URI  string // default location of the mount
}

// knownRoots are schemes whose root is a browsable virtual location.
var knownRoots = map[string]Info{
	"trash":    {Name: "Trash", Icon: "user-trash-symbolic", URI: "trash://"},
	"recent":   {Name: "Recent", Icon: "document-open-recent-symbolic", URI: "recent://"},
	"network":  {Name: "Network", Icon: "network-workgroup-symbolic", URI: "network://"},
	"computer": {Name: "Computer", Icon: "computer-symbolic", URI: "computer://"},
	"burn":     {Name: "CD/DVD Creator", Icon: "media-optical-symbolic", URI: "burn://"},
}

// MountTTL bounds how long a cached read of the mount table is trusted.
const MountTTL = 5 * time.Second

type mountPoint struct {
	mount Mount
	root  string // URI path without the trailing slash
}

type mountGroup struct {
	points []mountPoint
	read   time.Time
}

// Locator resolves scheme roots and mounts. The mount table is parsed once
// and cached per scheme and host for MountTTL.
type Locator struct {
	// Mounts lists the currently mounted volumes.
	Mounts func() ([]Mount, error)

	groups *lru.Cache[string, mountGroup]
	now    func() time.Time
}

// New returns a Locator backed by the system mount table that keeps up to
// cacheSize scheme and host groups.
func New(cacheSize int) (*Locator, error) {
	cache, err := lru.New[string, mountGroup](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating mount cache: %w", err)
	}
	return &Locator{Mounts: SystemMounts, groups: cache, now: time.Now}, nil
}

// RootInfo returns display metadata for scheme://.
func (l *Locator) RootInfo(scheme string) (Info, error) {
	info, ok := knownRoots[scheme]
	if !ok {
		return Info{}, fmt.Errorf("%s://: %w", scheme, ErrNoRoot)
	}
	return info, nil
}

// Invalidate drops every cached mount so the next lookup reads the table.
func (l *Locator) Invalidate() {
	l.groups.Purge()
}

// EnclosingMount returns the mount that holds loc. Local paths match the
// longest mount point; remote URIs match a mount with the same scheme and
// host.
func (l *Locator) EnclosingMount(loc location.Location) (Mount, error) {
	if loc.Kind() != location.Path {
		return Mount{}, fmt.Errorf("%s: %w", loc, ErrNoMount)
	}
	target, err := url.Parse(loc.URI())
	if err != nil {
		return Mount{}, fmt.Errorf("%s: %w", loc, err)
	}
	key := target.Scheme + "://" + target.Host

	if g, ok := l.groups.Get(key); ok && l.now().Sub(g.read) < MountTTL {
		if m, ok := longestMatch(g.points, target.Path); ok {
			return m, nil
		}
		// A mount may have appeared since the table was read.
		debug.Log(debug.FS, "cached mounts miss %s, reading table again", loc)
	}

	points, err := l.readTable(key)
	if err != nil {
		return Mount{}, err
	}
	if m, ok := longestMatch(points, target.Path); ok {
		return m, nil
	}
	debug.Log(debug.FS, "no mount encloses %s", loc)
	return Mount{}, fmt.Errorf("%s: %w", loc, ErrNoMount)
}

// readTable parses the mount table, caches every scheme and host group and
// returns the one for key.
func (l *Locator) readTable(key string) ([]mountPoint, error) {
	mounts, err := l.Mounts()
	if err != nil {
		return nil, fmt.Errorf("reading mounts: %w", err)
	}
	read := l.now()
	groups := map[string][]mountPoint{}
	for _, m := range mounts {
		mu, err := url.Parse(m.URI)
		if err != nil {
			continue
		}
		k := mu.Scheme + "://" + mu.Host
		groups[k] = append(groups[k], mountPoint{mount: m, root: strings.TrimSuffix(mu.Path, "/")})
	}
	for k, points := range groups {
		l.groups.Add(k, mountGroup{points: points, read: read})
	}
	debug.Log(debug.FS, "read %d mounts in %d groups", len(mounts), len(groups))
	return groups[key], nil
}

func longestMatch(points []mountPoint, path string) (Mount, bool) {
	var best Mount
	bestLen := -1
	for _, p := range points {
		if path != p.root && !strings.HasPrefix(path, p.root+"/") {
			continue
		}
		if len(p.root) > bestLen {
			best, bestLen = p.mount, len(p.root)
		}
	}
	return best, bestLen >= 0
}
