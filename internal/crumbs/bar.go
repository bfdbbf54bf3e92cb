package crumbs

import (
	"strings"
	"time"

	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/location"
	"github.com/justyntemme/plane/internal/schedule"
)

// DefaultTransition matches the reveal animation of a segment.
const DefaultTransition = 250 * time.Millisecond

// Mode is what the bar currently represents.
type Mode int

const (
	ModePath Mode = iota
	ModeTags
)

// Separator returns the text shown between two segments.
func (m Mode) Separator() string {
	if m == ModeTags {
		return "+"
	}
	return "/"
}

// ChildKind tells segment children from separator children.
type ChildKind int

const (
	SegmentChild ChildKind = iota
	SeparatorChild
)

// Child is an element of the rendered row. Hidden children are waiting
// for their exit transition before they leave the row.
type Child struct {
	Kind     ChildKind
	Text     string
	Segment  *Segment
	Revealed bool
}

// Diff describes what an update changed.
type Diff struct {
	Purged  bool
	Kept    int
	Removed []Segment
	Added   []Segment
}

// Bar holds the displayed segments of one path bar.
type Bar struct {
	resolver   *Resolver
	queue      *schedule.Queue
	transition time.Duration

	mode       Mode
	segments   []*Segment
	separators map[*Segment]*Child
	children   []*Child
}

// NewBar returns an empty bar. Deferred removals go to queue.
func NewBar(resolver *Resolver, queue *schedule.Queue, transition time.Duration) *Bar {
	if queue == nil {
		queue = &schedule.Queue{}
	}
	return &Bar{
		resolver:   resolver,
		queue:      queue,
		transition: transition,
		separators: make(map[*Segment]*Child),
	}
}

// Update brings the bar to loc, touching only the changed suffix. A mode
// change rebuilds the bar from scratch.
func (b *Bar) Update(loc location.Location) Diff {
	var mode Mode
	switch loc.Kind() {
	case location.Path:
		mode = ModePath
	case location.Tags:
		mode = ModeTags
	default:
		return Diff{Kept: len(b.segments)}
	}

	var diff Diff
	if mode != b.mode && len(b.segments) > 0 {
		diff.Removed = b.Segments()
		diff.Purged = true
		b.purge()
	}
	b.mode = mode

	next := b.resolver.Segments(loc)
	shared := 0
	for shared < len(next) && shared < len(b.segments) && next[shared].sameTarget(*b.segments[shared]) {
		shared++
	}
	diff.Kept = shared

	if removed := b.remove(len(b.segments) - shared); !diff.Purged {
		diff.Removed = removed
	}
	for _, s := range next[shared:] {
		b.append(s)
		diff.Added = append(diff.Added, s)
	}
	b.markActive()

	debug.Log(debug.CRUMB, "update to %s: kept %d, removed %d, added %d", loc, diff.Kept, len(diff.Removed), len(diff.Added))
	return diff
}

// remove drops the last n segments with their separators, leaving the
// children in the row until the exit transition has run.
func (b *Bar) remove(n int) []Segment {
	var removed []Segment
	for ; n > 0 && len(b.segments) > 0; n-- {
		seg := b.segments[len(b.segments)-1]
		b.segments = b.segments[:len(b.segments)-1]
		removed = append([]Segment{*seg}, removed...)

		b.hide(b.childOf(seg))
		if sep := b.separators[seg]; sep != nil {
			b.hide(sep)
		}
		delete(b.separators, seg)
	}
	return removed
}

func (b *Bar) hide(c *Child) {
	if c == nil {
		return
	}
	c.Revealed = false
	b.queue.After(b.transition, func() { b.detach(c) })
}

// detach removes c from the row; a child that is already gone is ignored.
func (b *Bar) detach(c *Child) {
	for i, child := range b.children {
		if child == c {
			b.children = append(b.children[:i], b.children[i+1:]...)
			return
		}
	}
}

func (b *Bar) append(s Segment) {
	seg := &s
	if len(b.segments) > 0 {
		sep := &Child{Kind: SeparatorChild, Text: b.mode.Separator(), Revealed: true}
		b.children = append(b.children, sep)
		b.separators[seg] = sep
	}
	b.children = append(b.children, &Child{Kind: SegmentChild, Text: seg.Label, Segment: seg, Revealed: true})
	b.segments = append(b.segments, seg)
}

// purge empties the row without transitions.
func (b *Bar) purge() {
	b.segments = nil
	b.children = nil
	b.separators = make(map[*Segment]*Child)
}

func (b *Bar) markActive() {
	for i, seg := range b.segments {
		seg.Active = b.mode == ModePath && i == len(b.segments)-1
	}
}

func (b *Bar) childOf(seg *Segment) *Child {
	for _, c := range b.children {
		if c.Segment == seg {
			return c
		}
	}
	return nil
}

// Mode returns what the bar represents.
func (b *Bar) Mode() Mode { return b.mode }

// Segments returns copies of the displayed segments.
func (b *Bar) Segments() []Segment {
	out := make([]Segment, len(b.segments))
	for i, s := range b.segments {
		out[i] = *s
	}
	return out
}

// Children returns the row including children still transitioning out.
func (b *Bar) Children() []Child {
	out := make([]Child, len(b.children))
	for i, c := range b.children {
		out[i] = *c
	}
	return out
}

// Segment returns the i-th displayed segment, for click handling.
func (b *Bar) Segment(i int) (Segment, bool) {
	if i < 0 || i >= len(b.segments) {
		return Segment{}, false
	}
	return *b.segments[i], true
}

// String renders the displayed segments on one line.
func (b *Bar) String() string {
	var sb strings.Builder
	for i, s := range b.segments {
		if i > 0 {
			sb.WriteString(" " + b.mode.Separator() + " ")
		}
		label := s.Label
		if label == "" && s.Icon == RootIcon {
			label = "/"
		}
		if s.Active {
			label = "[" + label + "]"
		}
		sb.WriteString(label)
	}
	return sb.String()
}
