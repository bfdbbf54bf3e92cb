package crumbs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/plane/internal/location"
	"github.com/justyntemme/plane/internal/schedule"
)

func newTestBar() (*Bar, *schedule.Queue) {
	q := &schedule.Queue{}
	return NewBar(&Resolver{Home: "/home/user"}, q, DefaultTransition), q
}

func countRevealed(children []Child) (segments, separators int) {
	for _, c := range children {
		if !c.Revealed {
			continue
		}
		if c.Kind == SegmentChild {
			segments++
		} else {
			separators++
		}
	}
	return
}

func TestUpdateReplacesOnlyChangedSuffix(t *testing.T) {
	bar, q := newTestBar()

	bar.Update(location.FromPath("/home/user/a/b/c"))
	before := bar.Segments()
	require.Len(t, before, 4)

	diff := bar.Update(location.FromPath("/home/user/a/b/d"))
	assert.False(t, diff.Purged)
	assert.Equal(t, 3, diff.Kept)
	require.Len(t, diff.Removed, 1)
	require.Len(t, diff.Added, 1)
	assert.Equal(t, "file:///home/user/a/b/c", diff.Removed[0].URI)
	assert.Equal(t, "file:///home/user/a/b/d", diff.Added[0].URI)

	after := bar.Segments()
	assert.Equal(t, before[1].URI, after[1].URI)
	assert.True(t, after[3].Active)
	assert.False(t, after[2].Active)

	// The removed segment and its separator linger until the transition ends.
	assert.Len(t, bar.Children(), 9)
	q.Advance(DefaultTransition)
	assert.Len(t, bar.Children(), 7)
	segs, seps := countRevealed(bar.Children())
	assert.Equal(t, 4, segs)
	assert.Equal(t, 3, seps)
}

func TestUpdateToAncestorRemovesTail(t *testing.T) {
	bar, q := newTestBar()
	bar.Update(location.FromPath("/home/user/a/b/c"))

	diff := bar.Update(location.FromPath("/home/user/a"))
	assert.Equal(t, 2, diff.Kept)
	assert.Len(t, diff.Removed, 2)
	assert.Empty(t, diff.Added)
	assert.True(t, bar.Segments()[1].Active)

	q.Flush()
	segs, seps := countRevealed(bar.Children())
	assert.Equal(t, 2, segs)
	assert.Equal(t, 1, seps)
	assert.Len(t, bar.Children(), 3)
}

func TestUpdateSameLocationIsNoop(t *testing.T) {
	bar, q := newTestBar()
	bar.Update(location.FromPath("/var/log"))
	diff := bar.Update(location.FromPath("/var/log"))
	assert.Equal(t, 3, diff.Kept)
	assert.Empty(t, diff.Removed)
	assert.Empty(t, diff.Added)
	assert.Zero(t, q.Len())
}

func TestModeSwitchPurges(t *testing.T) {
	bar, q := newTestBar()
	bar.Update(location.FromTags("x", "y"))
	assert.Equal(t, ModeTags, bar.Mode())
	assert.Equal(t, "x + y", bar.String())

	diff := bar.Update(location.FromPath("/home/user/x/y"))
	assert.True(t, diff.Purged)
	assert.Zero(t, diff.Kept)
	assert.Len(t, diff.Removed, 2)
	assert.Len(t, diff.Added, 3)
	assert.Equal(t, ModePath, bar.Mode())
	assert.Zero(t, q.Len(), "purge does not animate")
	assert.Len(t, bar.Children(), 5)

	diff = bar.Update(location.FromTags("x"))
	assert.True(t, diff.Purged)
	assert.Len(t, bar.Children(), 1)
}

func TestTagUpdateSharesPrefix(t *testing.T) {
	bar, _ := newTestBar()
	bar.Update(location.FromTags("x", "y"))
	diff := bar.Update(location.FromTags("x", "z"))
	assert.Equal(t, 1, diff.Kept)
	assert.Equal(t, "y", diff.Removed[0].Tag)
	assert.Equal(t, "z", diff.Added[0].Tag)
	for _, s := range bar.Segments() {
		assert.False(t, s.Active)
	}
}

func TestInvalidLocationLeavesBar(t *testing.T) {
	bar, _ := newTestBar()
	bar.Update(location.FromPath("/var"))
	diff := bar.Update(location.Location{})
	assert.Equal(t, 2, diff.Kept)
	assert.Len(t, bar.Segments(), 2)
}

func TestDetachedChildIsIgnored(t *testing.T) {
	bar, q := newTestBar()
	bar.Update(location.FromPath("/var/log"))
	bar.Update(location.FromPath("/var"))
	// Switching mode purges before the pending removal runs.
	bar.Update(location.FromTags("t"))
	q.Advance(time.Second)
	assert.Len(t, bar.Children(), 1)
}

func TestString(t *testing.T) {
	bar, _ := newTestBar()
	bar.Update(location.FromPath("/var/log"))
	assert.Equal(t, "/ / var / [log]", bar.String())

	bar.Update(location.FromPath("/home/user/docs"))
	assert.Equal(t, "Home / [docs]", bar.String())

	seg, ok := bar.Segment(0)
	require.True(t, ok)
	assert.True(t, location.FromPath("/home/user").Equal(seg.Location()))
	_, ok = bar.Segment(5)
	assert.False(t, ok)
}
