package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, tags ...string) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".hyperplane")
	r, err := Load(path)
	require.NoError(t, err)
	if len(tags) > 0 {
		require.NoError(t, r.Add(tags...))
	}
	return r
}

func fileContent(t *testing.T, r *Registry) string {
	t.Helper()
	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	return string(data)
}

func TestLoadMissingFile(t *testing.T) {
	r := newRegistry(t)
	assert.Empty(t, r.Tags())
}

func TestAddPersistsAndBroadcasts(t *testing.T) {
	r := newRegistry(t)

	var changes []Change
	r.Subscribe(func(c Change) { changes = append(changes, c) })

	require.NoError(t, r.Add("work", "photos", "work"))
	assert.Equal(t, []string{"work", "photos"}, r.Tags())
	assert.Equal(t, "work\nphotos", fileContent(t, r))
	require.Len(t, changes, 1)
	assert.Equal(t, MoreStrict, changes[0].Strictness)

	require.NoError(t, r.Add("work"))
	assert.Len(t, changes, 1, "nothing new, nothing broadcast")
}

func TestAddRejectsInvalid(t *testing.T) {
	r := newRegistry(t)
	for _, tag := range []string{"", "  ", "a/b", "line\nbreak", ".."} {
		assert.ErrorIs(t, r.Add(tag), ErrInvalidTag, "%q", tag)
	}
	assert.Empty(t, r.Tags())
}

func TestAddInvalidLeavesListUntouched(t *testing.T) {
	r := newRegistry(t, "home")

	var changes []Change
	r.Subscribe(func(c Change) { changes = append(changes, c) })

	assert.ErrorIs(t, r.Add("work", "bad/tag"), ErrInvalidTag)
	assert.Equal(t, []string{"home"}, r.Tags())
	assert.Equal(t, "home", fileContent(t, r))
	assert.Empty(t, changes)
}

func TestRemove(t *testing.T) {
	r := newRegistry(t, "a", "b", "c")

	var got []Strictness
	r.Subscribe(func(c Change) { got = append(got, c.Strictness) })

	require.NoError(t, r.Remove("b", "missing"))
	assert.Equal(t, []string{"a", "c"}, r.Tags())
	assert.Equal(t, "a\nc", fileContent(t, r))

	require.NoError(t, r.Remove("missing"))
	assert.Equal(t, []Strictness{LessStrict}, got)
}

func TestMove(t *testing.T) {
	testCases := []struct {
		name string
		tag  string
		dir  Direction
		want []string
	}{
		{"first up is noop", "a", Up, []string{"a", "b", "c"}},
		{"last down is noop", "c", Down, []string{"a", "b", "c"}},
		{"middle up", "b", Up, []string{"b", "a", "c"}},
		{"middle down", "b", Down, []string{"a", "c", "b"}},
		{"first down", "a", Down, []string{"b", "a", "c"}},
	}

	for _, tc := range testCases {
		r := newRegistry(t, "a", "b", "c")
		var changes []Change
		r.Subscribe(func(c Change) { changes = append(changes, c) })

		require.NoError(t, r.Move(tc.tag, tc.dir), tc.name)
		assert.Equal(t, tc.want, r.Tags(), tc.name)

		noop := tc.want[0] == "a" && tc.want[1] == "b"
		if noop {
			assert.Empty(t, changes, tc.name)
		} else {
			require.Len(t, changes, 1, tc.name)
			assert.Equal(t, Different, changes[0].Strictness, tc.name)
		}
	}

	r := newRegistry(t, "a")
	assert.ErrorIs(t, r.Move("zzz", Up), ErrUnknownTag)
}

func TestRoundTrip(t *testing.T) {
	r := newRegistry(t, "one", "two", "three")
	require.NoError(t, r.Move("three", Up))

	loaded, err := Load(r.Path())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "three", "two"}, loaded.Tags())
}

func TestLoadCleansHandEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags")
	require.NoError(t, os.WriteFile(path, []byte("a\r\n\nb\na\n\n"), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Tags())
}

func TestReload(t *testing.T) {
	r := newRegistry(t, "a")

	var changes []Change
	unsubscribe := r.Subscribe(func(c Change) { changes = append(changes, c) })

	changed, err := r.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(r.Path(), []byte("b\na"), 0o644))
	changed, err = r.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"b", "a"}, r.Tags())
	require.Len(t, changes, 1)
	assert.Equal(t, MoreStrict, changes[0].Strictness)

	unsubscribe()
	require.NoError(t, r.Add("c"))
	assert.Len(t, changes, 1)
}

func TestReloadHint(t *testing.T) {
	testCases := []struct {
		name   string
		before []string
		edited string
		want   Strictness
	}{
		{"added", []string{"a"}, "a\nb", MoreStrict},
		{"removed", []string{"a", "b"}, "b", LessStrict},
		{"reordered", []string{"a", "b"}, "b\na", Different},
		{"added and removed", []string{"a", "b"}, "a\nc", MoreStrict},
		{"emptied", []string{"a"}, "", LessStrict},
	}

	for _, tc := range testCases {
		r := newRegistry(t, tc.before...)
		var changes []Change
		r.Subscribe(func(c Change) { changes = append(changes, c) })

		require.NoError(t, os.WriteFile(r.Path(), []byte(tc.edited), 0o644), tc.name)
		changed, err := r.Reload()
		require.NoError(t, err, tc.name)
		assert.True(t, changed, tc.name)
		require.Len(t, changes, 1, tc.name)
		assert.Equal(t, tc.want, changes[0].Strictness, tc.name)
		assert.Equal(t, r.Tags(), changes[0].Tags, tc.name)
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing-dir", "tags"))
	require.NoError(t, err)

	var notified bool
	r.Subscribe(func(Change) { notified = true })

	assert.Error(t, r.Add("a"))
	assert.Equal(t, []string{"a"}, r.Tags())
	assert.True(t, notified)
}
