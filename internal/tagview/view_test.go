package tagview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/plane/internal/tags"
)

// makeHome builds:
//
//	home/work/report.txt
//	home/work/2024/plan.txt
//	home/2024/photo.jpg
//	home/2024/work/         (empty)
//	home/music/work/song.mp3   (music is not a tag)
//	home/.cache/work/
func makeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	files := []string{
		"work/report.txt",
		"work/2024/plan.txt",
		"2024/photo.jpg",
		"music/work/song.mp3",
	}
	for _, f := range files {
		path := filepath.Join(home, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(home, "2024", "work"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".cache", "work"), 0o755))
	return home
}

func paths(home string, folders []Folder) []string {
	var out []string
	for _, f := range folders {
		rel, _ := filepath.Rel(home, f.Path)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func newView(t *testing.T, home string) *View {
	t.Helper()
	v, err := New(home, Options{Ignore: []string{".*"}})
	require.NoError(t, err)
	return v
}

func TestOpen(t *testing.T) {
	home := makeHome(t)
	v := newView(t, home)

	folders, err := v.Open([]string{"work"}, []string{"work", "2024"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024/work", "work", "work/2024"}, paths(home, folders))
	assert.Equal(t, []string{"work", "2024"}, folders[0].Tags, "tags follow registry order")

	folders, err = v.Open([]string{"work", "2024"}, []string{"work", "2024"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024/work", "work/2024"}, paths(home, folders))
}

func TestItems(t *testing.T) {
	home := makeHome(t)
	v := newView(t, home)
	_, err := v.Open([]string{"work"}, []string{"work", "2024"})
	require.NoError(t, err)

	var names []string
	for _, it := range v.Items() {
		names = append(names, it.Name)
	}
	assert.ElementsMatch(t, []string{"report.txt", "plan.txt"}, names)
}

func TestRefilterMatchesRebuild(t *testing.T) {
	home := makeHome(t)

	testCases := []struct {
		name   string
		change tags.Change
		walks  int
	}{
		{"reorder", tags.Change{Strictness: tags.Different, Tags: []string{"2024", "work"}}, 1},
		{"remove", tags.Change{Strictness: tags.LessStrict, Tags: []string{"work"}}, 1},
		{"add", tags.Change{Strictness: tags.MoreStrict, Tags: []string{"work", "2024", "music"}}, 2},
	}

	for _, tc := range testCases {
		v := newView(t, home)
		_, err := v.Open([]string{"work"}, []string{"work", "2024"})
		require.NoError(t, err)

		got, err := v.Refilter(tc.change)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.walks, v.Walks(), tc.name)

		fresh := newView(t, home)
		want, err := fresh.Open([]string{"work"}, tc.change.Tags)
		require.NoError(t, err, tc.name)
		assert.Equal(t, want, got, tc.name)
	}
}

func TestRemovingSelectedTagEmptiesView(t *testing.T) {
	home := makeHome(t)
	v := newView(t, home)
	_, err := v.Open([]string{"2024"}, []string{"work", "2024"})
	require.NoError(t, err)

	got, err := v.Refilter(tags.Change{Strictness: tags.LessStrict, Tags: []string{"work"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFolderFor(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", "work", "2024"),
		FolderFor("/home/u", []string{"2024", "work", "nope"}, []string{"work", "2024"}))
}

func TestBadIgnorePattern(t *testing.T) {
	_, err := New(t.TempDir(), Options{Ignore: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestSubTags(t *testing.T) {
	home := makeHome(t)
	v := newView(t, home)
	_, err := v.Open([]string{"work"}, []string{"work", "2024"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024"}, v.SubTags())

	_, err = v.Open([]string{"work", "2024"}, []string{"work", "2024"})
	require.NoError(t, err)
	assert.Empty(t, v.SubTags())
}

func TestRefilterAfterOutsideEdit(t *testing.T) {
	home := makeHome(t)

	testCases := []struct {
		name   string
		before []string
		edited string
		want   []string
	}{
		{"added", []string{"work"}, "work\n2024", []string{"2024/work", "work", "work/2024"}},
		{"removed", []string{"work", "2024"}, "work", []string{"work"}},
		{"reordered", []string{"work", "2024"}, "2024\nwork", []string{"2024/work", "work", "work/2024"}},
		{"added and removed", []string{"work", "music"}, "2024\nwork", []string{"2024/work", "work", "work/2024"}},
	}

	for _, tc := range testCases {
		reg, err := tags.Load(filepath.Join(t.TempDir(), ".hyperplane"))
		require.NoError(t, err)
		require.NoError(t, reg.Add(tc.before...))

		v := newView(t, home)
		_, err = v.Open([]string{"work"}, reg.Tags())
		require.NoError(t, err, tc.name)

		var got []Folder
		reg.Subscribe(func(c tags.Change) {
			got, err = v.Refilter(c)
			require.NoError(t, err, tc.name)
		})

		require.NoError(t, os.WriteFile(reg.Path(), []byte(tc.edited), 0o644))
		changed, err := reg.Reload()
		require.NoError(t, err, tc.name)
		require.True(t, changed, tc.name)
		assert.Equal(t, tc.want, paths(home, got), tc.name)

		fresh := newView(t, home)
		want, err := fresh.Open([]string{"work"}, reg.Tags())
		require.NoError(t, err, tc.name)
		assert.Equal(t, want, got, tc.name)
	}
}
