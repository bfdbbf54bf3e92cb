package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/plane/internal/location"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "state", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTabsRoundTrip(t *testing.T) {
	db := openTest(t)

	tabs := []Tab{
		{Location: location.FromPath("/home/user/docs")},
		{Location: location.FromTags("work", "2024"), Selected: true},
		{Location: location.FromURI("sftp://host/srv")},
	}
	require.NoError(t, db.SaveTabs(tabs))

	got, err := db.Tabs()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range tabs {
		assert.True(t, tabs[i].Location.Equal(got[i].Location), "tab %d", i)
		assert.Equal(t, tabs[i].Selected, got[i].Selected, "tab %d", i)
	}

	require.NoError(t, db.SaveTabs(tabs[:1]))
	got, err = db.Tabs()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveTabsSkipsInvalid(t *testing.T) {
	db := openTest(t)
	require.NoError(t, db.SaveTabs([]Tab{{}, {Location: location.FromPath("/")}}))
	got, err := db.Tabs()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSettings(t *testing.T) {
	db := openTest(t)
	require.NoError(t, db.SaveSetting("window.width", "800"))
	require.NoError(t, db.SaveSetting("window.width", "1024"))
	require.NoError(t, db.SaveSetting("window.maximized", "true"))

	settings, err := db.Settings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"window.width": "1024", "window.maximized": "true"}, settings)
}
