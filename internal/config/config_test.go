package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plane", "config.json")
	m := NewManager(path)
	require.NoError(t, m.Load())

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, 100, m.Get().History.MaxEntries)
	assert.NoError(t, m.ParseError())
}

func TestLoadMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"home": "/srv/me/", "pathBar": {"transitionMs": 100}}`), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())
	cfg := m.Get()

	assert.Equal(t, "/srv/me", cfg.HomeDir())
	assert.Equal(t, filepath.Join("/srv/me", ".hyperplane"), cfg.TagFile())
	assert.Equal(t, 100*time.Millisecond, cfg.Transition())
	assert.Equal(t, 100, cfg.History.MaxEntries)
	assert.True(t, cfg.Watch.Enabled)
}

func TestLoadParseErrorFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())
	assert.Error(t, m.ParseError())
	assert.Equal(t, *DefaultConfig(), m.Get())
}
