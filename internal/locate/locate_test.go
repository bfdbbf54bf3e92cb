package locate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/plane/internal/location"
)

func testLocator(t *testing.T, mounts ...Mount) *Locator {
	t.Helper()
	l, err := New(4)
	require.NoError(t, err)
	l.Mounts = func() ([]Mount, error) { return mounts, nil }
	return l
}

func TestRootInfo(t *testing.T) {
	l := testLocator(t)

	info, err := l.RootInfo("trash")
	require.NoError(t, err)
	assert.Equal(t, "Trash", info.Name)
	assert.Equal(t, "trash://", info.URI)

	_, err = l.RootInfo("sftp")
	assert.ErrorIs(t, err, ErrNoRoot)

}

func TestEnclosingMount(t *testing.T) {
	l := testLocator(t,
		Mount{Name: "Computer", URI: "file:///"},
		Mount{Name: "usb", URI: "file:///media/user/usb"},
		Mount{Name: "example.org", URI: "sftp://example.org/"},
		Mount{Name: "share on nas", URI: "smb://nas/share"},
	)

	testCases := []struct {
		uri  string
		want string
	}{
		{"file:///home/user", "Computer"},
		{"file:///media/user/usb/photos", "usb"},
		{"file:///media/user/usbstick", "Computer"},
		{"sftp://example.org/srv/www", "example.org"},
		{"sftp://example.org", "example.org"},
		{"smb://nas/share/docs", "share on nas"},
	}
	for _, tc := range testCases {
		m, err := l.EnclosingMount(location.FromURI(tc.uri))
		require.NoError(t, err, tc.uri)
		assert.Equal(t, tc.want, m.Name, tc.uri)
	}

	_, err := l.EnclosingMount(location.FromURI("sftp://other.org/"))
	assert.ErrorIs(t, err, ErrNoMount)
	_, err = l.EnclosingMount(location.FromURI("smb://nas/other"))
	assert.ErrorIs(t, err, ErrNoMount)
	_, err = l.EnclosingMount(location.FromTags("work"))
	assert.ErrorIs(t, err, ErrNoMount)
}

func TestEnclosingMountTableError(t *testing.T) {
	l := testLocator(t)
	l.Mounts = func() ([]Mount, error) { return nil, errors.New("boom") }
	_, err := l.EnclosingMount(location.FromPath("/"))
	assert.Error(t, err)
}

func TestNewRejectsEmptyCache(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}

func TestMountTableCached(t *testing.T) {
	table := []Mount{
		{Name: "Computer", URI: "file:///"},
		{Name: "srv", URI: "sftp://example.org/srv"},
	}
	reads := 0
	now := time.Unix(1000, 0)

	l := testLocator(t)
	l.now = func() time.Time { return now }
	l.Mounts = func() ([]Mount, error) {
		reads++
		return table, nil
	}

	lookup := func(uri string) string {
		t.Helper()
		m, err := l.EnclosingMount(location.FromURI(uri))
		require.NoError(t, err, uri)
		return m.Name
	}

	assert.Equal(t, "Computer", lookup("file:///home/user"))
	assert.Equal(t, "Computer", lookup("file:///tmp"))
	assert.Equal(t, "srv", lookup("sftp://example.org/srv/www"))
	assert.Equal(t, 1, reads, "one read serves every group")

	// Unknown host reads the table and still finds nothing.
	_, err := l.EnclosingMount(location.FromURI("smb://nas/share"))
	assert.ErrorIs(t, err, ErrNoMount)
	assert.Equal(t, 2, reads)

	// A miss inside a cached group reads again and sees the new mount.
	table = append(table, Mount{Name: "home", URI: "sftp://example.org/home"})
	assert.Equal(t, "home", lookup("sftp://example.org/home/bob"))
	assert.Equal(t, 3, reads)

	l.Invalidate()
	assert.Equal(t, "Computer", lookup("file:///home/user"))
	assert.Equal(t, 4, reads)

	now = now.Add(MountTTL)
	assert.Equal(t, "Computer", lookup("file:///home/user"))
	assert.Equal(t, 5, reads)
}
