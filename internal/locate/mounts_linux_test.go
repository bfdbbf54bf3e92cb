//go:build linux

package locate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcMounts(t *testing.T) {
	table := `/dev/sda2 / ext4 rw,relatime 0 0
proc /proc proc rw 0 0
tmpfs /tmp tmpfs rw 0 0
/dev/sda3 /home ext4 rw 0 0
/dev/sdb1 /run/media/user/My\040Disk vfat rw 0 0
gvfsd-fuse /run/user/1000/gvfs fuse.gvfsd-fuse rw 0 0
/dev/sda3 /home ext4 rw 0 0
`
	path := filepath.Join(t.TempDir(), "mounts")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))

	mounts, err := procMounts(path)
	require.NoError(t, err)

	var uris []string
	for _, m := range mounts {
		uris = append(uris, m.URI)
	}
	assert.Equal(t, []string{"file:///", "file:///home", "file:///run/media/user/My%20Disk"}, uris)
	assert.Equal(t, "My Disk", mounts[2].Name)
	assert.Equal(t, "drive-removable-media-symbolic", mounts[2].Icon)
}

func TestParseGvfsName(t *testing.T) {
	testCases := []struct {
		name string
		uri  string
		ok   bool
	}{
		{"sftp:host=example.org,user=bob", "sftp://example.org/", true},
		{"smb-share:server=nas,share=media", "smb-share://nas/media", true},
		{"dav:host=dav.example.org,prefix=%2Fremote.php", "dav://dav.example.org/remote.php", true},
		{"mtp:nohost", "", false},
		{"garbage", "", false},
	}
	for _, tc := range testCases {
		m, ok := parseGvfsName(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		if ok {
			assert.Equal(t, tc.uri, m.URI, tc.name)
		}
	}
}
