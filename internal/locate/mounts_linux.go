//go:build linux

package locate

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// SystemMounts lists real filesystems from /proc/mounts plus the gvfs
// remote mounts of the current user.
func SystemMounts() ([]Mount, error) {
	mounts, err := procMounts("/proc/mounts")
	if err != nil {
		return nil, err
	}
	gvfs := filepath.Join("/run/user", fmt.Sprint(os.Getuid()), "gvfs")
	return append(mounts, gvfsMounts(gvfs)...), nil
}

func procMounts(path string) ([]Mount, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mounts := []Mount{{Name: "Computer", Icon: "drive-harddisk-symbolic", URI: "file:///"}}
	seen := map[string]bool{"/": true}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint, fsType := unescapeMount(fields[1]), fields[2]

		if seen[mountPoint] || virtualMount(mountPoint, fsType) {
			continue
		}
		seen[mountPoint] = true

		icon := "drive-harddisk-symbolic"
		if strings.HasPrefix(mountPoint, "/media/") || strings.HasPrefix(mountPoint, "/run/media/") {
			icon = "drive-removable-media-symbolic"
		}
		u := url.URL{Scheme: "file", Path: mountPoint}
		mounts = append(mounts, Mount{Name: filepath.Base(mountPoint), Icon: icon, URI: u.String()})
	}
	return mounts, scanner.Err()
}

func virtualMount(mountPoint, fsType string) bool {
	for _, prefix := range []string{"/sys", "/proc", "/dev", "/run", "/snap"} {
		if mountPoint == prefix || strings.HasPrefix(mountPoint, prefix+"/") {
			// Removable media lives under /run/media.
			return !strings.HasPrefix(mountPoint, "/run/media/")
		}
	}
	switch fsType {
	case "tmpfs", "devtmpfs", "cgroup", "cgroup2", "fuse.gvfsd-fuse":
		return true
	}
	return false
}

// unescapeMount decodes the octal escapes /proc/mounts uses for spaces,
// tabs and backslashes.
func unescapeMount(s string) string {
	r := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return r.Replace(s)
}

// gvfsMounts reads directory names such as "sftp:host=example.org,user=bob".
func gvfsMounts(dir string) []Mount {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var mounts []Mount
	for _, e := range entries {
		if m, ok := parseGvfsName(e.Name()); ok {
			mounts = append(mounts, m)
		}
	}
	return mounts
}

func parseGvfsName(name string) (Mount, bool) {
	scheme, params, ok := strings.Cut(name, ":")
	if !ok || scheme == "" {
		return Mount{}, false
	}
	var host, share, prefix string
	for _, kv := range strings.Split(params, ",") {
		k, v, _ := strings.Cut(kv, "=")
		switch k {
		case "host", "server":
			host = v
		case "share":
			share = v
		case "prefix":
			prefix, _ = url.PathUnescape(v)
		}
	}
	if host == "" {
		return Mount{}, false
	}
	path := "/"
	if share != "" {
		path += share
	}
	if prefix != "" {
		path = prefix
	}
	u := url.URL{Scheme: scheme, Host: host, Path: path}
	label := host
	if share != "" {
		label = share + " on " + host
	}
	return Mount{Name: label, Icon: "folder-remote-symbolic", URI: u.String()}, true
}
