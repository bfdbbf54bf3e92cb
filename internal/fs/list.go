// Package fs lists directories for path locations.
package fs

import (
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/plane/internal/debug"
)

// Entry is one directory child. Symlinks report their target's type.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// List returns the direct children of path sorted by name.
func List(path string) ([]Entry, error) {
	debug.Log(debug.FS, "list: reading %q", path)

	var result []Entry
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to get target info
	}

	pathLen := len(path)

	err := fastwalk.Walk(conf, path, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_WALK, "list: walk error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == path {
			return nil
		}

		// Only direct children; fullPath starts with path
		relStart := pathLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		if strings.ContainsAny(fullPath[relStart:], "/\\") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Broken symlink: describe the link itself
			info, err = os.Lstat(fullPath)
			if err != nil {
				debug.Log(debug.FS_WALK, "list: skipping %q: %v", d.Name(), err)
				return nil
			}
		}

		mu.Lock()
		result = append(result, Entry{
			Name:    d.Name(),
			Path:    fullPath,
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	debug.Log(debug.FS, "list: %d entries in %q", len(result), path)
	return result, nil
}
