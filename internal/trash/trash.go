// Package trash moves files to the freedesktop.org trash and back.
package trash

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/justyntemme/plane/internal/debug"
)

// ErrUnavailable is returned where no trash can be used.
var ErrUnavailable = errors.New("trash not available")

// Item represents a file or directory in the trash
type Item struct {
	Name         string    // Name inside the trash
	OriginalPath string    // Full path where the file was deleted from
	TrashPath    string    // Current path in trash
	DeletedAt    time.Time // When the file was deleted
	Size         int64     // Size in bytes, directories count as zero
	IsDir        bool
}

// Trash is a trash directory with files/ and info/ subdirectories.
type Trash struct {
	Root string
}

// Default returns the user's home trash.
func Default() (*Trash, error) {
	root := defaultRoot()
	if root == "" {
		return nil, ErrUnavailable
	}
	return &Trash{Root: root}, nil
}

func (t *Trash) filesDir() string { return filepath.Join(t.Root, "files") }
func (t *Trash) infoDir() string  { return filepath.Join(t.Root, "info") }

// Failure records why one path of a batch was not trashed.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a batch.
type Result struct {
	Trashed []Item
	Failed  []Failure
}

// Batch trashes each path independently. A failing path is recorded and
// skipped; it never stops the rest of the batch.
func (t *Trash) Batch(paths []string) Result {
	var res Result
	for _, p := range paths {
		item, err := t.MoveToTrash(p)
		if err != nil {
			debug.Log(debug.TRASH, "skipping %s: %v", p, err)
			res.Failed = append(res.Failed, Failure{Path: p, Err: err})
			continue
		}
		res.Trashed = append(res.Trashed, item)
	}
	debug.Log(debug.TRASH, "batch of %d: %d trashed, %d failed", len(paths), len(res.Trashed), len(res.Failed))
	return res
}

// Message is the feedback shown after a batch, empty when nothing moved.
func (r Result) Message() string {
	switch n := len(r.Trashed); n {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%q moved to trash", filepath.Base(r.Trashed[0].OriginalPath))
	default:
		var size int64
		for _, it := range r.Trashed {
			size += it.Size
		}
		return fmt.Sprintf("%d files moved to trash (%s)", n, humanize.Bytes(uint64(size)))
	}
}

// RestoreAll puts items back, returning the ones that could not be
// restored.
func (t *Trash) RestoreAll(items []Item) []Failure {
	var failed []Failure
	for _, it := range items {
		if err := t.Restore(it); err != nil {
			debug.Log(debug.TRASH, "cannot restore %s: %v", it.OriginalPath, err)
			failed = append(failed, Failure{Path: it.OriginalPath, Err: err})
		}
	}
	return failed
}
