package app

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/justyntemme/plane/internal/location"
)

// Item is something a tab lists: a file or a tag that narrows the view.
// The set of implementations is closed.
type Item interface {
	// Text is what copying the item puts on the clipboard.
	Text() string
	isItem()
}

// FileItem is a file or directory.
type FileItem struct {
	Path  string
	IsDir bool
}

func (f FileItem) Text() string { return f.Path }
func (FileItem) isItem()        {}

// TagItem is a registered tag shown inside a tag location.
type TagItem struct {
	Tag string
}

func (t TagItem) Text() string { return location.Format(location.FromTags(t.Tag)) }
func (TagItem) isItem()        {}

// writeClipboard is swapped out in tests, which have no display.
var writeClipboard = clipboard.WriteAll

// Copy puts the items on the system clipboard, one per line.
func Copy(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.Text()
	}
	return writeClipboard(strings.Join(lines, "\n"))
}

func filePaths(items []Item) []string {
	var paths []string
	for _, it := range items {
		if f, ok := it.(FileItem); ok {
			paths = append(paths, f.Path)
		}
	}
	return paths
}
