//go:build linux

package trash

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Linux follows the freedesktop.org trash layout.
// Trash location: $XDG_DATA_HOME/Trash (~/.local/share/Trash)
//   - files/     - actual trashed files
//   - info/      - .trashinfo metadata files
//
// .trashinfo format:
// [Trash Info]
// Path=/original/path/to/file
// DeletionDate=2024-01-15T10:30:45

const dateLayout = "2006-01-02T15:04:05"

func defaultRoot() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "Trash")
}

// MoveToTrash moves path into the trash and writes its .trashinfo.
func (t *Trash) MoveToTrash(path string) (Item, error) {
	for _, dir := range []string{t.filesDir(), t.infoDir()} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return Item{}, fmt.Errorf("cannot create trash directory: %w", err)
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return Item{}, err
	}
	info, err := os.Lstat(absPath)
	if err != nil {
		return Item{}, err
	}

	// Reserve a unique name by creating its .trashinfo exclusively.
	base := filepath.Base(absPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	now := time.Now()
	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n", (&url.URL{Path: absPath}).EscapedPath(), now.Format(dateLayout))

	var name, infoPath string
	for counter := 0; ; counter++ {
		name = base
		if counter > 0 {
			name = fmt.Sprintf("%s.%d%s", stem, counter, ext)
		}
		infoPath = filepath.Join(t.infoDir(), name+".trashinfo")
		f, err := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return Item{}, fmt.Errorf("cannot create trashinfo file: %w", err)
		}
		_, werr := f.WriteString(content)
		cerr := f.Close()
		if werr != nil || cerr != nil {
			os.Remove(infoPath)
			return Item{}, fmt.Errorf("cannot write trashinfo file: %w", errors.Join(werr, cerr))
		}
		break
	}

	dest := filepath.Join(t.filesDir(), name)
	if err := os.Rename(absPath, dest); err != nil {
		os.Remove(infoPath)
		return Item{}, fmt.Errorf("cannot move file to trash: %w", err)
	}

	item := Item{
		Name:         name,
		OriginalPath: absPath,
		TrashPath:    dest,
		DeletedAt:    now.Truncate(time.Second),
		IsDir:        info.IsDir(),
	}
	if !item.IsDir {
		item.Size = info.Size()
	}
	return item, nil
}

// Restore moves a trashed item back where it came from. An occupied
// original location is an error.
func (t *Trash) Restore(item Item) error {
	if _, err := os.Lstat(item.OriginalPath); err == nil {
		return fmt.Errorf("%s: %w", item.OriginalPath, os.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(item.OriginalPath), 0o755); err != nil {
		return err
	}
	if err := os.Rename(item.TrashPath, item.OriginalPath); err != nil {
		return fmt.Errorf("cannot restore from trash: %w", err)
	}
	os.Remove(filepath.Join(t.infoDir(), item.Name+".trashinfo"))
	return nil
}

// List returns everything currently in the trash.
func (t *Trash) List() ([]Item, error) {
	entries, err := os.ReadDir(t.filesDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		item := Item{
			Name:      entry.Name(),
			TrashPath: filepath.Join(t.filesDir(), entry.Name()),
			DeletedAt: info.ModTime(),
			IsDir:     entry.IsDir(),
		}
		if !item.IsDir {
			item.Size = info.Size()
		}
		if orig, deleted, err := parseTrashInfo(filepath.Join(t.infoDir(), entry.Name()+".trashinfo")); err == nil {
			item.OriginalPath = orig
			if !deleted.IsZero() {
				item.DeletedAt = deleted
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func parseTrashInfo(path string) (originalPath string, deletionDate time.Time, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", time.Time{}, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if encoded, ok := strings.CutPrefix(line, "Path="); ok {
			originalPath = encoded
			if decoded, err := url.PathUnescape(encoded); err == nil {
				originalPath = decoded
			}
		} else if date, ok := strings.CutPrefix(line, "DeletionDate="); ok {
			if t, err := time.ParseInLocation(dateLayout, date, time.Local); err == nil {
				deletionDate = t
			}
		}
	}
	return originalPath, deletionDate, scanner.Err()
}
