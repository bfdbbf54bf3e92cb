//go:build !linux

package trash

func defaultRoot() string { return "" }

// MoveToTrash is unsupported outside freedesktop systems.
func (t *Trash) MoveToTrash(path string) (Item, error) { return Item{}, ErrUnavailable }

// Restore is unsupported outside freedesktop systems.
func (t *Trash) Restore(item Item) error { return ErrUnavailable }

// List is unsupported outside freedesktop systems.
func (t *Trash) List() ([]Item, error) { return nil, ErrUnavailable }
