// Package nav keeps back/forward history for one navigation surface.
//
// The surface (a stack of pages) owns what is on screen; the Manager owns
// the forward buffer and decides whether a navigation reuses a page popped
// earlier or invalidates all of them.
package nav

import (
	"github.com/google/uuid"

	"github.com/justyntemme/plane/internal/location"
)

// ViewState is display state cached on an entry so going forward again
// restores it.
type ViewState struct {
	Scroll   int
	Selected []string
}

// Entry is one page of a navigation surface.
type Entry struct {
	ID       uuid.UUID
	Location location.Location
	State    ViewState
}

// NewEntry creates an entry with a fresh identity.
func NewEntry(loc location.Location) *Entry {
	return &Entry{ID: uuid.New(), Location: loc}
}

// Surface is the stack-based view hosting entries.
type Surface interface {
	Push(e *Entry)
	Pop() bool
	Remove(e *Entry)
	Visible() *Entry
	Len() int
}

// Handler receives the surface's notifications.
type Handler interface {
	Pushed()
	Popped(e *Entry)
}
