package nav

import (
	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/location"
)

// EventKind identifies a history change.
type EventKind int

const (
	EventPushed EventKind = iota
	EventPopped
	EventForwardCleared
)

// Event is delivered to subscribers after the surface changed.
type Event struct {
	Kind  EventKind
	Entry *Entry
}

type subscriber struct {
	id int
	fn func(Event)
}

// Manager implements back/forward semantics on top of a Surface.
type Manager struct {
	surface Surface
	forward []*Entry

	subs   []subscriber
	nextID int
}

// NewManager returns a manager driving surface. The caller connects the
// surface's notifications to the returned manager.
func NewManager(surface Surface) *Manager {
	return &Manager{surface: surface}
}

// New builds a Stack starting at initial and a Manager wired to it.
func New(initial location.Location, maxEntries int) (*Manager, *Stack) {
	stack := NewStack(NewEntry(initial), maxEntries)
	m := NewManager(stack)
	stack.SetHandler(m)
	return m, stack
}

// Subscribe registers fn for history events and returns a function that
// unregisters it.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) emit(ev Event) {
	for _, s := range append([]subscriber(nil), m.subs...) {
		s.fn(ev)
	}
}

// Visible returns the location currently shown.
func (m *Manager) Visible() location.Location {
	if e := m.surface.Visible(); e != nil {
		return e.Location
	}
	return location.Location{}
}

// NavigateTo shows loc. It is a no-op when loc is already visible or
// invalid, and reuses the next forward entry when loc matches it.
func (m *Manager) NavigateTo(loc location.Location) {
	if loc.IsZero() {
		return
	}
	if v := m.surface.Visible(); v != nil && v.Location.Equal(loc) {
		return
	}
	if next := m.NextEntry(); next != nil && next.Location.Equal(loc) {
		debug.Log(debug.NAV, "reusing forward entry %s for %s", next.ID, loc)
		m.surface.Push(next)
		return
	}

	debug.Log(debug.NAV, "navigate to %s", loc)
	m.surface.Push(NewEntry(loc))
}

// AddTag narrows the visible tag location by tag, or opens tag alone when
// a directory is visible.
func (m *Manager) AddTag(tag string) {
	if tag == "" {
		return
	}
	visible := m.Visible()
	if visible.HasTag(tag) {
		return
	}
	m.NavigateTo(visible.WithTag(tag))
}

// GoBack pops the visible entry onto the forward buffer. It reports false
// at the root.
func (m *Manager) GoBack() bool {
	return m.surface.Pop()
}

// GoForward pushes the next entry of the forward buffer.
func (m *Manager) GoForward() bool {
	next := m.NextEntry()
	if next == nil {
		return false
	}
	m.surface.Push(next)
	return true
}

func (m *Manager) CanGoBack() bool    { return m.surface.Len() > 1 }
func (m *Manager) CanGoForward() bool { return len(m.forward) > 0 }

// Forward returns the forward buffer, next entry last.
func (m *Manager) Forward() []*Entry {
	return append([]*Entry(nil), m.forward...)
}

// NextEntry answers the surface's request for the page a forward gesture
// would reveal.
func (m *Manager) NextEntry() *Entry {
	if len(m.forward) == 0 {
		return nil
	}
	return m.forward[len(m.forward)-1]
}

// Pushed handles a push on the surface. Pushing the next forward entry
// consumes it; pushing anything else invalidates the whole buffer.
func (m *Manager) Pushed() {
	visible := m.surface.Visible()
	defer m.emit(Event{Kind: EventPushed, Entry: visible})

	if len(m.forward) == 0 {
		return
	}
	if visible == m.forward[len(m.forward)-1] {
		m.forward = m.forward[:len(m.forward)-1]
		return
	}

	debug.Log(debug.NAV, "divergent push, dropping %d forward entries", len(m.forward))
	for _, e := range m.forward {
		m.surface.Remove(e)
	}
	m.forward = nil
	m.emit(Event{Kind: EventForwardCleared})
}

// Popped handles a pop on the surface.
func (m *Manager) Popped(e *Entry) {
	m.forward = append(m.forward, e)
	m.emit(Event{Kind: EventPopped, Entry: e})
}
