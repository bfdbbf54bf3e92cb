package nav

import "github.com/justyntemme/plane/internal/debug"

// DefaultMaxEntries bounds a stack when no limit is configured.
const DefaultMaxEntries = 100

// Stack is an in-memory Surface. Entries stay known to the stack after a
// pop, so they can be pushed again, until they are removed.
type Stack struct {
	history    []*Entry
	retained   map[*Entry]struct{}
	handler    Handler
	maxEntries int
}

// NewStack creates a stack whose root is root.
func NewStack(root *Entry, maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack{
		history:    []*Entry{root},
		retained:   map[*Entry]struct{}{root: {}},
		maxEntries: maxEntries,
	}
}

// SetHandler connects the stack's notifications.
func (s *Stack) SetHandler(h Handler) { s.handler = h }

// Push shows e on top. Entries already on the stack are ignored.
func (s *Stack) Push(e *Entry) {
	for _, h := range s.history {
		if h == e {
			return
		}
	}
	s.history = append(s.history, e)
	s.retained[e] = struct{}{}

	if excess := len(s.history) - s.maxEntries; excess > 0 {
		for _, old := range s.history[:excess] {
			delete(s.retained, old)
		}
		s.history = append([]*Entry(nil), s.history[excess:]...)
		debug.Log(debug.NAV, "trimmed %d entries from history", excess)
	}

	if s.handler != nil {
		s.handler.Pushed()
	}
}

// Pop removes the visible entry. The root cannot be popped.
func (s *Stack) Pop() bool {
	if len(s.history) <= 1 {
		return false
	}
	e := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	if s.handler != nil {
		s.handler.Popped(e)
	}
	return true
}

// Remove forgets e, whether it is on the stack or only retained. The last
// entry on the stack stays.
func (s *Stack) Remove(e *Entry) {
	if len(s.history) == 1 && s.history[0] == e {
		return
	}
	delete(s.retained, e)
	for i, h := range s.history {
		if h == e {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return
		}
	}
}

// Visible returns the top entry.
func (s *Stack) Visible() *Entry {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[len(s.history)-1]
}

// Len returns the number of entries on the stack.
func (s *Stack) Len() int { return len(s.history) }

// Entries returns the stack bottom to top.
func (s *Stack) Entries() []*Entry { return append([]*Entry(nil), s.history...) }

// Retained reports how many entries the stack still knows about, including
// popped ones waiting in a forward buffer.
func (s *Stack) Retained() int { return len(s.retained) }
