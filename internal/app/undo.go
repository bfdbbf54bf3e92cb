package app

import (
	"errors"
	"fmt"

	"github.com/justyntemme/plane/internal/debug"
	"github.com/justyntemme/plane/internal/trash"
)

// ErrNothingToUndo is returned by Undo on an empty queue.
var ErrNothingToUndo = errors.New("nothing to undo")

// Action is a completed operation that can be reverted.
type Action interface {
	Undo() error
	Describe() string
}

// UndoQueue keeps the most recent actions, newest last.
type UndoQueue struct {
	actions []Action
	depth   int
}

// NewUndoQueue returns a queue remembering at most depth actions.
func NewUndoQueue(depth int) *UndoQueue {
	if depth <= 0 {
		depth = 20
	}
	return &UndoQueue{depth: depth}
}

// Push records a.
func (q *UndoQueue) Push(a Action) {
	q.actions = append(q.actions, a)
	if len(q.actions) > q.depth {
		q.actions = q.actions[len(q.actions)-q.depth:]
	}
}

// Undo reverts the newest action and returns its description.
func (q *UndoQueue) Undo() (string, error) {
	if len(q.actions) == 0 {
		return "", ErrNothingToUndo
	}
	a := q.actions[len(q.actions)-1]
	q.actions = q.actions[:len(q.actions)-1]
	debug.Log(debug.APP, "undo: %s", a.Describe())
	return a.Describe(), a.Undo()
}

// Len returns how many actions can be undone.
func (q *UndoQueue) Len() int { return len(q.actions) }

type trashAction struct {
	trash *trash.Trash
	items []trash.Item
}

func (a trashAction) Undo() error {
	failed := a.trash.RestoreAll(a.items)
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, len(failed))
	for i, f := range failed {
		errs[i] = fmt.Errorf("%s: %w", f.Path, f.Err)
	}
	return errors.Join(errs...)
}

func (a trashAction) Describe() string {
	if len(a.items) == 1 {
		return fmt.Sprintf("restore %q", a.items[0].OriginalPath)
	}
	return fmt.Sprintf("restore %d files", len(a.items))
}
