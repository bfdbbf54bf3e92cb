// Package schedule runs deferred presentation tasks on the caller's
// goroutine. Nothing here starts a goroutine: the owner advances the clock
// from its own loop.
package schedule

import (
	"sort"
	"time"

	"github.com/justyntemme/plane/internal/debug"
)

type task struct {
	due time.Duration
	seq int
	fn  func()
}

// Queue holds tasks ordered by due time, then by insertion.
type Queue struct {
	now   time.Duration
	seq   int
	tasks []task
}

// After schedules fn to run once delay has elapsed.
func (q *Queue) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	q.seq++
	q.tasks = append(q.tasks, task{due: q.now + delay, seq: q.seq, fn: fn})
	sort.SliceStable(q.tasks, func(i, j int) bool {
		if q.tasks[i].due != q.tasks[j].due {
			return q.tasks[i].due < q.tasks[j].due
		}
		return q.tasks[i].seq < q.tasks[j].seq
	})
}

// Advance moves the clock forward by d and runs every task that became due.
// Tasks scheduled while running are picked up if they are due as well.
func (q *Queue) Advance(d time.Duration) int {
	q.now += d
	ran := 0
	for len(q.tasks) > 0 && q.tasks[0].due <= q.now {
		t := q.tasks[0]
		q.tasks = q.tasks[1:]
		t.fn()
		ran++
	}
	if ran > 0 {
		debug.Log(debug.SCHED, "ran %d tasks at %s, %d pending", ran, q.now, len(q.tasks))
	}
	return ran
}

// Flush runs everything pending regardless of due time.
func (q *Queue) Flush() int {
	ran := 0
	for len(q.tasks) > 0 {
		q.now = max(q.now, q.tasks[0].due)
		ran += q.Advance(0)
	}
	return ran
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int { return len(q.tasks) }
