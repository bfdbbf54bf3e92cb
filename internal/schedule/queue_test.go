package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceRunsDueTasksInOrder(t *testing.T) {
	var q Queue
	var order []string

	q.After(200*time.Millisecond, func() { order = append(order, "slow") })
	q.After(0, func() { order = append(order, "now") })
	q.After(100*time.Millisecond, func() { order = append(order, "a") })
	q.After(100*time.Millisecond, func() { order = append(order, "b") })

	assert.Equal(t, 1, q.Advance(0))
	assert.Equal(t, 2, q.Advance(150*time.Millisecond))
	assert.Equal(t, []string{"now", "a", "b"}, order)
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, []string{"now", "a", "b", "slow"}, order)
	assert.Zero(t, q.Len())
}

func TestTasksScheduledWhileRunning(t *testing.T) {
	var q Queue
	var order []int

	q.After(10*time.Millisecond, func() {
		order = append(order, 1)
		q.After(0, func() { order = append(order, 2) })
		q.After(time.Second, func() { order = append(order, 3) })
	})

	q.Advance(10 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, order)
	q.Flush()
	assert.Equal(t, []int{1, 2, 3}, order)
}
