package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/twitter/fleetsim/scheduler/domain"
)

func Test_ReadyQueue_RoundRobinIsFIFO(t *testing.T) {
	q := newReadyQueue(domain.RoundRobin)
	a, b, c := task("a", 3, 3*time.Second, 0), task("b", 1, time.Second, 0), task("c", 2, 2*time.Second, 0)
	q.Push(a)
	q.Push(b)
	q.Push(c)
	assert.Equal(t, []domain.TaskID{"a", "b", "c"}, q.IDs())

	// requeue goes to the tail
	q.Remove("a")
	q.Push(a)
	assert.Equal(t, []domain.TaskID{"b", "c", "a"}, q.IDs())

	// already queued, position kept
	q.Push(b)
	assert.Equal(t, []domain.TaskID{"b", "c", "a"}, q.IDs())
	assert.Equal(t, 3, q.Len())
}

func Test_ReadyQueue_ShortestJobFirst(t *testing.T) {
	q := newReadyQueue(domain.ShortestJobFirst)
	q.Push(task("long", 1, 3*time.Second, 0))
	q.Push(task("tieLate", 1, time.Second, 2*time.Second))
	q.Push(task("tieEarly", 1, time.Second, time.Second))
	q.Push(task("tieEarly2", 1, time.Second, time.Second))
	q.Push(task("short", 1, 500*time.Millisecond, 5*time.Second))

	assert.Equal(t, []domain.TaskID{"short", "tieEarly", "tieEarly2", "tieLate", "long"}, q.IDs())
}

func Test_ReadyQueue_Priority(t *testing.T) {
	q := newReadyQueue(domain.StrictPriority)
	q.Push(task("low", 3, time.Second, 0))
	q.Push(task("midLate", 2, time.Second, time.Second))
	q.Push(task("mid", 2, 5*time.Second, 0))
	q.Push(task("high", 1, 9*time.Second, 2*time.Second))

	assert.Equal(t, []domain.TaskID{"high", "mid", "midLate", "low"}, q.IDs())

	q.Remove("mid")
	q.Remove("missing")
	assert.False(t, q.Contains("mid"))
	assert.Equal(t, []domain.TaskID{"high", "midLate", "low"}, q.IDs())
}

func Test_SliceFor(t *testing.T) {
	tk := task("t", 1, 2500*time.Millisecond, 0)
	assert.Equal(t, time.Second, sliceFor(domain.RoundRobin, tk, time.Second))
	assert.Equal(t, 2500*time.Millisecond, sliceFor(domain.ShortestJobFirst, tk, time.Second))
	assert.Equal(t, 2500*time.Millisecond, sliceFor(domain.StrictPriority, tk, time.Second))

	tk.RemainingTime = 500 * time.Millisecond
	assert.Equal(t, 500*time.Millisecond, sliceFor(domain.RoundRobin, tk, time.Second))
}
