package server

import (
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/twitter/fleetsim/scheduler/domain"
)

// Position of a task in the ready queue. Keys compare by primary, then
// secondary, then seq, so equal policy keys keep insertion order.
type queueKey struct {
	primary   int64
	secondary int64
	seq       uint64
}

func compareKeys(a, b interface{}) int {
	ka, kb := a.(queueKey), b.(queueKey)
	switch {
	case ka.primary != kb.primary:
		return cmpInt64(ka.primary, kb.primary)
	case ka.secondary != kb.secondary:
		return cmpInt64(ka.secondary, kb.secondary)
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	}
	return 0
}

func cmpInt64(a, b int64) int {
	if a < b {
		return -1
	}
	return 1
}

// readyQueue holds arrived tasks in policy order. Not safe for concurrent
// use, the TaskManager guards it with its own mutex.
type readyQueue struct {
	policy domain.Policy
	tree   *redblacktree.Tree
	keys   map[domain.TaskID]queueKey
	seq    uint64
}

func newReadyQueue(policy domain.Policy) *readyQueue {
	return &readyQueue{
		policy: policy,
		tree:   redblacktree.NewWith(compareKeys),
		keys:   make(map[domain.TaskID]queueKey),
	}
}

// Push inserts task behind every task with an equal policy key. Pushing a
// task that is already queued does nothing.
func (q *readyQueue) Push(task *domain.Task) {
	if q.Contains(task.ID) {
		return
	}
	q.seq++
	key := policyKey(q.policy, task, q.seq)
	q.keys[task.ID] = key
	q.tree.Put(key, task)
}

func (q *readyQueue) Remove(id domain.TaskID) {
	key, ok := q.keys[id]
	if !ok {
		return
	}
	delete(q.keys, id)
	q.tree.Remove(key)
}

func (q *readyQueue) Contains(id domain.TaskID) bool {
	_, ok := q.keys[id]
	return ok
}

func (q *readyQueue) Len() int {
	return q.tree.Size()
}

// Tasks returns the queued tasks in dispatch order.
func (q *readyQueue) Tasks() []*domain.Task {
	tasks := make([]*domain.Task, 0, q.tree.Size())
	it := q.tree.Iterator()
	for it.Next() {
		tasks = append(tasks, it.Value().(*domain.Task))
	}
	return tasks
}

func (q *readyQueue) IDs() []domain.TaskID {
	ids := make([]domain.TaskID, 0, q.tree.Size())
	for _, t := range q.Tasks() {
		ids = append(ids, t.ID)
	}
	return ids
}

// Round robin queues strictly in insertion order, so a requeued task goes to
// the tail. The other policies order by their key, then arrival.
func policyKey(p domain.Policy, task *domain.Task, seq uint64) queueKey {
	switch p {
	case domain.ShortestJobFirst:
		return queueKey{primary: int64(task.BurstTime), secondary: int64(task.ArrivalTime), seq: seq}
	case domain.StrictPriority:
		return queueKey{primary: int64(task.Priority), secondary: int64(task.ArrivalTime), seq: seq}
	default:
		return queueKey{seq: seq}
	}
}

// sliceFor returns how long the next slice of task runs under p.
func sliceFor(p domain.Policy, task *domain.Task, quantum time.Duration) time.Duration {
	if p.Preemptive() && task.RemainingTime > quantum {
		return quantum
	}
	return task.RemainingTime
}
