package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/domain"
)

// manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// In memory Node. Admitted slices stay running until finish is called.
type fakeNode struct {
	id       string
	capacity int
	clock    stats.StatsTime

	mu       sync.Mutex
	load     int
	assigned []domain.Slice
	running  []domain.Slice
	reg      domain.CompletionRegistrar
	started  bool
	stopped  bool
}

func newFakeNode(id string, capacity int, clock stats.StatsTime) *fakeNode {
	return &fakeNode{id: id, capacity: capacity, clock: clock}
}

func (n *fakeNode) ID() string { return n.id }

func (n *fakeNode) AssignTask(slice *domain.Slice) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if slice.TaskID == "" || n.load >= n.capacity {
		return false
	}
	slice.AssignedAt = n.clock.Now()
	n.load++
	n.assigned = append(n.assigned, *slice)
	n.running = append(n.running, *slice)
	return true
}

func (n *fakeNode) GetStatus() domain.ServerStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return domain.ServerStatus{ID: n.id, CurrentLoad: n.load, MaxCapacity: n.capacity, IsFull: n.load >= n.capacity}
}

func (n *fakeNode) Start(reg domain.CompletionRegistrar) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reg = reg
	n.started = true
}

func (n *fakeNode) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
}

// Completes the running slice of id, releasing capacity before reporting.
func (n *fakeNode) finish(id domain.TaskID) bool {
	n.mu.Lock()
	for i, s := range n.running {
		if s.TaskID == id {
			n.running = append(n.running[:i], n.running[i+1:]...)
			n.load--
			reg := n.reg
			n.mu.Unlock()
			reg.RegisterCompletion(id, n.clock.Since(s.AssignedAt))
			return true
		}
	}
	n.mu.Unlock()
	return false
}

func (n *fakeNode) finishAll() int {
	n.mu.Lock()
	ids := []domain.TaskID{}
	for _, s := range n.running {
		ids = append(ids, s.TaskID)
	}
	n.mu.Unlock()
	for _, id := range ids {
		n.finish(id)
	}
	return len(ids)
}

func (n *fakeNode) assignedIDs() []domain.TaskID {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := []domain.TaskID{}
	for _, s := range n.assigned {
		ids = append(ids, s.TaskID)
	}
	return ids
}

func (n *fakeNode) slicesOf(id domain.TaskID) []time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	d := []time.Duration{}
	for _, s := range n.assigned {
		if s.TaskID == id {
			d = append(d, s.Duration)
		}
	}
	return d
}

func asNodes(fakes ...*fakeNode) []Node {
	nodes := make([]Node, 0, len(fakes))
	for _, f := range fakes {
		nodes = append(nodes, f)
	}
	return nodes
}

// Creates a started DebugMode TaskManager reading time from clock.
func makeDebugTaskManager(t testing.TB, policy domain.Policy, clock *fakeClock, nodes []Node, tasks ...*domain.Task) *TaskManager {
	tm, err := makeDebugTaskManagerErr(policy, clock, nodes, tasks...)
	require.NoError(t, err)
	return tm
}

func makeDebugTaskManagerErr(policy domain.Policy, clock *fakeClock, nodes []Node, tasks ...*domain.Task) (*TaskManager, error) {
	tm, err := NewTaskManager(nodes, tasks, SchedulerConfiguration{Policy: policy, DebugMode: true}, stats.NilStatsReceiver())
	if err != nil {
		return nil, err
	}
	tm.clock = clock
	if err := tm.Run(context.Background()); err != nil {
		return nil, err
	}
	return tm, nil
}

// Steps tm and completes every running slice after advancing the clock by
// advance, until the run is done. Fails after maxSteps.
func driveToDone(t testing.TB, tm *TaskManager, clock *fakeClock, advance time.Duration, maxSteps int, nodes ...*fakeNode) {
	for i := 0; i < maxSteps; i++ {
		if tm.step() == Done {
			tm.finish()
			return
		}
		clock.Advance(advance)
		for _, n := range nodes {
			n.finishAll()
		}
	}
	t.Fatalf("run not done after %d steps: %s", maxSteps, tm)
}

func task(id string, priority int, burst, arrival time.Duration) *domain.Task {
	return domain.NewTask(domain.TaskID(id), "cpu", priority, burst, arrival)
}
