package server

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/twitter/fleetsim/common/log/hooks"
	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/domain"
)

// Used to get proper logging from tests...
func init() {
	if loglevel := os.Getenv("FLEETSIM_LOGLEVEL"); loglevel != "" {
		level, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Error(err)
			return
		}
		log.SetLevel(level)
		log.AddHook(hooks.NewContextHook())
	} else {
		// keep test output short
		log.SetLevel(log.ErrorLevel)
	}
}

// TaskManager owns the policy state machine of one scheduling run.
//
// Concurrency: the dispatch loop runs in the goroutine calling Run. Servers
// call RegisterCompletion from their own goroutines. Every field below mu is
// guarded by it. The lock is held while calling Node.AssignTask and
// Node.GetStatus, so nodes must never call RegisterCompletion while holding
// their own lock.
type TaskManager struct {
	config SchedulerConfiguration
	nodes  []Node
	stat   stats.StatsReceiver
	clock  stats.StatsTime
	runID  string

	wakeCh       chan struct{}
	drainLimiter *rate.Limiter

	mu              sync.Mutex
	state           State
	tasks           map[domain.TaskID]*domain.Task
	order           []*domain.Task // configuration order
	pending         []*domain.Task // not arrived yet, by arrival
	ready           *readyQueue
	inProgress      map[domain.TaskID]string // task -> server
	tasksToComplete map[domain.TaskID]*domain.Task
	completions     map[domain.TaskID]time.Duration
	nextNode        int
	startTime       time.Time
	endTime         time.Time
}

// Create a new TaskManager that runs tasks on nodes under cfg.Policy.
// Tasks are mutated in place as the run progresses.
// Specifying cfg.DebugMode true starts the run without the dispatch loop.
// Instead the loop must be advanced manually by calling step(), intended
// for debugging and test cases.
func NewTaskManager(nodes []Node, tasks []*domain.Task, cfg SchedulerConfiguration, stat stats.StatsReceiver) (*TaskManager, error) {
	if len(nodes) == 0 {
		return nil, ErrNoServers
	}
	policy, err := domain.ParsePolicy(string(cfg.Policy))
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy
	if cfg.Quantum <= 0 {
		cfg.Quantum = DefaultQuantum
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}

	tm := &TaskManager{
		config:          cfg,
		nodes:           nodes,
		stat:            stat.Scope("scheduler"),
		clock:           stats.DefaultStatsTime(),
		runID:           generateRunID(),
		wakeCh:          make(chan struct{}, 1),
		drainLimiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		state:           Initializing,
		tasks:           make(map[domain.TaskID]*domain.Task, len(tasks)),
		ready:           newReadyQueue(policy),
		inProgress:      make(map[domain.TaskID]string),
		tasksToComplete: make(map[domain.TaskID]*domain.Task, len(tasks)),
		completions:     make(map[domain.TaskID]time.Duration, len(tasks)),
	}
	for i, task := range tasks {
		if task == nil || task.ID == "" {
			return nil, errors.Errorf("task %d has no id", i)
		}
		if _, ok := tm.tasks[task.ID]; ok {
			return nil, errors.Errorf("duplicate task id %q", task.ID)
		}
		if task.BurstTime <= 0 || task.ArrivalTime < 0 {
			return nil, errors.Errorf("task %q: burst time must be positive and arrival time non-negative", task.ID)
		}
		task.RemainingTime = task.BurstTime
		task.FirstAssignedAt = domain.Unassigned
		tm.tasks[task.ID] = task
		tm.tasksToComplete[task.ID] = task
		tm.order = append(tm.order, task)
	}
	tm.pending = append([]*domain.Task{}, tm.order...)
	sort.SliceStable(tm.pending, func(i, j int) bool {
		return tm.pending[i].ArrivalTime < tm.pending[j].ArrivalTime
	})

	log.WithFields(log.Fields{
		"runID":   tm.runID,
		"policy":  policy,
		"servers": len(nodes),
		"tasks":   len(tasks),
	}).Infof("Created task manager, %s", &tm.config)
	return tm, nil
}

// generates a run id using a random uuid
func generateRunID() string {
	// uuid.NewV4() should never actually return an error, it reads from
	// crypto/rand which only fails on a broken system.
	for {
		if id, err := uuid.NewV4(); err == nil {
			return id.String()
		}
	}
}

func (tm *TaskManager) String() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return fmt.Sprintf("run %s, %s, state: %s, pending: %d, ready: %d, in progress: %d, completed: %d/%d",
		tm.runID, &tm.config, tm.state, len(tm.pending), tm.ready.Len(), len(tm.inProgress), len(tm.completions), len(tm.tasks))
}

func (tm *TaskManager) State() State {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.state
}

// Run starts every node, dispatches until all tasks completed and all nodes
// are idle, then stops the nodes. Returns an error if ctx is cancelled first.
// In DebugMode Run only starts the nodes and returns, the caller steps the
// loop and is responsible for calling finish.
func (tm *TaskManager) Run(ctx context.Context) error {
	if err := tm.begin(); err != nil {
		return err
	}
	if tm.config.DebugMode {
		return nil
	}

	err := tm.loop(ctx)
	tm.finish()
	return err
}

func (tm *TaskManager) begin() error {
	tm.mu.Lock()
	if tm.state != Initializing {
		tm.mu.Unlock()
		return ErrAlreadyStarted
	}
	tm.startTime = tm.clock.Now()
	tm.state = Dispatching
	tm.mu.Unlock()

	for _, n := range tm.nodes {
		n.Start(tm)
	}
	log.WithFields(log.Fields{
		"runID":   tm.runID,
		"servers": len(tm.nodes),
	}).Info("Servers started")
	return nil
}

// Records the end of the run and stops every node.
func (tm *TaskManager) finish() {
	tm.mu.Lock()
	tm.endTime = tm.clock.Now()
	elapsed := tm.endTime.Sub(tm.startTime)
	tm.mu.Unlock()

	for _, n := range tm.nodes {
		n.Stop()
	}
	log.WithFields(log.Fields{
		"runID":   tm.runID,
		"elapsed": elapsed,
	}).Info("Run finished, servers stopped")
}

// run the dispatch loop until the run is done or ctx is cancelled.
// we are not putting any logic other than looping in this method so unit
// tests can verify behavior by controlling calls to step() below
func (tm *TaskManager) loop(ctx context.Context) error {
	ticker := time.NewTicker(tm.config.TickRate)
	defer ticker.Stop()

	for {
		if tm.step() == Done {
			return nil
		}

		// Wait until TickRate has elapsed, a completion arrived, or the
		// previous step admitted work and may admit more.
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "run %s interrupted", tm.runID)
		case <-tm.wakeCh:
		case <-ticker.C:
		}
	}
}

func (tm *TaskManager) wake() {
	select {
	case tm.wakeCh <- struct{}{}:
	default:
	}
}

// run one loop iteration
func (tm *TaskManager) step() State {
	defer tm.stat.Latency(stats.SchedStepLatency_ms).Time().Stop()

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.state == Initializing || tm.state == Done {
		return tm.state
	}

	elapsed := tm.elapsed()
	tm.promoteArrivals(elapsed)

	if tm.ready.Len() > 0 {
		if tm.state == Draining {
			log.WithFields(log.Fields{
				"runID": tm.runID,
				"ready": tm.ready.Len(),
			}).Debug("Tasks requeued, dispatching again")
		}
		tm.state = Dispatching
		if admitted := tm.dispatch(elapsed); admitted > 0 && tm.ready.Len() > 0 {
			tm.wake()
		}
	}

	tm.updateState()
	tm.updateStats()
	return tm.state
}

// Run relative time. Only valid after begin().
func (tm *TaskManager) elapsed() time.Duration {
	return tm.clock.Since(tm.startTime)
}

// Moves every task whose arrival time elapsed into the ready queue.
func (tm *TaskManager) promoteArrivals(elapsed time.Duration) {
	n := 0
	for n < len(tm.pending) && tm.pending[n].ArrivalTime <= elapsed {
		task := tm.pending[n]
		tm.ready.Push(task)
		log.WithFields(log.Fields{
			"runID":   tm.runID,
			"taskID":  task.ID,
			"arrival": task.ArrivalTime,
			"elapsed": elapsed,
		}).Debug("Task arrived")
		n++
	}
	tm.pending = tm.pending[n:]
}

// Offers at most one slice to every node with spare capacity, taking ready
// tasks in policy order. Returns the number of admitted slices.
func (tm *TaskManager) dispatch(elapsed time.Duration) int {
	candidates := tm.ready.Tasks()
	next := 0
	admitted := 0

	for i := 0; i < len(tm.nodes) && next < len(candidates); i++ {
		node := tm.nodeForPass(i)
		status := node.GetStatus()
		if !status.HasCapacity() {
			continue
		}

		for next < len(candidates) && tm.isInProgress(candidates[next].ID) {
			next++
		}
		if next >= len(candidates) {
			break
		}
		task := candidates[next]

		slice := &domain.Slice{TaskID: task.ID, Duration: sliceFor(tm.config.Policy, task, tm.config.Quantum)}
		if !node.AssignTask(slice) {
			// capacity went away since GetStatus, offer the task to the next node
			tm.stat.Counter(stats.SchedAdmissionRejectedCounter).Inc(1)
			log.WithFields(log.Fields{
				"runID":  tm.runID,
				"taskID": task.ID,
				"server": node.ID(),
			}).Debug("Server rejected slice, will retry")
			continue
		}
		next++
		admitted++
		tm.admit(task, node, slice, status, elapsed)
	}
	return admitted
}

// Round robin rotates the first node offered work across passes, the other
// policies always start from the first node.
func (tm *TaskManager) nodeForPass(i int) Node {
	if !tm.config.Policy.Preemptive() {
		return tm.nodes[i]
	}
	node := tm.nodes[tm.nextNode%len(tm.nodes)]
	tm.nextNode = (tm.nextNode + 1) % len(tm.nodes)
	return node
}

func (tm *TaskManager) isInProgress(id domain.TaskID) bool {
	_, ok := tm.inProgress[id]
	return ok
}

func (tm *TaskManager) admit(task *domain.Task, node Node, slice *domain.Slice, before domain.ServerStatus, elapsed time.Duration) {
	tm.ready.Remove(task.ID)
	task.RemainingTime -= slice.Duration
	task.AssignedAt = elapsed
	if !task.WasAssigned() {
		task.FirstAssignedAt = elapsed
		tm.stat.Latency(stats.SchedTaskWaitLatency_ms).Record(clampNonNegative(elapsed - task.ArrivalTime))
	}
	tm.inProgress[task.ID] = node.ID()
	tm.stat.Counter(stats.SchedDispatchedSlicesCounter).Inc(1)

	fields := log.Fields{
		"runID":     tm.runID,
		"taskID":    task.ID,
		"type":      task.Type,
		"server":    node.ID(),
		"load":      fmt.Sprintf("%d/%d", before.CurrentLoad, before.MaxCapacity),
		"loadAfter": fmt.Sprintf("%d/%d", before.CurrentLoad+1, before.MaxCapacity),
		"slice":     slice.Duration,
		"remaining": task.RemainingTime,
		"burst":     task.BurstTime,
		"arrival":   task.ArrivalTime,
		"elapsed":   elapsed,
	}
	if tm.config.Policy == domain.StrictPriority {
		fields["priority"] = fmt.Sprintf("%s (%d)", domain.PriorityLabel(task.Priority), task.Priority)
	}
	log.WithFields(fields).Info("Dispatched slice")
}

// Must be called with mu held.
func (tm *TaskManager) updateState() {
	if len(tm.pending) > 0 || tm.ready.Len() > 0 {
		tm.state = Dispatching
		return
	}
	if len(tm.tasksToComplete) == 0 && len(tm.inProgress) == 0 && tm.nodesIdle() {
		log.WithFields(log.Fields{
			"runID":     tm.runID,
			"completed": len(tm.completions),
			"elapsed":   tm.elapsed(),
		}).Info("All tasks completed")
		tm.state = Done
		return
	}
	if tm.state != Draining || tm.drainLimiter.Allow() {
		log.WithFields(log.Fields{
			"runID":      tm.runID,
			"inProgress": len(tm.inProgress),
			"remaining":  len(tm.tasksToComplete),
		}).Info("Draining, waiting for in-flight slices")
	}
	tm.state = Draining
}

func (tm *TaskManager) nodesIdle() bool {
	for _, n := range tm.nodes {
		if n.GetStatus().CurrentLoad > 0 {
			return false
		}
	}
	return true
}

func (tm *TaskManager) updateStats() {
	tm.stat.Gauge(stats.SchedPendingQueueGauge).Update(int64(len(tm.pending)))
	tm.stat.Gauge(stats.SchedReadyQueueGauge).Update(int64(tm.ready.Len()))
	tm.stat.Gauge(stats.SchedInProgressGauge).Update(int64(len(tm.inProgress)))
}

// RegisterCompletion applies one finished slice to the scheduler state. Safe
// for concurrent use by any number of servers.
//
// Under round robin a task with time left is removed from the in progress set
// and appended to the ready queue. Otherwise the task is complete and its
// response time is recorded: the reported slice response time for
// non-preemptive policies, the time since its first admission for round robin.
// Unknown or already completed task ids are logged and ignored.
func (tm *TaskManager) RegisterCompletion(id domain.TaskID, responseTime time.Duration) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	defer tm.wake()

	task, ok := tm.tasks[id]
	if !ok {
		tm.stat.Counter(stats.SchedUnknownCompletionCounter).Inc(1)
		log.WithFields(log.Fields{
			"runID":  tm.runID,
			"taskID": id,
		}).Warn("Completion for unknown task, ignoring")
		return
	}
	delete(tm.inProgress, id)

	if _, waiting := tm.tasksToComplete[id]; !waiting {
		log.WithFields(log.Fields{
			"runID":  tm.runID,
			"taskID": id,
		}).Warn("Completion for a task that already completed, ignoring")
		return
	}

	if tm.config.Policy.Preemptive() && task.RemainingTime > 0 {
		tm.ready.Push(task)
		tm.stat.Counter(stats.SchedRequeuedTasksCounter).Inc(1)
		log.WithFields(log.Fields{
			"runID":     tm.runID,
			"taskID":    id,
			"slice":     responseTime,
			"remaining": task.RemainingTime,
		}).Debug("Slice finished, task requeued")
		return
	}

	if tm.config.Policy.Preemptive() {
		responseTime = clampNonNegative(tm.elapsed() - task.FirstAssignedAt)
	}
	task.RemainingTime = 0
	tm.completions[id] = responseTime
	delete(tm.tasksToComplete, id)
	tm.stat.Counter(stats.SchedCompletedTasksCounter).Inc(1)
	tm.stat.Latency(stats.SchedTaskResponseLatency_ms).Record(responseTime)
	log.WithFields(log.Fields{
		"runID":     tm.runID,
		"taskID":    id,
		"response":  responseTime,
		"remaining": len(tm.tasksToComplete),
	}).Info("Task completed")
}

func clampNonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
