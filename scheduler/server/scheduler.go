// Package server provides the main scheduling interface for fleetsim
package server

//go:generate mockgen -source=scheduler.go -package=server -destination=scheduler_mock.go

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/twitter/fleetsim/scheduler/domain"
)

const (
	// Longest slice a round robin task gets before going back to the ready queue.
	DefaultQuantum = time.Second

	// How often the dispatch loop steps when no completion wakes it.
	DefaultTickRate = 100 * time.Millisecond
)

var (
	ErrNoServers      = errors.New("no servers defined")
	ErrAlreadyStarted = errors.New("task manager already started")
)

type Scheduler interface {
	Run(ctx context.Context) error

	RegisterCompletion(id domain.TaskID, responseTime time.Duration)

	CalculateMetrics(cpuUtilization float64) Metrics

	State() State
}

// Node is a server as seen by the scheduler.
type Node interface {
	ID() string

	// Reserves capacity for slice, returning false if the node can't take it.
	AssignTask(slice *domain.Slice) bool

	// Advisory snapshot, may be stale as soon as it returns.
	GetStatus() domain.ServerStatus

	// Starts the node's control loop, forwarding completions to reg.
	Start(reg domain.CompletionRegistrar)

	// Stops the node after its in-flight slices finish.
	Stop()
}

// SchedulerConfiguration variables read at initialization
// Policy - the scheduling policy, fixed for the run.
//
// Quantum - the longest slice a round robin task runs before it is requeued.
//
// TickRate - how often the dispatch loop steps when nothing wakes it.
//
// DebugMode - if true, Run does not start the dispatch loop.  Instead the loop
//
//	must be advanced manually by calling step()
type SchedulerConfiguration struct {
	Policy    domain.Policy
	Quantum   time.Duration
	TickRate  time.Duration
	DebugMode bool
}

func (sc *SchedulerConfiguration) String() string {
	return fmt.Sprintf("SchedulerConfiguration: Policy: %s, Quantum: %s, TickRate: %s, DebugMode: %t",
		sc.Policy, sc.Quantum, sc.TickRate, sc.DebugMode)
}

// State of a scheduling run.
type State int

const (
	Initializing State = iota
	Dispatching
	Draining
	Done
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "INITIALIZING"
	case Dispatching:
		return "DISPATCHING"
	case Draining:
		return "DRAINING"
	case Done:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
