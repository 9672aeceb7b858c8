// Package domain provides definitions for simulated Tasks, Servers and the
// records they exchange with the scheduler.
package domain

//go:generate mockgen -source=definitions.go -package=domain -destination=registrar_mock.go CompletionRegistrar

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Policy selects how the scheduler orders and admits ready tasks.
// It is fixed for the lifetime of a run.
type Policy string

const (
	// Quantum-preemptive round robin.
	RoundRobin Policy = "rr"

	// Non-preemptive shortest-job-first, ordered by burst time.
	ShortestJobFirst Policy = "sjf"

	// Non-preemptive strict priority, lower value runs first.
	StrictPriority Policy = "priority"
)

var ErrUnknownPolicy = errors.New("unknown scheduling policy")

// Policies lists every selector accepted by ParsePolicy, in display order.
var Policies = []Policy{RoundRobin, ShortestJobFirst, StrictPriority}

// ParsePolicy matches s exactly, selectors are lower case.
func ParsePolicy(s string) (Policy, error) {
	for _, known := range Policies {
		if Policy(s) == known {
			return known, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownPolicy, "%q (expected one of rr|sjf|priority)", s)
}

// Preemptive reports whether tasks may be split into several slices.
func (p Policy) Preemptive() bool {
	return p == RoundRobin
}

func (p Policy) String() string {
	return string(p)
}

type TaskID string

// Unassigned is the FirstAssignedAt value of a task that was never dispatched.
const Unassigned = time.Duration(-1)

// Task is one schedulable unit of work. It is created once from configuration
// and mutated in place by the scheduler only.
//
// Invariant: 0 <= RemainingTime <= BurstTime, complete iff RemainingTime == 0.
type Task struct {
	ID       TaskID
	Type     string
	Priority int // lower is more urgent, only used by StrictPriority

	BurstTime     time.Duration
	ArrivalTime   time.Duration // run-relative
	RemainingTime time.Duration

	FirstAssignedAt time.Duration // run-relative, Unassigned until first dispatch
	AssignedAt      time.Duration // run-relative, of the current dispatch
}

func NewTask(id TaskID, typ string, priority int, burst, arrival time.Duration) *Task {
	return &Task{
		ID:              id,
		Type:            typ,
		Priority:        priority,
		BurstTime:       burst,
		ArrivalTime:     arrival,
		RemainingTime:   burst,
		FirstAssignedAt: Unassigned,
	}
}

func (t *Task) Completed() bool {
	return t.RemainingTime == 0
}

func (t *Task) WasAssigned() bool {
	return t.FirstAssignedAt != Unassigned
}

func (t *Task) String() string {
	return fmt.Sprintf("{id:%s, type:%s, priority:%d, burst:%s, arrival:%s, remaining:%s}",
		t.ID, t.Type, t.Priority, t.BurstTime, t.ArrivalTime, t.RemainingTime)
}

// PriorityLabel returns the human name used in dispatch logs.
func PriorityLabel(priority int) string {
	switch priority {
	case 1:
		return "HIGH"
	case 2:
		return "MEDIUM"
	case 3:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Slice is the ephemeral copy of a task handed to a server: one bounded
// execution attempt of Duration <= the task's remaining time.
type Slice struct {
	TaskID     TaskID
	Duration   time.Duration
	AssignedAt time.Time // wall clock, set by the server on admission to time the slice
}

// Completion is emitted once per executed slice. ResponseTime is measured
// from the slice's admission to its completion.
type Completion struct {
	TaskID       TaskID
	ResponseTime time.Duration
}

// ServerSpec is the static description of a compute server.
type ServerSpec struct {
	ID          string
	MaxCapacity int
}

// ServerStatus is an advisory point-in-time snapshot of a server's load.
type ServerStatus struct {
	ID          string
	CurrentLoad int
	MaxCapacity int
	IsFull      bool
}

func (s ServerStatus) HasCapacity() bool {
	return s.CurrentLoad < s.MaxCapacity
}

// CompletionRegistrar receives completion records forwarded by servers.
// Implementations must be safe for concurrent use.
type CompletionRegistrar interface {
	RegisterCompletion(id TaskID, responseTime time.Duration)
}
