package server

import (
	"fmt"
	"time"
)

// DefaultMaxWaitTime is reported as the maximum wait time when the run has no
// data to derive it from. It is a placeholder with no meaning of its own.
const DefaultMaxWaitTime = 4300 * time.Millisecond

// Where MaxWaitTime came from.
type WaitSource string

const (
	// first admission minus arrival, over every admitted task
	WaitFromAssignment WaitSource = "assignment"
	// response time minus burst time, over every completed task
	WaitEstimated WaitSource = "estimated"
	// DefaultMaxWaitTime
	WaitDefault WaitSource = "default"
)

// Metrics summarizes a finished run.
type Metrics struct {
	AvgResponseTime time.Duration
	CPUUtilization  float64 // percent, supplied by the caller
	MaxWaitTime     time.Duration
	Throughput      float64 // completed tasks per second
	WaitSource      WaitSource

	Completed int
	Total     int
	Elapsed   time.Duration
}

func (m Metrics) String() string {
	return fmt.Sprintf("avg response: %.2fs, cpu: %.2f%%, max wait: %.2fs (%s), throughput: %.2f tasks/s, completed: %d/%d in %.2fs",
		m.AvgResponseTime.Seconds(), m.CPUUtilization, m.MaxWaitTime.Seconds(), m.WaitSource, m.Throughput,
		m.Completed, m.Total, m.Elapsed.Seconds())
}

// CalculateMetrics derives the run summary from the completion records.
// Intended to be called once the run finished, cpuUtilization is passed
// through unchanged. Never fails: an empty run reports zero response time
// and throughput.
func (tm *TaskManager) CalculateMetrics(cpuUtilization float64) Metrics {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	m := Metrics{
		CPUUtilization: cpuUtilization,
		Completed:      len(tm.completions),
		Total:          len(tm.tasks),
	}
	if !tm.startTime.IsZero() && !tm.endTime.IsZero() {
		m.Elapsed = tm.endTime.Sub(tm.startTime)
	}

	if len(tm.completions) > 0 {
		var total time.Duration
		for _, rt := range tm.completions {
			total += rt
		}
		m.AvgResponseTime = total / time.Duration(len(tm.completions))
		if m.Elapsed > 0 {
			m.Throughput = float64(len(tm.completions)) / m.Elapsed.Seconds()
		}
	}

	m.MaxWaitTime, m.WaitSource = tm.maxWaitTime()
	return m
}

// Must be called with mu held.
func (tm *TaskManager) maxWaitTime() (time.Duration, WaitSource) {
	var max time.Duration
	found := false
	for _, task := range tm.order {
		if !task.WasAssigned() {
			continue
		}
		if wait := clampNonNegative(task.FirstAssignedAt - task.ArrivalTime); !found || wait > max {
			max = wait
		}
		found = true
	}
	if found {
		return max, WaitFromAssignment
	}

	for _, task := range tm.order {
		rt, ok := tm.completions[task.ID]
		if !ok {
			continue
		}
		if wait := clampNonNegative(rt - task.BurstTime); !found || wait > max {
			max = wait
		}
		found = true
	}
	if found {
		return max, WaitEstimated
	}
	return DefaultMaxWaitTime, WaitDefault
}
