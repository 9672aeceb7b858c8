package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/twitter/fleetsim/scheduler/domain"
)

func Test_CalculateMetrics_NoCompletions(t *testing.T) {
	clock := newFakeClock()
	tm := makeDebugTaskManager(t, domain.RoundRobin, clock, asNodes(newFakeNode("s1", 1, clock)), task("t1", 1, time.Second, time.Hour))
	tm.finish()

	m := tm.CalculateMetrics(0)
	assert.Equal(t, time.Duration(0), m.AvgResponseTime)
	assert.Equal(t, 0.0, m.Throughput)
	assert.Equal(t, DefaultMaxWaitTime, m.MaxWaitTime)
	assert.Equal(t, WaitDefault, m.WaitSource)
	assert.Equal(t, 0, m.Completed)
	assert.Equal(t, 1, m.Total)
}

func Test_CalculateMetrics_BeforeRun(t *testing.T) {
	tm, err := NewTaskManager(asNodes(newFakeNode("s1", 1, newFakeClock())), nil, SchedulerConfiguration{Policy: domain.ShortestJobFirst}, nil)
	assert.NoError(t, err)

	m := tm.CalculateMetrics(3)
	assert.Equal(t, Metrics{CPUUtilization: 3, MaxWaitTime: DefaultMaxWaitTime, WaitSource: WaitDefault}, m)
}

func Test_CalculateMetrics_EstimatesWaitWithoutAssignments(t *testing.T) {
	clock := newFakeClock()
	tm := makeDebugTaskManager(t, domain.ShortestJobFirst, clock, asNodes(newFakeNode("s1", 1, clock)),
		task("t1", 1, time.Second, 0), task("t2", 1, 2*time.Second, 0), task("t3", 1, 2*time.Second, 0))

	tm.completions["t1"] = 3 * time.Second
	tm.completions["t2"] = time.Second
	clock.Advance(4 * time.Second)
	tm.finish()

	m := tm.CalculateMetrics(0)
	assert.Equal(t, 2*time.Second, m.MaxWaitTime)
	assert.Equal(t, WaitEstimated, m.WaitSource)
	assert.Equal(t, 2*time.Second, m.AvgResponseTime)
	assert.InDelta(t, 0.5, m.Throughput, 1e-9)
}

func Test_CalculateMetrics_WaitClampedAtZero(t *testing.T) {
	clock := newFakeClock()
	t1 := task("t1", 1, time.Second, 2*time.Second)
	tm := makeDebugTaskManager(t, domain.ShortestJobFirst, clock, asNodes(newFakeNode("s1", 1, clock)), t1)

	t1.FirstAssignedAt = time.Second
	m := tm.CalculateMetrics(0)
	assert.Equal(t, time.Duration(0), m.MaxWaitTime)
	assert.Equal(t, WaitFromAssignment, m.WaitSource)
}

func Test_Metrics_String(t *testing.T) {
	m := Metrics{AvgResponseTime: 1500 * time.Millisecond, CPUUtilization: 12.5, MaxWaitTime: time.Second, Throughput: 0.5, WaitSource: WaitFromAssignment}
	assert.Contains(t, m.String(), "avg response: 1.50s")
	assert.Contains(t, m.String(), "cpu: 12.50%")
}
