package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/domain"
)

func Test_Worker_SleepsForSliceAndReportsResponse(t *testing.T) {
	var slept time.Duration
	w := NewWorkerWithClock(stats.NewTestTime(time.Now(), 1500*time.Millisecond), func(d time.Duration) { slept += d })

	c := w.Execute(domain.Slice{TaskID: "t1", Duration: time.Second, AssignedAt: time.Now()})
	assert.Equal(t, time.Second, slept)
	assert.Equal(t, domain.TaskID("t1"), c.TaskID)
	assert.Equal(t, 1500*time.Millisecond, c.ResponseTime)
}

func Test_Worker_ZeroDurationDoesNotSleep(t *testing.T) {
	w := NewWorkerWithClock(stats.NewTestTime(time.Now(), 0), func(time.Duration) { t.Fatal("unexpected sleep") })
	c := w.Execute(domain.Slice{TaskID: "t1"})
	assert.Equal(t, time.Duration(0), c.ResponseTime)
}

func Test_Worker_RealClock(t *testing.T) {
	w := NewWorker()
	assigned := time.Now()
	c := w.Execute(domain.Slice{TaskID: "t1", Duration: 5 * time.Millisecond, AssignedAt: assigned})
	assert.True(t, c.ResponseTime >= 5*time.Millisecond, "response %v", c.ResponseTime)
}

func Test_PausingExecutor(t *testing.T) {
	e := NewPausingExecutor()
	done := make(chan domain.Completion)
	go func() { done <- e.Execute(domain.Slice{TaskID: "t1", Duration: time.Hour, AssignedAt: time.Now()}) }()

	select {
	case <-done:
		t.Fatal("executor returned before Resume")
	case <-time.After(10 * time.Millisecond):
	}
	e.Resume()
	c := <-done
	assert.Equal(t, domain.TaskID("t1"), c.TaskID)
}
