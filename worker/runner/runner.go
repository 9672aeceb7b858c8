package runner

//go:generate mockgen -source=runner.go -package=runner -destination=runner_mock.go

import (
	"time"

	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/domain"
)

// Executor runs one slice to completion and reports how long the slice took
// from its admission. Execute blocks for the simulated execution time and must
// be safe to call from many goroutines at once.
type Executor interface {
	Execute(slice domain.Slice) domain.Completion
}

// Worker is the default Executor. It simulates CPU work by sleeping for the
// slice duration.
type Worker struct {
	clock stats.StatsTime
	sleep func(time.Duration)
}

func NewWorker() *Worker {
	return &Worker{clock: stats.DefaultStatsTime(), sleep: time.Sleep}
}

// NewWorkerWithClock returns a Worker that reads time from clock and waits
// with sleep. Used in tests to avoid real sleeps.
func NewWorkerWithClock(clock stats.StatsTime, sleep func(time.Duration)) *Worker {
	return &Worker{clock: clock, sleep: sleep}
}

func (w *Worker) Execute(slice domain.Slice) domain.Completion {
	if slice.Duration > 0 {
		w.sleep(slice.Duration)
	}
	response := w.clock.Since(slice.AssignedAt)
	if response < 0 {
		response = 0
	}
	return domain.Completion{TaskID: slice.TaskID, ResponseTime: response}
}
