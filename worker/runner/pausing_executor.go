package runner

import (
	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/domain"
)

// PausingExecutor blocks every Execute call until Resume is called once for
// it, ignoring the slice duration. Lets tests hold slices in flight.
type PausingExecutor struct {
	ch    chan struct{}
	clock stats.StatsTime
}

func NewPausingExecutor() *PausingExecutor {
	return &PausingExecutor{ch: make(chan struct{}), clock: stats.DefaultStatsTime()}
}

func (e *PausingExecutor) Execute(slice domain.Slice) domain.Completion {
	<-e.ch
	return domain.Completion{TaskID: slice.TaskID, ResponseTime: e.clock.Since(slice.AssignedAt)}
}

// Resume releases exactly one blocked Execute call, waiting for one if none
// is blocked yet.
func (e *PausingExecutor) Resume() {
	e.ch <- struct{}{}
}
