package cli

import (
	"context"

	log "github.com/sirupsen/logrus"

	simerrors "github.com/twitter/fleetsim/common/errors"
	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/config"
	"github.com/twitter/fleetsim/scheduler/domain"
	"github.com/twitter/fleetsim/scheduler/server"
	"github.com/twitter/fleetsim/worker/workerserver"
)

// Simulation is one complete run: load the topology, build the servers,
// schedule every task and sample cpu utilization around the run.
type Simulation struct {
	ConfigPath string
	Scheduler  server.SchedulerConfiguration
	Server     workerserver.Config

	// Builds the scheduler over the configured servers. NewTaskManager if nil.
	NewScheduler SchedulerFactory
}

type SchedulerFactory func(nodes []server.Node, tasks []*domain.Task, cfg server.SchedulerConfiguration, stat stats.StatsReceiver) (server.Scheduler, error)

func newTaskManager(nodes []server.Node, tasks []*domain.Task, cfg server.SchedulerConfiguration, stat stats.StatsReceiver) (server.Scheduler, error) {
	tm, err := server.NewTaskManager(nodes, tasks, cfg, stat)
	if err != nil {
		return nil, err
	}
	return tm, nil
}

// Run returns the run summary. Nothing is started when the topology or the
// scheduler configuration is invalid, the error then carries ConfigExitCode.
// A cancelled ctx stops the run early, the partial summary is returned along
// with a RunFailureExitCode error.
func (s Simulation) Run(ctx context.Context, stat stats.StatsReceiver) (server.Metrics, error) {
	topo, err := config.Load(s.ConfigPath)
	if err != nil {
		return server.Metrics{}, simerrors.NewError(err, simerrors.ConfigExitCode)
	}

	var nodes []server.Node
	for _, spec := range topo.ServerSpecs() {
		nodes = append(nodes, workerserver.New(spec, s.Server, stat))
	}
	newScheduler := s.NewScheduler
	if newScheduler == nil {
		newScheduler = newTaskManager
	}
	sched, err := newScheduler(nodes, topo.Tasks(), s.Scheduler, stat)
	if err != nil {
		return server.Metrics{}, simerrors.NewError(err, simerrors.ConfigExitCode)
	}
	log.Infof("Starting %v", sched)

	cpu := stats.NewCPUMonitor()
	cpu.Start()
	runErr := sched.Run(ctx)
	cpu.End()
	cpu.RecordStats(stat)

	metrics := sched.CalculateMetrics(cpu.Utilization())
	log.Infof("Run summary: %s", metrics)
	if runErr != nil {
		log.Errorf("Run did not complete: %v", runErr)
		return metrics, simerrors.NewError(runErr, simerrors.RunFailureExitCode)
	}
	return metrics, nil
}
