// Package workerserver provides Server, a capacity-bounded pool that runs
// admitted task slices concurrently and forwards their completions to the
// scheduler.
package workerserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/twitter/fleetsim/async"
	"github.com/twitter/fleetsim/common/stats"
	"github.com/twitter/fleetsim/scheduler/domain"
	"github.com/twitter/fleetsim/worker/runner"
)

// Upper bound on how long the control loop sleeps when there is nothing to do.
const DefaultPollInterval = 50 * time.Millisecond

// Config holds the server tunables.
//
// PollInterval - the longest the control loop waits between passes when idle.
// The wait grows exponentially from a millisecond up to this value and resets
// whenever a slice is admitted or a worker finishes.
//
// Executor - runs each slice. Defaults to runner.NewWorker().
type Config struct {
	PollInterval time.Duration
	Executor     runner.Executor
}

type Server struct {
	spec  domain.ServerSpec
	cfg   Config
	stat  stats.StatsReceiver
	clock stats.StatsTime

	mu       sync.Mutex
	load     int
	queue    []domain.Slice
	started  bool
	stopping bool

	wakeCh chan struct{}
	doneCh chan struct{}

	stopOnce     sync.Once
	drainLimiter *rate.Limiter
}

func New(spec domain.ServerSpec, cfg Config, stat stats.StatsReceiver) *Server {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Executor == nil {
		cfg.Executor = runner.NewWorker()
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Server{
		spec:         spec,
		cfg:          cfg,
		stat:         stat.Scope("server", spec.ID),
		clock:        stats.DefaultStatsTime(),
		wakeCh:       make(chan struct{}, 1),
		doneCh:       make(chan struct{}),
		drainLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (s *Server) ID() string {
	return s.spec.ID
}

// AssignTask reserves one unit of capacity for slice and queues it for local
// execution. Capacity is taken immediately, before any worker is launched, so
// GetStatus reflects committed work. On success the slice's AssignedAt is set
// to the admission time.
//
// Returns false without side effects if the server is full, stopping, or the
// slice has no task id.
func (s *Server) AssignTask(slice *domain.Slice) bool {
	if slice == nil || slice.TaskID == "" {
		log.WithFields(log.Fields{
			"server": s.spec.ID,
		}).Error("Rejected slice without a task id")
		s.stat.Counter(stats.ServerAssignRejectedCounter).Inc(1)
		return false
	}

	s.mu.Lock()
	if s.stopping || s.load >= s.spec.MaxCapacity {
		s.mu.Unlock()
		s.stat.Counter(stats.ServerAssignRejectedCounter).Inc(1)
		return false
	}
	slice.AssignedAt = s.clock.Now()
	s.queue = append(s.queue, *slice)
	s.load++
	load, queued := s.load, len(s.queue)
	s.mu.Unlock()

	s.stat.Gauge(stats.ServerLoadGauge).Update(int64(load))
	s.stat.Gauge(stats.ServerLocalQueueGauge).Update(int64(queued))
	s.wake()
	return true
}

// GetStatus returns a point-in-time snapshot of the server's load. It is
// advisory only, AssignTask re-checks capacity itself.
func (s *Server) GetStatus() domain.ServerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ServerStatus{
		ID:          s.spec.ID,
		CurrentLoad: s.load,
		MaxCapacity: s.spec.MaxCapacity,
		IsFull:      s.load >= s.spec.MaxCapacity,
	}
}

// Start launches the control loop, which forwards every completion to reg.
// Calling Start more than once has no effect.
func (s *Server) Start(reg domain.CompletionRegistrar) {
	s.mu.Lock()
	if s.started || s.stopping {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"server":   s.spec.ID,
		"capacity": s.spec.MaxCapacity,
	}).Info("Server started")
	go s.loop(reg)
}

// Stop asks the control loop to exit and blocks until every in-flight worker
// has finished and its completion was forwarded. Slices admitted but not yet
// launched are dropped and their capacity released. Safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopping = true
		started := s.started
		if !started {
			s.load -= len(s.queue)
			s.queue = nil
		}
		s.mu.Unlock()

		if !started {
			close(s.doneCh)
			return
		}
		s.wake()
		<-s.doneCh
		log.WithFields(log.Fields{
			"server": s.spec.ID,
		}).Info("Server stopped")
	})
}

func (s *Server) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("server %s load %d/%d running %d queued %s",
		s.spec.ID, s.load, s.spec.MaxCapacity, s.load-len(s.queue), spew.Sdump(s.queue))
}

func (s *Server) wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

func (s *Server) loop(reg domain.CompletionRegistrar) {
	defer close(s.doneCh)

	workers := async.NewRunner[domain.Completion](s.spec.MaxCapacity)
	idle := newIdleBackoff(s.cfg.PollInterval)

	for {
		reaped := workers.ProcessMessages()
		launched, stopping := s.launchQueued(workers, reg)

		if stopping {
			s.drain(workers)
			return
		}

		if reaped+launched > 0 {
			idle.Reset()
		}
		if workers.Wait(s.wakeCh, idle.NextBackOff()) > 0 {
			idle.Reset()
		}
	}
}

// Launches a worker for every queued slice. Once stopping, queued slices are
// dropped instead and their capacity released.
func (s *Server) launchQueued(workers *async.Runner[domain.Completion], reg domain.CompletionRegistrar) (int, bool) {
	s.mu.Lock()
	queued := s.queue
	s.queue = nil
	stopping := s.stopping
	if stopping {
		s.load -= len(queued)
	}
	load := s.load
	s.mu.Unlock()

	s.stat.Gauge(stats.ServerLocalQueueGauge).Update(0)
	if stopping {
		for _, slice := range queued {
			log.WithFields(log.Fields{
				"server": s.spec.ID,
				"taskID": slice.TaskID,
			}).Warn("Dropped queued slice, server is stopping")
		}
		s.stat.Gauge(stats.ServerLoadGauge).Update(int64(load))
		return 0, true
	}

	for _, slice := range queued {
		s.launch(workers, reg, slice, load)
	}
	return len(queued), false
}

func (s *Server) launch(workers *async.Runner[domain.Completion], reg domain.CompletionRegistrar, slice domain.Slice, load int) {
	exec := s.cfg.Executor
	workers.RunAsync(func() domain.Completion {
		return exec.Execute(slice)
	}, func(c domain.Completion) {
		s.complete(reg, c)
	})
	s.stat.Counter(stats.ServerWorkersLaunchedCounter).Inc(1)
	log.WithFields(log.Fields{
		"server":   s.spec.ID,
		"taskID":   slice.TaskID,
		"slice":    slice.Duration,
		"load":     load,
		"capacity": s.spec.MaxCapacity,
	}).Debug("Worker launched")
}

// Releases the worker's capacity, then forwards its completion. Runs on the
// loop goroutine and never holds s.mu while calling reg.
func (s *Server) complete(reg domain.CompletionRegistrar, c domain.Completion) {
	s.mu.Lock()
	s.load--
	load := s.load
	s.mu.Unlock()

	s.stat.Gauge(stats.ServerLoadGauge).Update(int64(load))
	s.stat.Latency(stats.ServerSliceResponseLatency_ms).Record(c.ResponseTime)
	log.WithFields(log.Fields{
		"server":   s.spec.ID,
		"taskID":   c.TaskID,
		"response": c.ResponseTime,
		"load":     load,
		"capacity": s.spec.MaxCapacity,
	}).Debug("Worker finished")

	if reg != nil {
		reg.RegisterCompletion(c.TaskID, c.ResponseTime)
	}
	s.stat.Counter(stats.ServerCompletionsForwardedCounter).Inc(1)
}

// Blocks until every launched worker has reported.
func (s *Server) drain(workers *async.Runner[domain.Completion]) {
	for workers.NumRunning() > 0 {
		if s.drainLimiter.Allow() {
			log.WithFields(log.Fields{
				"server":  s.spec.ID,
				"running": workers.NumRunning(),
			}).Info("Waiting for in-flight workers")
		}
		workers.Wait(nil, s.cfg.PollInterval)
	}
}

func newIdleBackoff(max time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond
	if b.InitialInterval > max {
		b.InitialInterval = max
	}
	b.MaxInterval = max
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
