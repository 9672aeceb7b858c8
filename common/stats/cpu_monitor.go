package stats

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// CPUMonitor samples the cpu time consumed by this process between a start
// and an end point and reports it as an average utilization percent of all cores.
type CPUMonitor struct {
	cpuTime   func() (time.Duration, error)
	numCPU    int
	startCPU  time.Duration
	startWall time.Time
	endCPU    time.Duration
	endWall   time.Time
	valid     bool
}

// NewCPUMonitor returns a CPUMonitor that reads process rusage.
func NewCPUMonitor() *CPUMonitor {
	return newCPUMonitor(processCPUTime, runtime.NumCPU())
}

func newCPUMonitor(cpuTime func() (time.Duration, error), numCPU int) *CPUMonitor {
	if numCPU < 1 {
		numCPU = 1
	}
	return &CPUMonitor{cpuTime: cpuTime, numCPU: numCPU}
}

// Start records the starting cpu and wall clock times.
func (m *CPUMonitor) Start() {
	var err error
	m.startWall = Time.Now()
	m.startCPU, err = m.cpuTime()
	m.valid = err == nil
	if err != nil {
		log.Errorf("error reading process cpu time, will not report utilization: %s", err)
	}
}

// End records the ending cpu and wall clock times.
func (m *CPUMonitor) End() {
	var err error
	m.endWall = Time.Now()
	m.endCPU, err = m.cpuTime()
	if err != nil {
		log.Errorf("error reading process cpu time, will not report utilization: %s", err)
		m.valid = false
	}
}

// Utilization returns cpu time / (wall time * cores) as a percent in [0, 100].
// Returns 0 if either sample failed or no wall time elapsed.
func (m *CPUMonitor) Utilization() float64 {
	wall := m.endWall.Sub(m.startWall)
	if !m.valid || wall <= 0 {
		return 0
	}
	pct := 100 * float64(m.endCPU-m.startCPU) / (float64(wall) * float64(m.numCPU))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// RecordStats records the utilization to the stats receiver.
func (m *CPUMonitor) RecordStats(stat StatsReceiver) {
	stat.GaugeFloat(RunCPUUtilizationGaugeFloat).Update(m.Utilization())
}
