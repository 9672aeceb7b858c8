package stats

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPrecisionIsMillis(t *testing.T) {
	stat := DefaultStatsReceiver().(*defaultStatsReceiver)
	if stat.precision != time.Millisecond {
		t.Fatal("Default precision should be millis.")
	}

	scoped := stat.Scope("scheduler").(*defaultStatsReceiver)
	if scoped.precision != time.Millisecond {
		t.Fatal("Scoped precision should still be millis.")
	}
	if got := scoped.Latency(SchedStepLatency_ms).GetPrecision(); got != time.Millisecond {
		t.Fatal("Latency precision should be millis, got ", got)
	}
}

func TestScopeChange(t *testing.T) {
	stat := DefaultStatsReceiver().(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should be empty.")
	}

	statp := stat.Scope("server/a", "s1").(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should still empty.")
	}
	if len(statp.scope) != 2 || statp.scope[0] != "server_SLASH_a" || statp.scope[1] != "s1" {
		t.Fatal("Invalid scope value: ", statp.scope)
	}
	if statp.scopedName(ServerLoadGauge) != "server_SLASH_a/s1/loadGauge" {
		t.Fatal("Invalid scope name: " + statp.scopedName(ServerLoadGauge))
	}
}

func TestScopesShareRegistry(t *testing.T) {
	stat := DefaultStatsReceiver()
	stat.Scope("server", "s1").Counter(ServerWorkersLaunchedCounter).Inc(2)
	if got := stat.Counter("server", "s1", ServerWorkersLaunchedCounter).Count(); got != 2 {
		t.Fatalf("Expected scoped counter to be visible from the root, got %d", got)
	}
}

func TestMarshal(t *testing.T) {
	defer func() { Time = DefaultStatsTime() }()
	Time = NewTestTime(time.Unix(0, 0), time.Nanosecond*5)

	reg := NewFinagleStatsRegistry()
	reg.GetOrRegister("counter", NewCounter()).(Counter).Inc(1)
	reg.GetOrRegister("gauge", NewGauge()).(Gauge).Update(2)

	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()
	Time = NewTestTime(time.Unix(0, 0), time.Nanosecond*10)
	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()

	bytes, err := reg.(MarshalerPretty).MarshalJSONPretty()
	expected :=
		`{
  "counter": 1,
  "gauge": 2,
  "latency.avg": 7.5,
  "latency.count": 2,
  "latency.max": 10,
  "latency.min": 5,
  "latency.p50": 7.5,
  "latency.p90": 10,
  "latency.p95": 10,
  "latency.p99": 10,
  "latency.sum": 15
}`
	if string(bytes) != expected {
		t.Fatal("Wrong json marshal output: ", string(bytes), err)
	}
}

func TestLatencyRendersMillis(t *testing.T) {
	stat := NewCustomStatsReceiver(NewFinagleStatsRegistry)
	stat.Scope("scheduler").Latency(SchedTaskResponseLatency_ms).Record(1500 * time.Millisecond)
	stat.Scope("scheduler").Latency(SchedTaskResponseLatency_ms).Record(500 * time.Millisecond)

	rendered := string(stat.Render(false))
	for _, want := range []string{
		`"scheduler/taskResponseLatency_ms.max":1500`,
		`"scheduler/taskResponseLatency_ms.min":500`,
		`"scheduler/taskResponseLatency_ms.avg":1000`,
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("Expected %s in latency rendered in millis: %s", want, rendered)
		}
	}
}

func TestNilReceiver(t *testing.T) {
	stat := NilStatsReceiver()
	stat.Counter("counter").Inc(1)
	stat.Latency("latency").Time().Stop()
	if stat.Counter("counter").Count() != 0 {
		t.Fatal("Nil counter should not count")
	}
	if string(stat.Render(true)) != "{}" {
		t.Fatal("Nil receiver should render empty")
	}
}

func TestCPUMonitor(t *testing.T) {
	defer func() { Time = DefaultStatsTime() }()

	samples := []time.Duration{time.Second, 3 * time.Second}
	m := newCPUMonitor(func() (time.Duration, error) {
		s := samples[0]
		samples = samples[1:]
		return s, nil
	}, 2)

	Time = NewTestTime(time.Unix(0, 0), 0)
	m.Start()
	Time = NewTestTime(time.Unix(4, 0), 0)
	m.End()

	// 2s of cpu over 4s wall on 2 cores.
	if got := m.Utilization(); got != 25 {
		t.Fatalf("Expected 25%% utilization, got %v", got)
	}

	stat := DefaultStatsReceiver()
	m.RecordStats(stat)
	if got := stat.GaugeFloat(RunCPUUtilizationGaugeFloat).Value(); got != 25 {
		t.Fatalf("Expected gauge to hold 25, got %v", got)
	}
}

func TestCPUMonitor_SampleError(t *testing.T) {
	m := newCPUMonitor(func() (time.Duration, error) {
		return 0, errors.New("no rusage")
	}, 1)
	m.Start()
	m.End()
	if got := m.Utilization(); got != 0 {
		t.Fatalf("Expected 0 utilization on sampling failure, got %v", got)
	}
}

func TestCPUMonitor_Process(t *testing.T) {
	m := NewCPUMonitor()
	m.Start()
	deadline := time.Now().Add(20 * time.Millisecond)
	for time.Now().Before(deadline) {
	}
	m.End()
	if got := m.Utilization(); got < 0 || got > 100 {
		t.Fatalf("Utilization out of range: %v", got)
	}
}
