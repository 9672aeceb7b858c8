// Package config loads the fleet topology, the servers and the task requests
// of a run, from JSON, YAML or HCL documents and validates it.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/fleetsim/scheduler/domain"
)

// Priority given to requests that don't set one, the least urgent label.
const DefaultPriority = 3

// Upper bound for exec_time and arrival_time, in seconds. Larger values do
// not fit a time.Duration once summed into a run.
const MaxSeconds = 1e6

// Prefix selecting one of the BuiltinTopologies instead of a file.
const BuiltinPrefix = "builtin:"

var (
	ErrNoServers     = errors.New("no servers defined")
	ErrUnknownFormat = errors.New("unknown topology format")
)

// Topology is the parsed and validated configuration of a run.
type Topology struct {
	Servers  []Server
	Requests []Request
}

type Server struct {
	ID       string
	Capacity int
}

// Request describes one task. Times are in seconds.
type Request struct {
	ID          string
	Type        string
	Priority    int
	ExecTime    float64
	ArrivalTime float64
}

func (t *Topology) String() string {
	return fmt.Sprintf("Topology: %d servers, %d requests", len(t.Servers), len(t.Requests))
}

func (s Server) String() string {
	return fmt.Sprintf("Server: ID: %s, Capacity: %d", s.ID, s.Capacity)
}

func (r Request) String() string {
	return fmt.Sprintf("Request: ID: %s, Type: %s, Priority: %d, ExecTime: %gs, ArrivalTime: %gs",
		r.ID, r.Type, r.Priority, r.ExecTime, r.ArrivalTime)
}

// ServerSpecs converts the servers for workerserver.New.
func (t *Topology) ServerSpecs() []domain.ServerSpec {
	specs := make([]domain.ServerSpec, 0, len(t.Servers))
	for _, s := range t.Servers {
		specs = append(specs, domain.ServerSpec{ID: s.ID, MaxCapacity: s.Capacity})
	}
	return specs
}

// Tasks creates a fresh task for every request, in configuration order.
func (t *Topology) Tasks() []*domain.Task {
	tasks := make([]*domain.Task, 0, len(t.Requests))
	for _, r := range t.Requests {
		tasks = append(tasks, domain.NewTask(domain.TaskID(r.ID), r.Type, r.Priority, Seconds(r.ExecTime), Seconds(r.ArrivalTime)))
	}
	return tasks
}

// Seconds converts fractional seconds to a Duration, rounded to the microsecond.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s*1e6)) * time.Microsecond
}

// Load reads and validates the topology at path, picking the decoder from the
// file extension: .json, .yaml, .yml or .hcl. A path of the form
// "builtin:<name>" selects one of the BuiltinTopologies.
func Load(path string) (*Topology, error) {
	if name := strings.TrimPrefix(path, BuiltinPrefix); name != path {
		text, err := GetConfigText(name)
		if err != nil {
			return nil, err
		}
		return Parse(name+".json", text)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading topology %s", path)
	}
	return Parse(path, data)
}

// Parse decodes data in the format implied by filename's extension, then
// validates it. Every defect found is reported in the returned error.
func Parse(filename string, data []byte) (*Topology, error) {
	var (
		topo *Topology
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		topo, err = decodeJSON(data)
	case ".yaml", ".yml":
		topo, err = decodeYAML(data)
	case ".hcl":
		topo, err = decodeHCL(filename, data)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q (expected .json, .yaml, .yml or .hcl)", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "invalid topology %s", filename)
	}

	if err := Validate(topo); err != nil {
		return nil, errors.Wrapf(err, "invalid topology %s", filename)
	}
	log.Infof("Loaded %s from %s", topo, filename)
	return topo, nil
}

// Renders an id decoded into an interface, numbers ids are accepted.
func idString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
