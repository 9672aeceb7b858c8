package config

import (
	"sort"

	"github.com/pkg/errors"
)

// BuiltinTopologies the map of topologies selectable with "builtin:<name>"
var BuiltinTopologies = map[string]string{
	"demo":       demoTopology,
	"scenario.a": scenarioA,
	"scenario.b": scenarioB,
	"scenario.c": scenarioC,
}

// One server, two tasks ready at once: sjf runs the short one first.
const scenarioA = `{
  "servers": [{"id": "s1", "capacity": 1}],
  "requests": [
    {"id": "long", "type": "cpu", "priority": 1, "exec_time": 2, "arrival_time": 0},
    {"id": "short", "type": "cpu", "priority": 1, "exec_time": 1, "arrival_time": 0}
  ]
}`

// One server, one task needing three round robin slices.
const scenarioB = `{
  "servers": [{"id": "s1", "capacity": 1}],
  "requests": [
    {"id": "t1", "type": "cpu", "priority": 1, "exec_time": 2.5, "arrival_time": 0}
  ]
}`

// Two single slot servers, three priorities competing for them.
const scenarioC = `{
  "servers": [{"id": "s1", "capacity": 1}, {"id": "s2", "capacity": 1}],
  "requests": [
    {"id": "t1", "type": "io", "priority": 2, "exec_time": 1, "arrival_time": 0},
    {"id": "t2", "type": "cpu", "priority": 1, "exec_time": 1, "arrival_time": 0},
    {"id": "t3", "type": "cpu", "priority": 3, "exec_time": 1, "arrival_time": 0}
  ]
}`

const demoTopology = `{
  "servers": [
    {"id": "s1", "capacity": 2},
    {"id": "s2", "capacity": 1},
    {"id": "s3", "capacity": 3}
  ],
  "requests": [
    {"id": "t1", "type": "cpu", "priority": 1, "exec_time": 3.2, "arrival_time": 0},
    {"id": "t2", "type": "io", "priority": 3, "exec_time": 1.5, "arrival_time": 0.5},
    {"id": "t3", "type": "memory", "priority": 2, "exec_time": 2.0, "arrival_time": 0.5},
    {"id": "t4", "type": "cpu", "priority": 1, "exec_time": 0.8, "arrival_time": 1.0},
    {"id": "t5", "type": "io", "priority": 2, "exec_time": 4.0, "arrival_time": 1.5},
    {"id": "t6", "type": "cpu", "priority": 3, "exec_time": 1.1, "arrival_time": 2.0},
    {"id": "t7", "type": "memory", "priority": 1, "exec_time": 2.7, "arrival_time": 2.5},
    {"id": "t8", "type": "cpu", "priority": 2, "exec_time": 0.6, "arrival_time": 3.0}
  ]
}`

// GetConfigText returns the JSON text of the named builtin topology.
func GetConfigText(configSelector string) ([]byte, error) {
	configText, ok := BuiltinTopologies[configSelector]
	if !ok {
		keys := make([]string, 0, len(BuiltinTopologies))
		for k := range BuiltinTopologies {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, errors.Errorf("invalid builtin topology %s, supported values are %v", configSelector, keys)
	}
	return []byte(configText), nil
}
