/*
Package cli provides the fleetsim command line. It parses the policy
selector and the run tunables, loads the topology (scheduler/config),
starts one workerserver.Server per configured server, runs the
TaskManager to completion and renders the run summary.

Fatal failures are returned as common/errors.ExitCodeError so the binary
can exit with a usage (64), configuration (78) or run failure (70) code.
*/
package cli
