/*
package server provides TaskManager which dispatches simulated tasks to a fleet of capacity bounded servers.

* Concepts *
Policy:
  rr        quantum-preemptive round robin. A task runs in slices of min(Quantum, remaining time) and goes
            back to the tail of the ready queue while it has time left.
  sjf       non-preemptive shortest job first. Ready tasks are ordered by burst time, then arrival.
  priority  non-preemptive strict priority. Ready tasks are ordered by priority (lower first), then arrival.
            A late higher priority arrival overtakes waiting tasks but never preempts a running one.

Pending queue:
  Tasks whose arrival time has not elapsed yet, ordered by arrival. Times are relative to the start of the run.

Ready queue:
  Tasks that arrived and wait for admission, in policy order. Ties fall back to configuration order.

Admission:
  Reserving one unit of a server's capacity for a slice. Servers reserve capacity synchronously in AssignTask,
  so the scheduler re-checks each server for every attempt instead of trusting an earlier status snapshot.

In progress:
  Tasks with a slice admitted to some server. A task is never offered twice concurrently.

* Logic *
Dispatch Loop:
  INITIALIZING -> DISPATCHING -> DRAINING -> DONE
  Each step promotes arrivals, then offers at most one slice per server with spare capacity, taking ready tasks
  in policy order. Once the pending and ready queues are empty the run is DRAINING: nothing is dispatched and the
  loop only waits for completions. A round robin slice finishing with time left moves the run back to
  DISPATCHING. The run is DONE when no task is pending, ready, or in progress and every server is idle.

  The loop wakes on every completion and otherwise polls at TickRate.

Completions:
  Servers call RegisterCompletion from their own goroutines. All scheduler state is guarded by one mutex, so
  completions are applied one at a time.
*/
package server
