package server

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/twitter/fleetsim/scheduler/domain"
)

const propUnit = 100 * time.Millisecond

func makeFakeCluster(clock *fakeClock, numNodes, capacity int) []*fakeNode {
	fakes := []*fakeNode{}
	for i := 0; i < numNodes; i++ {
		fakes = append(fakes, newFakeNode(fmt.Sprintf("s%d", i), capacity, clock))
	}
	return fakes
}

func Test_RoundRobin_SlicesSumToBurst(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.MaxSize = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("slices never exceed the quantum and sum to the burst time", prop.ForAll(
		func(tasks []*domain.Task, numNodes, capacity int) string {
			clock := newFakeClock()
			fakes := makeFakeCluster(clock, numNodes, capacity)
			tm, err := makeDebugTaskManagerErr(domain.RoundRobin, clock, asNodes(fakes...), tasks...)
			if err != nil {
				return err.Error()
			}

			done := false
			for i := 0; i < 10000 && !done; i++ {
				done = tm.step() == Done
				for _, task := range tasks {
					if task.RemainingTime < 0 {
						return fmt.Sprintf("negative remaining time for %s", task)
					}
				}
				clock.Advance(DefaultQuantum)
				for _, n := range fakes {
					n.finishAll()
				}
			}
			if !done {
				return "run never finished: " + tm.String()
			}

			for _, task := range tasks {
				var sum time.Duration
				for _, n := range fakes {
					for _, d := range n.slicesOf(task.ID) {
						if d <= 0 || d > DefaultQuantum {
							return fmt.Sprintf("bad slice %s for %s", d, task)
						}
						sum += d
					}
				}
				if sum != task.BurstTime {
					return fmt.Sprintf("slices of %s sum to %s", task, sum)
				}
				if _, ok := tm.completions[task.ID]; !ok {
					return fmt.Sprintf("%s never completed", task)
				}
			}
			return ""
		},
		domain.GopterGenTasks(propUnit),
		gen.IntRange(1, 3),
		gen.IntRange(1, 3),
	))

	properties.TestingRun(t)
}

// With one single slot server and every task ready at once, the admission
// order is the ready queue order.
func checkAdmissionOrder(t *testing.T, policy domain.Policy, less func(a, b *domain.Task) bool) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.MaxSize = 30
	properties := gopter.NewProperties(parameters)

	properties.Property(fmt.Sprintf("%s admits in policy order", policy), prop.ForAll(
		func(tasks []*domain.Task) string {
			for _, task := range tasks {
				task.ArrivalTime = 0
			}
			clock := newFakeClock()
			n := newFakeNode("s1", 1, clock)
			tm, err := makeDebugTaskManagerErr(policy, clock, asNodes(n), tasks...)
			if err != nil {
				return err.Error()
			}
			for i := 0; i < len(tasks)+2; i++ {
				if tm.step() == Done {
					break
				}
				if n.GetStatus().CurrentLoad > n.capacity {
					return "server over capacity"
				}
				n.finishAll()
			}
			if tm.State() != Done {
				return "run never finished: " + tm.String()
			}

			expected := append([]*domain.Task{}, tasks...)
			sort.SliceStable(expected, func(i, j int) bool { return less(expected[i], expected[j]) })
			got := n.assignedIDs()
			for i, task := range expected {
				if got[i] != task.ID {
					return fmt.Sprintf("position %d: got %s, expected %s", i, got[i], task.ID)
				}
			}
			return ""
		},
		domain.GopterGenTasks(propUnit),
	))

	properties.TestingRun(t)
}

func Test_ShortestJobFirst_AdmissionOrder(t *testing.T) {
	checkAdmissionOrder(t, domain.ShortestJobFirst, func(a, b *domain.Task) bool { return a.BurstTime < b.BurstTime })
}

func Test_Priority_AdmissionOrder(t *testing.T) {
	checkAdmissionOrder(t, domain.StrictPriority, func(a, b *domain.Task) bool { return a.Priority < b.Priority })
}
