// Package runner executes admitted task slices. Each slice runs in its own
// goroutine, isolated from the server loop that launched it, and produces
// exactly one domain.Completion.
package runner
