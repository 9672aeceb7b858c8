// Package async provides tools for asynchronous callback processing using Goroutines
package async

import "time"

// A Runner spawns one goroutine per function and routes each result back to
// a callback run by the owner of the Runner. It builds on Mailbox to simplify
// the code that needs to be written.
//
// A worker pool that must never be blocked by a slow task runs each task
// through RunAsync and drains results from its own loop:
//
//	runner := NewRunner[Completion](capacity)
//	runner.RunAsync(func() Completion { return execute(slice) }, func(c Completion) {
//	  forward(c)
//	  load--
//	})
//
//	for runner.NumRunning() > 0 {
//	  runner.Wait(nil, pollInterval)
//	}
type Runner[T any] struct {
	bx *Mailbox[T]
}

func NewRunner[T any](buffer int) *Runner[T] {
	return &Runner[T]{
		bx: NewMailbox[T](buffer),
	}
}

// NumRunning returns the number of functions whose callbacks have not run yet.
func (r *Runner[T]) NumRunning() int {
	return r.bx.Count()
}

// RunAsync creates a go routine to run the specified function f.
// The callback, cb, is invoked with f's result by ProcessMessages or Wait.
func (r *Runner[T]) RunAsync(f func() T, cb ResponseHandler[T]) {
	send := r.bx.NewSender(cb)
	go func() {
		send(f())
	}()
}

// Invokes all callbacks of completed functions.
// Callbacks are ran synchronously and by the calling go routine
func (r *Runner[T]) ProcessMessages() int {
	return r.bx.ProcessMessages()
}

// Wait blocks for at most timeout, or until wake is signaled, for a result
// and invokes the callbacks of all completed functions.
func (r *Runner[T]) Wait(wake <-chan struct{}, timeout time.Duration) int {
	return r.bx.Wait(wake, timeout)
}
