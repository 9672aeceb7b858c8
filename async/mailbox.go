package async

import "time"

// A Mailbox tracks in-flight asynchronous work and invokes the callback
// associated with each piece of work once its result arrives.
//
// Every goroutine started against a Mailbox reports on the same channel,
// which is owned by the Mailbox. Results are only consumed, and callbacks
// only run, on the goroutine calling ProcessMessages or Wait. This keeps all
// callbacks in the owner's context and serialized, one at a time.
//
// A Mailbox is not a concurrent structure: apart from the senders it hands
// out it should only ever be accessed from a single go routine.
type Mailbox[T any] struct {
	resultCh  chan message[T]
	callbacks map[uint64]ResponseHandler[T]
	nextID    uint64
}

// The function type of the callback invoked with a completed value.
type ResponseHandler[T any] func(T)

type message[T any] struct {
	id  uint64
	val T
}

// NewMailbox creates a Mailbox whose result channel holds up to buffer
// undelivered results before senders block.
func NewMailbox[T any](buffer int) *Mailbox[T] {
	if buffer < 0 {
		buffer = 0
	}
	return &Mailbox[T]{
		resultCh:  make(chan message[T], buffer),
		callbacks: make(map[uint64]ResponseHandler[T]),
	}
}

// Count returns the number of registered callbacks still waiting for a value.
func (bx *Mailbox[T]) Count() int {
	return len(bx.callbacks)
}

// NewSender registers cb and returns the function the async side calls,
// exactly once, to deliver its value.
func (bx *Mailbox[T]) NewSender(cb ResponseHandler[T]) func(T) {
	id := bx.nextID
	bx.nextID++
	bx.callbacks[id] = cb
	ch := bx.resultCh
	return func(val T) {
		ch <- message[T]{id: id, val: val}
	}
}

// ProcessMessages invokes the callback of every value already delivered
// without blocking. Returns the number of callbacks invoked.
func (bx *Mailbox[T]) ProcessMessages() int {
	processed := 0
	for {
		select {
		case msg := <-bx.resultCh:
			bx.deliver(msg)
			processed++
		default:
			return processed
		}
	}
}

// Wait blocks until a value is delivered, wake is signaled, or timeout
// elapses, then processes every delivered value. Returns the number of
// callbacks invoked. A nil wake channel is never signaled.
func (bx *Mailbox[T]) Wait(wake <-chan struct{}, timeout time.Duration) int {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-bx.resultCh:
		bx.deliver(msg)
		return 1 + bx.ProcessMessages()
	case <-wake:
	case <-timer.C:
	}
	return bx.ProcessMessages()
}

func (bx *Mailbox[T]) deliver(msg message[T]) {
	cb, ok := bx.callbacks[msg.id]
	if !ok {
		return
	}
	delete(bx.callbacks, msg.id)
	cb(msg.val)
}
