package node

import (
	"container/list"
	"sync"

	"hsring/wire"
)

// inbox is the unbounded, single-consumer envelope queue every node reads
// from. Multiple listener goroutines push concurrently; exactly one
// dispatcher goroutine pops, strictly in arrival order.
type inbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  *list.List
	closed bool
}

func newInbox() *inbox {
	var ib = &inbox{items: list.New()}
	ib.cond = sync.NewCond(&ib.mu)
	return ib
}

// push enqueues an envelope. It never blocks.
func (ib *inbox) push(e wire.Envelope) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.closed {
		return
	}
	ib.items.PushBack(e)
	ib.cond.Signal()
}

// pop blocks until an envelope is available or the inbox is closed. ok is
// false only once the inbox has been closed and drained.
func (ib *inbox) pop() (wire.Envelope, bool) {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	for ib.items.Len() == 0 && !ib.closed {
		ib.cond.Wait()
	}

	if ib.items.Len() == 0 {
		return wire.Envelope{}, false
	}

	var front = ib.items.Front()
	ib.items.Remove(front)
	return front.Value.(wire.Envelope), true
}

// close stops the queue. Any goroutine blocked in pop wakes and returns
// ok=false; any further push is a silent no-op. Envelopes already queued
// are still returned by pop until drained; it is the dispatcher's own
// completion-flag check that stops it with envelopes still queued.
func (ib *inbox) close() {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.closed {
		return
	}
	ib.closed = true
	ib.cond.Broadcast()
}
