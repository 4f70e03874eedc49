package event

import (
	"sync/atomic"

	"github.com/lixenwraith/inkbeat/parameter"
)

// EventQueue is a lock-free MPSC ring buffer for game events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (file watcher, tick loop)
//   - Consume: Single consumer (tick loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full and counted in Dropped; a long
// stall followed by catch-up emits one EventBeat per crossed beat in a single
// tick, which is the usual way a burst outgrows the ring
type EventQueue struct {
	events    [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
	dropped   atomic.Uint64
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds an event, overwriting the oldest unread one when full
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventBufferMask

			eq.events[idx] = ev
			eq.published[idx].Store(true) // MUST be after write

			currentHead := eq.head.Load()
			if nextTail-currentHead > parameter.EventQueueSize {
				if eq.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueSize) {
					eq.dropped.Add(nextTail - parameter.EventQueueSize - currentHead)
				}
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
func (eq *EventQueue) Consume() []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > parameter.EventQueueSize {
			available = parameter.EventQueueSize
			currentHead = currentTail - parameter.EventQueueSize
		}

		result := make([]GameEvent, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & parameter.EventBufferMask
			if !eq.published[idx].Load() {
				break // Writer incomplete
			}
			result = append(result, eq.events[idx])
			eq.published[idx].Store(false)
		}

		if eq.head.CompareAndSwap(currentHead, currentHead+uint64(len(result))) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending event count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	if diff := tail - head; diff < parameter.EventQueueSize {
		return int(diff)
	}
	return parameter.EventQueueSize
}

// Dropped returns how many unread events were overwritten
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
