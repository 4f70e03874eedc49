package event

// Handler processes specific event types
type Handler interface {
	// HandleEvent processes a single event on the tick goroutine
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// Router dispatches queued events to registered handlers
// Handlers run in registration order; all handlers of one event run before the next event
type Router struct {
	handlers map[EventType][]Handler
	queue    *EventQueue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *EventQueue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes all pending events in FIFO order and returns how many were consumed
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
