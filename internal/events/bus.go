// Package events defines the simulation's typed event stream: every
// observable outcome (damage, death, status changes, crafting results)
// is published here exactly once by the system that caused it.
//
// Core systems are publishers only. Subscribers are presentation-side
// (message logs, websocket streaming, tests); nothing inside the
// simulation reacts to its own events, which keeps synchronous dispatch
// free of re-entrancy.
package events

// Handler receives published events.
type Handler func(Event)

// Bus is a synchronous publish/subscribe channel keyed by event type.
// Publish invokes every matching subscriber before returning; there is
// no queue and no back-pressure. A Bus is not safe for concurrent use:
// each game session runs single-threaded and owns its own bus.
type Bus struct {
	subscribers map[Type][]Handler
	all         []Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.subscribers[t] = append(b.subscribers[t], h)
}

// SubscribeAll registers a handler for every event type. Used by the
// presentation layer to stream the full event feed.
func (b *Bus) SubscribeAll(h Handler) {
	b.all = append(b.all, h)
}

// Publish synchronously delivers the event to all-type subscribers and
// then to subscribers of the event's type, in registration order.
func (b *Bus) Publish(e Event) {
	if e == nil {
		return
	}
	for _, h := range b.all {
		h(e)
	}
	for _, h := range b.subscribers[e.Type()] {
		h(e)
	}
}

// Clear drops every subscriber.
func (b *Bus) Clear() {
	b.subscribers = make(map[Type][]Handler)
	b.all = nil
}
