package event

import "sync"

// Handler receives a delivered event.
type Handler func(Event)

// Bus is an in-process publish/subscribe hub. Handlers are invoked
// synchronously, in subscription order, on the goroutine that calls Emit.
// The modeline engine drains all events on the host's UI goroutine;
// background pollers hand their events to the host rather than calling
// Emit directly, so handlers never race with rendering.
type Bus struct {
	mu   sync.RWMutex
	subs map[Type][]Handler
	all  []Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Type][]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = append(b.subs[t], h)
}

// SubscribeAll registers a handler invoked for every event regardless of
// type. The segment cache uses this so that trigger sets consulted at
// delivery time always reflect the latest segment declarations.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Emit delivers ev to every matching handler.
func (b *Bus) Emit(ev Event) {
	b.mu.RLock()
	typed := b.subs[ev.Type]
	all := b.all
	b.mu.RUnlock()

	for _, h := range all {
		h(ev)
	}
	for _, h := range typed {
		h(ev)
	}
}
