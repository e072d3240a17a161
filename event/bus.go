// Package event provides the in-process named-event bus that carries
// input events between the host's input layer, the device manager and
// the key mapper.
//
// Events are addressed by plain string names. By convention a button
// press is published under the bare input name ("space") and the
// matching release under the name with the "-up" suffix ("space-up").
package event

import "sync"

const releaseSuffix = "-up"

// ReleaseName returns the event name published when input is released.
func ReleaseName(input string) string { return input + releaseSuffix }

// Handler receives the arguments passed to Publish.
type Handler func(args ...any)

// Bus is a minimal named-event dispatcher. Handlers run synchronously
// on the publishing goroutine, in subscription order.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]subscription
	next int
}

type subscription struct {
	id int
	fn Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscription identifies a single registered handler so it can be
// cancelled without affecting other handlers on the same name.
type Subscription struct {
	bus  *Bus
	name string
	id   int
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(name string, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.subs[name] = append(b.subs[name], subscription{id: b.next, fn: fn})
	return Subscription{bus: b, name: name, id: b.next}
}

// Cancel removes the handler. Cancelling twice is a no-op.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	list := s.bus.subs[s.name]
	for i, sub := range list {
		if sub.id == s.id {
			s.bus.subs[s.name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(s.bus.subs[s.name]) == 0 {
		delete(s.bus.subs, s.name)
	}
}

// Off removes every handler registered for the named event.
func (b *Bus) Off(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, name)
}

// Publish invokes all handlers registered for the named event. The
// handler list is snapshotted first, so handlers may subscribe or
// cancel (including themselves) while the event is being delivered.
func (b *Bus) Publish(name string, args ...any) {
	b.mu.Lock()
	list := b.subs[name]
	snapshot := make([]subscription, len(list))
	copy(snapshot, list)
	b.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(args...)
	}
}

// HandlerCount reports how many handlers are registered for the named
// event. Intended for tests and teardown assertions.
func (b *Bus) HandlerCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[name])
}
