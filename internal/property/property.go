// Package property provides a small observable value container with
// explicit subscription lifetimes. Listeners must be unlinked by the
// caller that linked them; nothing is cleaned up automatically.
//
// Properties are not safe for concurrent use. The whole simulation is
// single-threaded and frame-driven, so no locking is done here.
package property

// Listener receives the property's new value after a change.
type Listener[T any] func(value T)

// Subscription is the handle returned by Link. Unlink detaches the
// listener; calling it more than once is harmless.
type Subscription struct {
	cancel func()
}

func (s *Subscription) Unlink() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type Property[T comparable] struct {
	value     T
	listeners map[int]Listener[T]
	nextID    int
}

func New[T comparable](initial T) *Property[T] {
	return &Property[T]{
		value:     initial,
		listeners: make(map[int]Listener[T]),
	}
}

func (p *Property[T]) Get() T {
	return p.value
}

// Set stores the value and notifies listeners. Setting an equal value
// is a no-op and does not notify.
func (p *Property[T]) Set(value T) {
	if value == p.value {
		return
	}
	p.value = value
	for _, fn := range p.listeners {
		fn(value)
	}
}

// Link registers a listener and invokes it immediately with the
// current value.
func (p *Property[T]) Link(fn Listener[T]) *Subscription {
	sub := p.LazyLink(fn)
	fn(p.value)
	return sub
}

// LazyLink registers a listener without the initial invocation.
func (p *Property[T]) LazyLink(fn Listener[T]) *Subscription {
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return &Subscription{cancel: func() { delete(p.listeners, id) }}
}

// ListenerCount reports how many listeners are attached.
func (p *Property[T]) ListenerCount() int {
	return len(p.listeners)
}
