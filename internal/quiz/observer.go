package quiz

import (
	"github.com/charmbracelet/log"
)

// Subscription is a handle to a registered listener. Cancel removes the
// listener; cancelling twice is harmless.
type Subscription struct {
	id     int
	cancel func(id int)
}

// Cancel unregisters the listener associated with this subscription.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel(s.id)
	}
}

// notifier is an observer list with typed subscribe/unsubscribe and a
// fault-isolating dispatch loop: a panicking listener is logged and skipped,
// it never blocks other listeners or the caller. Listeners fire synchronously
// in registration order.
type notifier[T any] struct {
	logger   *log.Logger
	nextID   int
	handlers []handler[T]
}

type handler[T any] struct {
	id int
	fn func(T)
}

func newNotifier[T any](logger *log.Logger) *notifier[T] {
	return &notifier[T]{logger: logger}
}

// subscribe registers fn and returns a handle that removes it again.
func (n *notifier[T]) subscribe(fn func(T)) Subscription {
	n.nextID++
	id := n.nextID
	n.handlers = append(n.handlers, handler[T]{id: id, fn: fn})
	return Subscription{id: id, cancel: n.unsubscribe}
}

func (n *notifier[T]) unsubscribe(id int) {
	for i, h := range n.handlers {
		if h.id == id {
			n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
			return
		}
	}
}

// notify calls every listener in registration order, isolating panics.
func (n *notifier[T]) notify(v T) {
	for _, h := range n.handlers {
		n.dispatch(h, v)
	}
}

func (n *notifier[T]) dispatch(h handler[T], v T) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("quiz: listener panicked", "listener", h.id, "panic", r)
		}
	}()
	h.fn(v)
}

func (n *notifier[T]) len() int {
	return len(n.handlers)
}
