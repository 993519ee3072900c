// Package broadcast provides a small fan-out hub for pushing full-replace
// snapshots to subscribers. Consumers must treat every delivery as a complete
// view, not a delta.
package broadcast

import "sync"

// Hub fans a value out to every subscriber channel. Sends never block: when a
// subscriber's buffer is full the stale value is dropped in favour of the new
// one.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[chan T]struct{}
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[chan T]struct{})}
}

// Subscribe registers a new subscriber. The channel is returned writable so
// the owning store can prime it with an initial snapshot; the cancel func
// must be called to avoid leaks and closes the channel.
func (h *Hub[T]) Subscribe(buffer int) (chan T, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan T, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast delivers v to all current subscribers, replacing a stale queued
// value when a subscriber is slow.
func (h *Hub[T]) Broadcast(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

// Len reports the current subscriber count.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
