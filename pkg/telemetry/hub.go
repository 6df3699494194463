package telemetry

import (
	"sync"

	"github.com/museun/too-sub001/pkg/ui/runtime"
)

// Hub fans frame stats out to any number of subscribers. It is a
// runtime.FrameObserver, so several consumers can share the runner's
// single observer slot.
type Hub struct {
	mu          sync.RWMutex
	observers   []runtime.FrameObserver
	subscribers map[chan runtime.FrameStats]struct{}
	closed      bool
}

// NewHub constructs a hub that also forwards to observers synchronously.
func NewHub(observers ...runtime.FrameObserver) *Hub {
	return &Hub{
		observers:   observers,
		subscribers: make(map[chan runtime.FrameStats]struct{}),
	}
}

// ObserveFrame publishes s.
func (h *Hub) ObserveFrame(s runtime.FrameStats) {
	h.Publish(s)
}

// Publish notifies observers and subscribers. Non-blocking; drops if a
// subscriber's buffer is full.
func (h *Hub) Publish(s runtime.FrameStats) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for _, o := range h.observers {
		o.ObserveFrame(s)
	}
	for ch := range h.subscribers {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe returns a channel that will receive future frames and a cleanup func.
func (h *Hub) Subscribe() (<-chan runtime.FrameStats, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		empty := make(chan runtime.FrameStats)
		close(empty)
		return empty, func() {}
	}
	ch := make(chan runtime.FrameStats, 64)
	h.subscribers[ch] = struct{}{}
	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// Close unsubscribes all listeners and prevents future publications.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, ch)
	}
}
