package engine

import (
	"sync"
	"wheel_backend/internal/model"
)

// hub рассылка кадров подписчикам. Медленный подписчик теряет кадры, но не тормозит колесо
type hub struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan model.Frame
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan model.Frame)}
}

func (h *hub) subscribe(buffer int) (<-chan model.Frame, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan model.Frame, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.next
	h.next++
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
}

func (h *hub) publish(f model.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- f:
		default:
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
