package ws

import "sync"

// Closer is the piece of a live call the hub needs: a way to hang it up.
type Closer interface {
	Close()
}

// Hub maps streamSid to the live telephony leg of each call so that code
// outside the per-call goroutines (e.g. an operator hangup endpoint) can
// reach it.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Closer
}

func NewHub() *Hub {
	return &Hub{conns: map[string]Closer{}}
}

func (h *Hub) Add(streamSid string, c Closer) {
	h.mu.Lock()
	h.conns[streamSid] = c
	h.mu.Unlock()
}

func (h *Hub) Get(streamSid string) (Closer, bool) {
	h.mu.RLock()
	c, ok := h.conns[streamSid]
	h.mu.RUnlock()
	return c, ok
}

func (h *Hub) Remove(streamSid string) {
	h.mu.Lock()
	delete(h.conns, streamSid)
	h.mu.Unlock()
}
