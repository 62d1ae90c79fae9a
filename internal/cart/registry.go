package cart

import "sync"

// Registry hands out one cart per session id. Carts are created lazily on
// first access and dropped on logout.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

func (r *Registry) Get(sessionID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[sessionID]
	if !ok {
		c = New()
		r.carts[sessionID] = c
	}
	return c
}

// Drop resets and forgets the session's cart. Resetting first means a
// handler still holding the pointer sees an empty cart, not stale lines.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[sessionID]; ok {
		c.Reset()
		delete(r.carts, sessionID)
	}
}
