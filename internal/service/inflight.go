package service

import "sync"

// InFlightGuard admits at most one mutating action per key at a time.
type InFlightGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewInFlightGuard constructs an empty guard.
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{keys: make(map[string]struct{})}
}

// Acquire claims key. When ok is false another action holds it and release
// is a no-op.
func (g *InFlightGuard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.keys[key]; busy {
		return func() {}, false
	}
	g.keys[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, true
}

// Busy reports whether key is currently held.
func (g *InFlightGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.keys[key]
	return busy
}
