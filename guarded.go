package longtask

import (
	"sync"

	"github.com/google/uuid"
)

// Guarded serializes every operation on a Pool with one mutex.
// Operations are in-memory map updates, so the lock is held only briefly.
type Guarded[V any, P Progressible[P]] struct {
	mu   sync.Mutex
	pool *Pool[V, P]
}

// NewGuarded wraps pool. The pool must not be used directly afterwards.
func NewGuarded[V any, P Progressible[P]](pool *Pool[V, P]) *Guarded[V, P] {
	return &Guarded[V, P]{pool: pool}
}

func (g *Guarded[V, P]) Insert(initial P) (*Handle, uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pool.Insert(initial)
}

func (g *Guarded[V, P]) Advance(h *Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pool.Advance(h)
}

func (g *Guarded[V, P]) Complete(h *Handle, value V) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pool.Complete(h, value)
}

func (g *Guarded[V, P]) Abandon(h *Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pool.Abandon(h)
}

func (g *Guarded[V, P]) Retrieve(id uuid.UUID) (TaskState[V, P], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pool.Retrieve(id)
}

func (g *Guarded[V, P]) Len() (pending, completed int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pool.Len()
}
