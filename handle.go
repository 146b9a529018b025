package longtask

import "github.com/google/uuid"

// poolTag identifies the pool that issued a handle. It has a non-zero size
// so distinct allocations never share an address.
type poolTag struct{ _ byte }

// Handle is the single write capability for one task. It is only ever used
// by pointer, exposes nothing, and is consumed by Pool.Complete; every later
// use panics with ErrHandleConsumed.
type Handle struct {
	id       uuid.UUID
	owner    *poolTag
	consumed bool
}

// Consumed reports whether the handle has already completed its task.
func (h *Handle) Consumed() bool { return h.consumed }
