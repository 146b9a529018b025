package longtask

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type completedEntry[V any] struct {
	at    time.Time
	value V
}

// Pool tracks long-running tasks for a polling interface.
//
// A task is inserted with its initial progress and yields a Handle plus a
// public identifier. The handle advances progress and finally completes the
// task; the identifier is what clients poll with. Completed results are
// handed out once and then forgotten.
//
// Pool is not safe for concurrent use. Callers serialize access themselves,
// typically with a single mutex around the whole pool (see Guarded).
type Pool[V any, P Progressible[P]] struct {
	tag       *poolTag
	pending   map[uuid.UUID]P
	completed map[uuid.UUID]completedEntry[V]
	lifespan  time.Duration
	now       func() time.Time
	log       Logger
}

// NewPool creates an empty pool.
func NewPool[V any, P Progressible[P]](opts ...Option) *Pool[V, P] {
	o := buildOptions(opts)
	return &Pool[V, P]{
		tag:       &poolTag{},
		pending:   make(map[uuid.UUID]P),
		completed: make(map[uuid.UUID]completedEntry[V]),
		lifespan:  o.lifespan,
		now:       o.now,
		log:       o.log,
	}
}

// Lifespan returns the configured retention for completed tasks; zero means forever.
func (p *Pool[V, P]) Lifespan() time.Duration { return p.lifespan }

// Insert registers a new pending task and returns its handle and identifier.
func (p *Pool[V, P]) Insert(initial P) (*Handle, uuid.UUID) {
	id := uuid.New()
	p.pending[id] = initial
	return &Handle{id: id, owner: p.tag}, id
}

// Advance moves the progress of the handle's task forward by one step.
func (p *Pool[V, P]) Advance(h *Handle) {
	p.check(h)
	cur, ok := p.pending[h.id]
	if !ok {
		panic(fmt.Errorf("%w: id=%s", ErrPendingMissing, h.id))
	}
	p.pending[h.id] = cur.Advance()
}

// Complete finishes the handle's task with value and consumes the handle.
// Completed tasks whose age reached the lifespan are purged first.
func (p *Pool[V, P]) Complete(h *Handle, value V) {
	p.check(h)
	if _, ok := p.pending[h.id]; !ok {
		panic(fmt.Errorf("%w: id=%s", ErrPendingMissing, h.id))
	}
	delete(p.pending, h.id)
	h.consumed = true

	now := p.now()
	p.purgeExpired(now)
	p.completed[h.id] = completedEntry[V]{at: now, value: value}
}

// Abandon drops the handle's pending task without producing a result and
// consumes the handle. The identifier becomes unknown to Retrieve.
func (p *Pool[V, P]) Abandon(h *Handle) {
	p.check(h)
	if _, ok := p.pending[h.id]; !ok {
		panic(fmt.Errorf("%w: id=%s", ErrPendingMissing, h.id))
	}
	delete(p.pending, h.id)
	h.consumed = true
}

// Retrieve returns the state of the task with the given identifier.
// A pending task yields a progress snapshot and stays registered. A completed
// task is removed and its result returned, so a result is delivered at most
// once. Unknown, already retrieved and purged identifiers all report false.
func (p *Pool[V, P]) Retrieve(id uuid.UUID) (TaskState[V, P], bool) {
	if cur, ok := p.pending[id]; ok {
		return Pending[V, P](cur.Clone()), true
	}
	if e, ok := p.completed[id]; ok {
		delete(p.completed, id)
		return Done[V, P](e.value), true
	}
	return TaskState[V, P]{}, false
}

// Len returns the number of pending and completed-but-unretrieved tasks.
func (p *Pool[V, P]) Len() (pending, completed int) {
	return len(p.pending), len(p.completed)
}

func (p *Pool[V, P]) check(h *Handle) {
	if h == nil || h.owner != p.tag {
		panic(ErrForeignHandle)
	}
	if h.consumed {
		panic(fmt.Errorf("%w: id=%s", ErrHandleConsumed, h.id))
	}
}

func (p *Pool[V, P]) purgeExpired(now time.Time) {
	if p.lifespan <= 0 {
		return
	}
	purged := 0
	for id, e := range p.completed {
		if now.Sub(e.at) >= p.lifespan {
			delete(p.completed, id)
			purged++
		}
	}
	if purged > 0 {
		p.log.Debugf("purged expired tasks: count=%d lifespan=%s", purged, p.lifespan)
	}
}
