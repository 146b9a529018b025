package hctx

import (
	"context"
	"sync/atomic"
)

// State holds per-execution hooks a handler can call back into while it runs.
type State struct {
	advance func()
	steps   atomic.Int64
}

// New creates a handler state that invokes advance on every reported step.
// A nil advance only counts steps.
func New(advance func()) *State { return &State{advance: advance} }

// Advance records one step of progress.
func (s *State) Advance() {
	s.steps.Add(1)
	if s.advance != nil {
		s.advance()
	}
}

// Steps returns how many steps were reported so far.
func (s *State) Steps() int64 { return s.steps.Load() }

type ctxKey struct{}

// WithState returns a child context carrying the given handler state.
func WithState(parent context.Context, s *State) context.Context {
	return context.WithValue(parent, ctxKey{}, s)
}

// From extracts the handler state from context if present.
func From(ctx context.Context) (*State, bool) {
	v := ctx.Value(ctxKey{})
	if v == nil {
		return nil, false
	}
	st, ok := v.(*State)
	return st, ok
}
