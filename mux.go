package longtask

import (
	"context"
	"sort"
)

// HandlerFunc performs one job. The returned value becomes the task result;
// a returned error is recorded as a failed Outcome.
type HandlerFunc func(ctx context.Context, payload []byte) (any, error)

// Middleware is a function that wraps a HandlerFunc to provide cross-cutting concerns.
type Middleware func(HandlerFunc) HandlerFunc

type handler struct {
	exec  HandlerFunc
	total int
}

// Mux routes jobs to their respective handlers based on job kind.
// Register every kind before the server starts.
type Mux struct {
	handlers    map[string]handler
	encoder     Encoder
	middlewares []Middleware
}

// NewMux creates a new job Mux.
func NewMux() *Mux {
	return &Mux{
		handlers:    make(map[string]handler),
		encoder:     &JSONEncoder{},
		middlewares: []Middleware{},
	}
}

// Handle registers a handler for a job kind whose progress is counted in
// total steps. The handler reports each step with Step.
func (m *Mux) Handle(kind string, total int, fn HandlerFunc) {
	if total < 0 {
		total = 0
	}
	m.handlers[kind] = handler{
		exec:  fn,
		total: total,
	}
}

// Kinds returns the registered job kinds in sorted order.
func (m *Mux) Kinds() []string {
	out := make([]string, 0, len(m.handlers))
	for k := range m.handlers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Use adds middleware(s) to the mux. Middlewares are executed in the order they are added.
func (m *Mux) Use(mw Middleware) {
	m.middlewares = append(m.middlewares, mw)
}

func (m *Mux) wrapHandler(h HandlerFunc) HandlerFunc {
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		h = m.middlewares[i](h)
	}
	return h
}

// exec runs the handler for kind and encodes its value.
func (m *Mux) exec(ctx context.Context, kind string, payload []byte) ([]byte, error) {
	h, ok := m.handlers[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	v, err := m.wrapHandler(h.exec)(ctx, payload)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return m.encoder.Encode(v)
}
