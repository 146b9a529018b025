package longtask

import (
	"context"

	"github.com/UniQw/longtask/internal/hctx"
)

// Step reports one step of progress for the task whose handler runs with ctx.
// It is a no-op if the context is not provided by the longtask runtime.
// Calling it after the handler has returned is a contract violation and panics.
func Step(ctx context.Context) {
	st, ok := hctx.From(ctx)
	if !ok || st == nil {
		return
	}
	st.Advance()
}
