package worker

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/UniQw/longtask/internal/hctx"
)

// Executor runs the handler registered for kind and returns its encoded value.
type Executor func(ctx context.Context, kind string, payload []byte) ([]byte, error)

// Job is one unit of tracked work handed to a worker.
type Job struct {
	// ID is the public task identifier, used for logging only.
	ID string
	// Kind selects the handler.
	Kind string
	// Payload is the raw job input.
	Payload []byte
	// Advance is invoked for every step the handler reports.
	Advance func()
	// Finish receives the outcome exactly once after the handler returns.
	Finish func(Result)
}

// Result is what a single execution produced.
type Result struct {
	Value []byte
	Err   error
	Steps int64
}

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("handler panic: %v", e.Value) }

// Run executes job with exec, recovering handler panics, and passes the
// result to job.Finish.
func Run(ctx context.Context, exec Executor, job Job) Result {
	st := hctx.New(job.Advance)
	res := call(hctx.WithState(ctx, st), exec, job)
	res.Steps = st.Steps()
	if job.Finish != nil {
		job.Finish(res)
	}
	return res
}

func call(ctx context.Context, exec Executor, job Job) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	v, err := exec(ctx, job.Kind, job.Payload)
	return Result{Value: v, Err: err}
}
