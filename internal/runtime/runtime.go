package runtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/UniQw/longtask/internal/worker"
)

// ErrNotRunning is returned by Submit before Start or after Stop.
var ErrNotRunning = errors.New("runtime not running")

// ErrFull is returned by Submit when the job queue has no free slot.
var ErrFull = errors.New("job queue full")

// Logger is a minimal logging interface used internally by the runtime.
// It mirrors the public logger in the root package to avoid an import cycle.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// DefaultQueueSize is used when Config.QueueSize is not positive.
const DefaultQueueSize = 128

type Config struct {
	Concurrency int
	QueueSize   int
	Logger      Logger
}

// Runtime runs submitted jobs on a fixed set of worker goroutines.
// Jobs are never canceled: Stop stops intake and waits until every queued
// job has finished.
type Runtime struct {
	cfg     Config
	exec    worker.Executor
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	jobs    chan worker.Job
	ctx     context.Context
	cancel  context.CancelFunc
	log     Logger
}

// New creates a runtime that executes jobs with exec.
func New(cfg Config, exec worker.Executor) *Runtime {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	lg := cfg.Logger
	if lg == nil {
		lg = noopLogger{}
	}
	return &Runtime{cfg: cfg, exec: exec, log: lg}
}

// Start launches the workers. It is idempotent.
func (rt *Runtime) Start() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.started {
		rt.log.Warnf("runtime already started; ignoring Start()")
		return
	}
	rt.started = true
	rt.jobs = make(chan worker.Job, rt.cfg.QueueSize)
	rt.ctx, rt.cancel = context.WithCancel(context.Background())
	rt.log.Infof("runtime starting: concurrency=%d queue=%d", rt.cfg.Concurrency, rt.cfg.QueueSize)

	for i := 0; i < rt.cfg.Concurrency; i++ {
		rt.wg.Add(1)
		go func(jobs <-chan worker.Job) {
			defer rt.wg.Done()
			rt.workerLoop(jobs)
		}(rt.jobs)
	}
}

// Stop closes intake and waits for queued and running jobs to finish.
func (rt *Runtime) Stop() {
	rt.mu.Lock()
	if !rt.started {
		rt.log.Warnf("runtime not started; ignoring Stop()")
		rt.mu.Unlock()
		return
	}
	rt.started = false
	close(rt.jobs)
	cancel := rt.cancel
	rt.mu.Unlock()
	rt.log.Infof("runtime stopping")

	rt.wg.Wait()
	cancel()
}

// Submit queues job without blocking.
func (rt *Runtime) Submit(job worker.Job) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if !rt.started {
		return ErrNotRunning
	}
	select {
	case rt.jobs <- job:
		return nil
	default:
		return ErrFull
	}
}

func (rt *Runtime) workerLoop(jobs <-chan worker.Job) {
	for job := range jobs {
		start := time.Now()
		res := worker.Run(rt.ctx, rt.exec, job)
		if res.Err != nil {
			rt.log.Warnf("job failed: id=%s kind=%s dur=%s err=%v", job.ID, job.Kind, time.Since(start), res.Err)
			continue
		}
		rt.log.Debugf("processed: id=%s kind=%s steps=%d dur=%s", job.ID, job.Kind, res.Steps, time.Since(start))
	}
}

// CfgConcurrency exposes configured worker concurrency.
func (rt *Runtime) CfgConcurrency() int { return rt.cfg.Concurrency }
