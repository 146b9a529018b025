package longtask

import (
	"context"
	"errors"
	"sync"
	"time"

	rtm "github.com/UniQw/longtask/internal/runtime"
	"github.com/UniQw/longtask/internal/notify"
	"github.com/UniQw/longtask/internal/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultNamespace names the notification channel when ServerConfig.Namespace is empty.
const DefaultNamespace = "default"

// ServerConfig defines the configuration for a longtask server.
type ServerConfig struct {
	// Concurrency is the number of worker goroutines.
	Concurrency int
	// QueueSize bounds the number of submitted jobs waiting for a worker.
	QueueSize int
	// Lifespan is how long a finished, unretrieved result is kept. Zero keeps it forever.
	Lifespan time.Duration
	// Logger is the logger used for server events.
	Logger Logger
	// Redis enables completion announcements when set.
	Redis redis.UniversalClient
	// Namespace scopes the announcement channel.
	Namespace string
}

// TaskStatus is the state a Server reports for a task.
type TaskStatus = TaskState[Outcome, Counter]

// Server runs jobs in the background and tracks them in a Pool for polling.
type Server struct {
	tasks   *Guarded[Outcome, Counter]
	rt      *rtm.Runtime
	mux     *Mux
	pub     *notify.Publisher
	encoder Encoder
	mu      sync.Mutex
	started bool
	log     Logger
}

// NewServer creates a new longtask server.
func NewServer(cfg ServerConfig, mux *Mux) *Server {
	l := cfg.Logger
	if l == nil {
		l = NewFmtLogger()
	}
	pool := NewPool[Outcome, Counter](WithLifespan(cfg.Lifespan), WithLogger(l))

	var pub *notify.Publisher
	if cfg.Redis != nil {
		ns := cfg.Namespace
		if ns == "" {
			ns = DefaultNamespace
		}
		pub = notify.NewPublisher(cfg.Redis, ns)
	}

	rtc := rtm.Config{
		Concurrency: cfg.Concurrency,
		QueueSize:   cfg.QueueSize,
		Logger:      rtLogger{Logger: l},
	}
	return &Server{
		tasks:   NewGuarded(pool),
		rt:      rtm.New(rtc, mux.exec),
		mux:     mux,
		pub:     pub,
		encoder: &JSONEncoder{},
		log:     l,
	}
}

// Start launches the server workers.
// It is idempotent and non-blocking.
func (s *Server) Start() {
	s.mu.Lock()
	if s.started {
		s.log.Warnf("server already started; ignoring Start()")
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()
	s.log.Infof("starting server: concurrency=%d kinds=%v", s.rt.CfgConcurrency(), s.mux.Kinds())
	s.rt.Start()
}

// Stop stops accepting jobs and waits for running and queued jobs to finish.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.started {
		s.log.Warnf("server not started; ignoring Stop()")
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()
	s.log.Infof("stopping server")
	s.rt.Stop()
}

// Submit encodes payload and starts a job of the given kind.
// It returns the identifier to poll with Status.
func (s *Server) Submit(kind string, payload any) (uuid.UUID, error) {
	data, err := s.encoder.Encode(payload)
	if err != nil {
		return uuid.Nil, err
	}
	return s.SubmitRaw(kind, data)
}

// SubmitRaw starts a job with an already encoded payload.
func (s *Server) SubmitRaw(kind string, payload []byte) (uuid.UUID, error) {
	h, ok := s.mux.handlers[kind]
	if !ok {
		return uuid.Nil, ErrUnknownKind
	}

	handle, id := s.tasks.Insert(Counter{Total: h.total})
	job := worker.Job{
		ID:      id.String(),
		Kind:    kind,
		Payload: payload,
		Advance: func() { s.tasks.Advance(handle) },
		Finish:  func(r worker.Result) { s.finish(handle, id, kind, r) },
	}
	if err := s.rt.Submit(job); err != nil {
		s.tasks.Abandon(handle)
		switch {
		case errors.Is(err, rtm.ErrNotRunning):
			return uuid.Nil, ErrServerStopped
		case errors.Is(err, rtm.ErrFull):
			return uuid.Nil, ErrQueueFull
		default:
			return uuid.Nil, err
		}
	}
	s.log.Debugf("submitted: id=%s kind=%s", id, kind)
	return id, nil
}

// Status returns the state of a task. A finished task is reported once and
// then forgotten; unknown, collected and expired identifiers report false.
func (s *Server) Status(id uuid.UUID) (TaskStatus, bool) {
	return s.tasks.Retrieve(id)
}

// Stats returns the number of pending and finished-but-uncollected tasks.
func (s *Server) Stats() (pending, completed int) {
	return s.tasks.Len()
}

func (s *Server) finish(handle *Handle, id uuid.UUID, kind string, r worker.Result) {
	out := Outcome{Value: r.Value}
	if r.Err != nil {
		out = Outcome{Error: r.Err.Error()}
	}
	s.tasks.Complete(handle, out)

	if s.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev := notify.Event{
		ID:          id.String(),
		Kind:        kind,
		State:       StateDone.String(),
		Failed:      out.Failed(),
		CompletedAt: time.Now().UnixMilli(),
	}
	if _, err := s.pub.Publish(ctx, ev); err != nil {
		s.log.Warnf("notify failed: id=%s kind=%s err=%v", id, kind, err)
	}
}

// rtLogger adapts the public Logger to the internal runtime logger interface.
type rtLogger struct{ Logger }
