package longtask

import "time"

type options struct {
	lifespan time.Duration
	now      func() time.Time
	log      Logger
}

// Option configures a Pool at construction time.
type Option func(*options)

// WithLifespan sets how long a completed task stays retrievable.
// Expired tasks are purged when another task completes, never on a timer.
// Zero or negative means completed tasks never expire (default).
func WithLifespan(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.lifespan = d
	}
}

// WithClock replaces time.Now as the source of completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for purge reports.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, log: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
