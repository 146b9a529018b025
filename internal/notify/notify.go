// Package notify announces task completions on a Redis pub/sub channel.
// Only announcements travel through Redis; task state itself stays in memory.
package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/UniQw/longtask/internal/keys"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Event is published once per completed task.
type Event struct {
	ID          string `json:"id"`
	Kind        string `json:"kind,omitempty"`
	State       string `json:"state"`
	Failed      bool   `json:"failed,omitempty"`
	CompletedAt int64  `json:"completed_at"`
}

// Publisher writes events to the done channel of one namespace.
type Publisher struct {
	rdb     redis.UniversalClient
	channel string
}

// NewPublisher creates a publisher for namespace ns.
func NewPublisher(rdb redis.UniversalClient, ns string) *Publisher {
	return &Publisher{rdb: rdb, channel: keys.For(ns).Done}
}

// Channel returns the Redis channel events are published on.
func (p *Publisher) Channel() string { return p.channel }

// Publish announces ev. It returns the number of subscribers that received it.
func (p *Publisher) Publish(ctx context.Context, ev Event) (int64, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return 0, err
	}
	return p.rdb.Publish(ctx, p.channel, raw).Result()
}

// Subscription delivers decoded events until closed.
type Subscription struct {
	ps     *redis.PubSub
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// Subscribe listens on the done channel of namespace ns. The subscription is
// confirmed before Subscribe returns, so events published afterwards are not missed.
func Subscribe(ctx context.Context, rdb redis.UniversalClient, ns string) (*Subscription, error) {
	ps := rdb.Subscribe(ctx, keys.For(ns).Done)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}
	s := &Subscription{ps: ps, events: make(chan Event), done: make(chan struct{})}
	go s.loop()
	return s, nil
}

func (s *Subscription) loop() {
	defer close(s.events)
	for msg := range s.ps.Channel() {
		var ev Event
		// malformed payloads come from foreign publishers; skip them
		if err := sonic.UnmarshalString(msg.Payload, &ev); err != nil {
			continue
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Events returns the channel of received events. It is closed after Close.
func (s *Subscription) Events() <-chan Event { return s.events }

// Close unsubscribes and releases the connection.
func (s *Subscription) Close() error {
	s.once.Do(func() { close(s.done) })
	return s.ps.Close()
}
