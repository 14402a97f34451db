// Package events provides a topic-per-stream publish/subscribe
// primitive. A Stream carries one payload type; subscribers receive
// every payload published after they subscribed, in publish order,
// with no replay of earlier payloads.
package events

import (
	"context"
	"sync"
)

// Channel names used by brokers that key delivery by string topic
// (the Redis-backed stream).
const (
	TopicNewMessage  = "NEW_MESSAGE"
	TopicNewReaction = "NEW_REACTION"
)

// Stream is a single-topic broker. Publish never blocks on slow
// subscribers.
type Stream[T any] interface {
	Publish(ctx context.Context, payload T)
	Subscribe(ctx context.Context) *Subscription[T]
}

// Subscription is one subscriber's live feed. Close tears the feed
// down; the Events channel is closed afterwards.
type Subscription[T any] struct {
	ch   chan T
	done chan struct{}
	once sync.Once
	stop func()
}

func newSubscription[T any]() *Subscription[T] {
	return &Subscription[T]{
		ch:   make(chan T),
		done: make(chan struct{}),
	}
}

// Events returns the channel payloads arrive on.
func (s *Subscription[T]) Events() <-chan T {
	return s.ch
}

// Close cancels the subscription. Safe to call more than once and
// concurrently with delivery.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.stop != nil {
			s.stop()
		}
	})
}

// Done is closed once the subscription has been cancelled.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// deliver hands one payload to the subscriber. It blocks the calling
// pump goroutine, never a publisher. Returns false once closed.
func (s *Subscription[T]) deliver(payload T) bool {
	select {
	case <-s.done:
		return false
	case s.ch <- payload:
		return true
	}
}
