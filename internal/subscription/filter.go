// Package subscription decorates raw event streams with the
// per-subscriber authorization contract: establishing a subscription
// requires an authenticated identity, and every event is re-tested
// against that identity before delivery.
package subscription

import (
	"context"

	"palaver/internal/identity"
	palaver_errors "palaver/pkg/errors"
	"palaver/pkg/events"
	"palaver/pkg/logger"
)

// Predicate decides whether one event may be delivered to the
// subscriber. Returning an error drops the event for this subscriber
// without tearing down the stream.
type Predicate[T any] func(ctx context.Context, subscriber identity.Identity, event T) (bool, error)

// Subscription is an authorized live feed. Events failing the
// predicate never appear on it.
type Subscription[T any] struct {
	ch  chan T
	raw *events.Subscription[T]
}

func (s *Subscription[T]) Events() <-chan T {
	return s.ch
}

func (s *Subscription[T]) Close() {
	s.raw.Close()
}

// Subscribe gates on the caller identity up front, then filters the
// underlying stream event by event. The identity is captured once at
// subscribe time; the predicate runs fresh per event.
func Subscribe[T any](ctx context.Context, stream events.Stream[T], allow Predicate[T], log *logger.Logger) (*Subscription[T], error) {
	subscriber, ok := identity.FromContext(ctx)
	if !ok {
		return nil, palaver_errors.Unauthenticated("not authenticated")
	}

	raw := stream.Subscribe(ctx)
	filtered := &Subscription[T]{
		ch:  make(chan T),
		raw: raw,
	}

	go func() {
		defer close(filtered.ch)
		for event := range raw.Events() {
			deliver, err := allow(ctx, subscriber, event)
			if err != nil {
				log.Errorf("subscription: predicate for %s: %v", subscriber.Username, err)
				continue
			}
			if !deliver {
				continue
			}
			select {
			case filtered.ch <- event:
			case <-raw.Done():
				return
			}
		}
	}()

	return filtered, nil
}
