package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"palaver/pkg/logger"
)

// RedisStream is a Stream backed by a Redis pub/sub channel, for
// deployments where subscribers live on other nodes than the
// publisher. Payloads cross the wire as JSON.
type RedisStream[T any] struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

func NewRedisStream[T any](client *redis.Client, channel string, log *logger.Logger) *RedisStream[T] {
	return &RedisStream[T]{client: client, channel: channel, log: log}
}

// Publish is fire-and-forget: marshal or transport failures are
// logged, never surfaced to the publisher.
func (s *RedisStream[T]) Publish(ctx context.Context, payload T) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Errorf("events: marshal for channel %s: %v", s.channel, err)
		return
	}
	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		s.log.Errorf("events: publish to channel %s: %v", s.channel, err)
	}
}

func (s *RedisStream[T]) Subscribe(ctx context.Context) *Subscription[T] {
	pubsub := s.client.Subscribe(ctx, s.channel)
	sub := newSubscription[T]()
	sub.stop = func() {
		if err := pubsub.Close(); err != nil {
			s.log.Errorf("events: close pubsub on channel %s: %v", s.channel, err)
		}
	}

	go func() {
		defer close(sub.ch)
		for msg := range pubsub.Channel() {
			var payload T
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				s.log.Errorf("events: unmarshal from channel %s: %v", s.channel, err)
				continue
			}
			if !sub.deliver(payload) {
				return
			}
		}
	}()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				sub.Close()
			case <-sub.Done():
			}
		}()
	}
	return sub
}
