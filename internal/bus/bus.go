// Package bus wires the messaging core's event topics to a concrete
// broker implementation.
package bus

import (
	"github.com/redis/go-redis/v9"

	"palaver/internal/domain"
	"palaver/pkg/events"
	"palaver/pkg/logger"
)

// Bus holds one live stream per event topic.
type Bus struct {
	NewMessage  events.Stream[domain.Message]
	NewReaction events.Stream[domain.Reaction]
}

// NewMemoryBus is the single-process broker.
func NewMemoryBus() *Bus {
	return &Bus{
		NewMessage:  events.NewMemoryStream[domain.Message](),
		NewReaction: events.NewMemoryStream[domain.Reaction](),
	}
}

// NewRedisBus fans events out through Redis pub/sub so subscribers on
// other nodes see them too.
func NewRedisBus(client *redis.Client, log *logger.Logger) *Bus {
	return &Bus{
		NewMessage:  events.NewRedisStream[domain.Message](client, events.TopicNewMessage, log),
		NewReaction: events.NewRedisStream[domain.Reaction](client, events.TopicNewReaction, log),
	}
}
