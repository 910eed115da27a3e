package port

import (
	"context"

	"theknifeweb/internal/modules/realtime/domain"
)

// Broadcaster delivers a message to every connection subscribed to its topic.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message) error
}

// TopicHandler reacts to broker events for one backend topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
