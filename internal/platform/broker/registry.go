package broker

import (
	"context"
	"log/slog"
	"strings"

	"theknifeweb/internal/modules/realtime/application/port"
	"theknifeweb/internal/modules/realtime/domain"
)

// HandlerRegistry routes decoded events to the handler registered for their
// source topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[strings.TrimSpace(h.Topic())] = h
}

func (r *HandlerRegistry) Handler(topic string) (port.TopicHandler, bool) {
	h, ok := r.handlers[strings.TrimSpace(topic)]
	return h, ok
}

func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch hands the event to its topic's handler. Events for topics with no
// handler are dropped silently.
func (r *HandlerRegistry) Dispatch(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	h, ok := r.Handler(msg.Topic)
	if !ok {
		return nil
	}
	return h.Handle(ctx, msg)
}

// StartKafkaConsumers launches one consumer goroutine per registered topic.
// With no brokers configured the page refresh channel simply stays quiet.
func StartKafkaConsumers(ctx context.Context, registry *HandlerRegistry, brokers []string, groupID string) {
	if len(brokers) == 0 {
		slog.Warn("no kafka brokers configured, live refresh disabled")
		return
	}
	for _, topic := range registry.Topics() {
		handler, _ := registry.Handler(topic)
		consumer := NewKafkaConsumer(brokers, groupID, topic)
		go func(topic string, handler port.TopicHandler) {
			slog.Info("kafka consumer started", slog.String("topic", topic), slog.String("group", groupID))
			if err := consumer.Consume(ctx, handler); err != nil {
				slog.Error("kafka consumer stopped", slog.String("topic", topic), slog.Any("error", err))
			}
		}(topic, handler)
	}
}
