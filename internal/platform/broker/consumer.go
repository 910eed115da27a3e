package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"theknifeweb/internal/modules/realtime/application/port"
	"theknifeweb/internal/modules/realtime/domain"
)

// KafkaConsumer reads backend change events from one topic and feeds them
// to a topic handler.
type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		}),
	}
}

// Consume loops until ctx is cancelled, decoding each record and handing it
// to the handler. Undecodable records are logged and skipped.
func (c *KafkaConsumer) Consume(ctx context.Context, handler port.TopicHandler) error {
	defer func() { _ = c.reader.Close() }()
	for {
		record, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		msg, err := decodeRecord(record)
		if err != nil {
			slog.Warn("undecodable broker record skipped",
				slog.String("topic", record.Topic),
				slog.Any("error", err))
			continue
		}

		if err := handler.Handle(ctx, msg); err != nil {
			slog.Error("broker event handling failed",
				slog.String("topic", record.Topic),
				slog.String("entity", msg.Entity),
				slog.String("action", msg.Action),
				slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       json.RawMessage   `json:"data"`
	Timestamp  time.Time         `json:"timestamp"`
}

func decodeRecord(record kafka.Message) (*domain.Message, error) {
	var raw rawEvent
	if err := json.Unmarshal(record.Value, &raw); err != nil {
		return nil, err
	}

	entity, action := raw.Entity, raw.Action
	if entity == "" || action == "" {
		inferredEntity, inferredAction := inferFromTopic(firstNonEmpty(raw.Topic, record.Topic))
		entity = firstNonEmpty(entity, inferredEntity)
		action = firstNonEmpty(action, inferredAction)
	}
	if entity == "" || action == "" {
		return nil, errors.New("event names no entity or action")
	}

	msg := &domain.Message{
		Entity:     entity,
		Action:     action,
		ResourceID: raw.ResourceID,
		Topic:      firstNonEmpty(raw.Topic, record.Topic),
		Metadata:   raw.Metadata,
		Timestamp:  raw.Timestamp,
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = record.Time
	}
	if len(raw.Data) > 0 {
		var data any
		if err := json.Unmarshal(raw.Data, &data); err == nil {
			msg.Data = data
		}
	}
	return msg, nil
}

// inferFromTopic splits "reserva.created" style topics when the payload does
// not carry entity/action fields itself.
func inferFromTopic(topic string) (string, string) {
	parts := strings.Split(strings.TrimSpace(topic), ".")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[len(parts)-1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
