package handler

import (
	"context"
	"log/slog"

	"theknifeweb/internal/modules/realtime/application/port"
	"theknifeweb/internal/modules/realtime/domain"
	"theknifeweb/internal/shared/refresh"
)

// AreaStreamHandler turns backend change events for one entity into area
// refreshes: it bumps the generation counter of every affected area so
// in-flight page loads discard stale data, then notifies the subscribed
// browser tabs.
type AreaStreamHandler struct {
	entity      string
	kafkaTopic  string
	allowed     map[string]struct{}
	generations *refresh.Generations
	broadcaster port.Broadcaster
}

func NewAreaStreamHandler(entity, kafkaTopic string, actions []string, generations *refresh.Generations, broadcaster port.Broadcaster) *AreaStreamHandler {
	allowed := make(map[string]struct{}, len(actions))
	for _, action := range actions {
		allowed[action] = struct{}{}
	}
	return &AreaStreamHandler{
		entity:      entity,
		kafkaTopic:  kafkaTopic,
		allowed:     allowed,
		generations: generations,
		broadcaster: broadcaster,
	}
}

func (h *AreaStreamHandler) Topic() string {
	return h.kafkaTopic
}

func (h *AreaStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if len(h.allowed) > 0 {
		if _, ok := h.allowed[msg.Action]; !ok {
			return nil
		}
	}

	areas := domain.AffectedAreas(msg)
	if len(areas) == 0 {
		slog.Debug("event without area metadata ignored",
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action))
		return nil
	}

	for _, area := range areas {
		h.generations.Bump(refresh.AreaKey(area.Kind, area.ID))
		if err := h.broadcaster.Broadcast(ctx, domain.RefreshMessage(area, msg)); err != nil {
			return err
		}
		slog.Info("area refresh dispatched",
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("area", area.Topic()))
	}
	return nil
}

var _ port.TopicHandler = (*AreaStreamHandler)(nil)
