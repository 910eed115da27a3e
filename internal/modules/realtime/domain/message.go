package domain

import (
	"strings"
	"time"
)

// Message is a backend change event flowing from the broker to subscribed
// pages. Entity and Action identify what changed; Metadata carries the ids
// needed to target the affected areas.
type Message struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionRefresh = "refresh"

	AreaKindClient     = "client"
	AreaKindRestaurant = "restaurant"
)

// AreaRef names one client or restaurant area affected by an event.
type AreaRef struct {
	Kind string
	ID   string
}

// Topic is the websocket topic pages subscribe to for this area.
func (a AreaRef) Topic() string {
	return "area." + a.Kind + "." + a.ID
}

// AreaTopic builds the subscription topic for a kind/id pair.
func AreaTopic(kind, id string) string {
	return AreaRef{Kind: strings.TrimSpace(kind), ID: strings.TrimSpace(id)}.Topic()
}

// AffectedAreas derives the areas a change event touches from its metadata.
// A reservation or invoice event names both the diner and the restaurant.
func AffectedAreas(msg *Message) []AreaRef {
	if msg == nil || msg.Metadata == nil {
		return nil
	}
	var areas []AreaRef
	if clientID := strings.TrimSpace(msg.Metadata["id_cliente"]); clientID != "" {
		areas = append(areas, AreaRef{Kind: AreaKindClient, ID: clientID})
	}
	if restaurantID := strings.TrimSpace(msg.Metadata["id_restaurante"]); restaurantID != "" {
		areas = append(areas, AreaRef{Kind: AreaKindRestaurant, ID: restaurantID})
	}
	return areas
}

// RefreshMessage is the notification broadcast to an area's subscribers
// telling the page to re-fetch and re-render.
func RefreshMessage(area AreaRef, cause *Message) *Message {
	msg := &Message{
		Entity:    cause.Entity,
		Action:    ActionRefresh,
		Topic:     area.Topic(),
		Timestamp: time.Now().UTC(),
	}
	if cause.ResourceID != "" {
		msg.ResourceID = cause.ResourceID
	}
	return msg
}
