package domain

import (
	"strings"
	"time"

	"theknifeweb/internal/shared/normalization"
)

// Status is the lifecycle state of a reservation as reported by the core API.
type Status string

const (
	StatusPending   Status = "PENDIENTE"
	StatusConfirmed Status = "CONFIRMADA"
	StatusCancelled Status = "CANCELADA"
)

// NormalizeStatus maps the server's loosely cased status strings onto the
// known set. Unknown values pass through uppercased rather than failing.
func NormalizeStatus(raw string) Status {
	upper := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch upper {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return upper
	}
	return upper
}

// Reservation is a booking record for a client at a restaurant.
type Reservation struct {
	ID             string
	ClientID       string
	RestaurantID   string
	RestaurantName string
	RestaurantCity string
	// Date is the reservation day, YYYY-MM-DD.
	Date      string
	Time      string
	PartySize int
	Status    Status
}

// NormalizeReservation constructs a Reservation from a loosely typed map.
func NormalizeReservation(raw map[string]any) (Reservation, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		id = normalization.AsString(raw["id_reserva"])
	}
	if id == "" {
		return Reservation{}, false
	}
	return Reservation{
		ID:             id,
		ClientID:       normalization.AsString(raw["id_cliente"]),
		RestaurantID:   normalization.AsString(raw["id_restaurante"]),
		RestaurantName: normalization.AsString(raw["restaurante_nombre"]),
		RestaurantCity: normalization.AsString(raw["restaurante_ciudad"]),
		Date:           NormalizeDate(normalization.AsString(raw["fecha"])),
		Time:           normalization.AsString(raw["hora"]),
		PartySize:      normalization.AsInt(raw["num_personas"]),
		Status:         NormalizeStatus(normalization.AsString(raw["estado"])),
	}, true
}

// BuildReservationList projects the {"reservas": [...]} envelope into records.
func BuildReservationList(payload any) ([]Reservation, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["reservas"])
	if rawItems == nil {
		rawItems = normalization.AsInterfaceSlice(container["items"])
	}
	if rawItems == nil {
		return nil, false
	}
	result := make([]Reservation, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if reservation, ok := NormalizeReservation(rawMap); ok {
				result = append(result, reservation)
			}
		}
	}
	return result, true
}

// NormalizeDate reduces a server date value to its YYYY-MM-DD day part. The
// API sometimes returns full timestamps ("2025-06-01 00:00:00" or ISO form).
func NormalizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if idx := strings.IndexAny(trimmed, " T"); idx > 0 {
		return trimmed[:idx]
	}
	return trimmed
}

// Day parses the reservation date in the given location, truncated to
// midnight. A malformed date reports false.
func (r Reservation) Day(loc *time.Location) (time.Time, bool) {
	parsed, err := time.ParseInLocation("2006-01-02", r.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// IsPast reports whether the reservation day is strictly before now's day.
// Malformed dates count as past so they never offer edit or cancel actions.
func (r Reservation) IsPast(now time.Time) bool {
	day, ok := r.Day(now.Location())
	if !ok {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(today)
}

// EditableOn reports whether edit and cancel actions are allowed: the
// reservation day is today or later and the reservation is not cancelled.
func (r Reservation) EditableOn(now time.Time) bool {
	return !r.IsPast(now) && r.Status != StatusCancelled
}
