package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"pendiente":  StatusPending,
		" Confirmada ": StatusConfirmed,
		"CANCELADA":  StatusCancelled,
		"en_espera":  Status("EN_ESPERA"),
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestBuildReservationList(t *testing.T) {
	payload := map[string]any{
		"reservas": []any{
			map[string]any{
				"id_reserva": "RES1", "id_cliente": "C1", "id_restaurante": "R1",
				"restaurante_nombre": "Casa X", "fecha": "2025-06-01 00:00:00",
				"hora": "21:00", "num_personas": float64(4), "estado": "pendiente",
			},
			map[string]any{"fecha": "2025-06-02"},
		},
	}
	reservations, ok := BuildReservationList(payload)
	if !ok {
		t.Fatal("expected reservation list")
	}
	if len(reservations) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(reservations))
	}
	got := reservations[0]
	if got.Date != "2025-06-01" {
		t.Fatalf("date not normalized: %q", got.Date)
	}
	if got.Status != StatusPending || got.PartySize != 4 {
		t.Fatalf("unexpected reservation: %+v", got)
	}
}

func TestReservationIsPast(t *testing.T) {
	now := time.Date(2025, 6, 10, 13, 30, 0, 0, time.UTC)

	past := Reservation{Date: "2025-06-09"}
	if !past.IsPast(now) {
		t.Fatal("yesterday should be past")
	}
	today := Reservation{Date: "2025-06-10"}
	if today.IsPast(now) {
		t.Fatal("today should not be past regardless of clock time")
	}
	malformed := Reservation{Date: "junio"}
	if !malformed.IsPast(now) {
		t.Fatal("malformed date should count as past")
	}
}

func TestReservationEditableOn(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	editable := Reservation{Date: "2025-06-11", Status: StatusPending}
	if !editable.EditableOn(now) {
		t.Fatal("future pending reservation should be editable")
	}
	cancelled := Reservation{Date: "2025-06-11", Status: StatusCancelled}
	if cancelled.EditableOn(now) {
		t.Fatal("cancelled reservation should not be editable")
	}
	past := Reservation{Date: "2025-06-09", Status: StatusConfirmed}
	if past.EditableOn(now) {
		t.Fatal("past reservation should not be editable")
	}
}

func TestDraftValidate(t *testing.T) {
	full := Draft{ClientID: "C1", RestaurantID: "R1", PartySize: 2, Date: "2025-06-11", Time: "21:00"}
	if err := full.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	noClient := full
	noClient.ClientID = "  "
	if err := noClient.Validate(); !errors.Is(err, ErrNoClient) {
		t.Fatalf("expected ErrNoClient, got %v", err)
	}

	noRestaurant := full
	noRestaurant.RestaurantID = ""
	if err := noRestaurant.Validate(); !errors.Is(err, ErrNoRestaurant) {
		t.Fatalf("expected ErrNoRestaurant, got %v", err)
	}

	noParty := full
	noParty.PartySize = 0
	if err := noParty.Validate(); !errors.Is(err, ErrNoPartySize) {
		t.Fatalf("expected ErrNoPartySize, got %v", err)
	}

	noSlot := full
	noSlot.Time = ""
	if err := noSlot.Validate(); !errors.Is(err, ErrNoSlot) {
		t.Fatalf("expected ErrNoSlot, got %v", err)
	}
}

func TestStepFor(t *testing.T) {
	if StepFor(false) != StepIdentify {
		t.Fatal("no client should enter at identify")
	}
	if StepFor(true) != StepChooseSlot {
		t.Fatal("authenticated client should enter at choose-slot")
	}
}
