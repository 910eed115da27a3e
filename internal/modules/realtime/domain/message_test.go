package domain

import "testing"

func TestAffectedAreasFromMetadata(t *testing.T) {
	msg := &Message{
		Entity: "reserva",
		Action: ActionCreated,
		Metadata: map[string]string{
			"id_cliente":     "C1",
			"id_restaurante": "R7",
		},
	}
	areas := AffectedAreas(msg)
	if len(areas) != 2 {
		t.Fatalf("expected two areas, got %+v", areas)
	}
	if areas[0].Topic() != "area.client.C1" {
		t.Fatalf("unexpected client topic: %s", areas[0].Topic())
	}
	if areas[1].Topic() != "area.restaurant.R7" {
		t.Fatalf("unexpected restaurant topic: %s", areas[1].Topic())
	}
}

func TestAffectedAreasIgnoresBlankIDs(t *testing.T) {
	msg := &Message{Metadata: map[string]string{"id_cliente": "  ", "id_restaurante": ""}}
	if areas := AffectedAreas(msg); len(areas) != 0 {
		t.Fatalf("expected no areas, got %+v", areas)
	}
	if areas := AffectedAreas(nil); areas != nil {
		t.Fatalf("expected nil for nil message, got %+v", areas)
	}
}

func TestRefreshMessageCarriesCause(t *testing.T) {
	cause := &Message{Entity: "factura", Action: ActionCreated, ResourceID: "F9"}
	msg := RefreshMessage(AreaRef{Kind: AreaKindRestaurant, ID: "R1"}, cause)
	if msg.Action != ActionRefresh {
		t.Fatalf("expected refresh action, got %s", msg.Action)
	}
	if msg.Topic != "area.restaurant.R1" {
		t.Fatalf("unexpected topic: %s", msg.Topic)
	}
	if msg.Entity != "factura" || msg.ResourceID != "F9" {
		t.Fatalf("cause not carried: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}
