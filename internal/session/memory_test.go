package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryClientRoundTrip(t *testing.T) {
	repo := NewMemoryRepository(time.Hour)
	ctx := context.Background()

	if _, err := repo.Client(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	record := &ClientRecord{ID: "99727933D", Name: "Ana", Email: "ana@example.com", Age: 31}
	if err := repo.SetClient(ctx, "s1", record); err != nil {
		t.Fatalf("set client: %v", err)
	}

	got, err := repo.Client(ctx, "s1")
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if got.ID != "99727933D" || got.Name != "Ana" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := repo.ClearClient(ctx, "s1"); err != nil {
		t.Fatalf("clear client: %v", err)
	}
	if _, err := repo.Client(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestMemorySessionsAreIsolated(t *testing.T) {
	repo := NewMemoryRepository(time.Hour)
	ctx := context.Background()

	if err := repo.SetClient(ctx, "s1", &ClientRecord{ID: "C1"}); err != nil {
		t.Fatalf("set client: %v", err)
	}
	if _, err := repo.Client(ctx, "s2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other session, got %v", err)
	}
}

func TestMemoryHandoffConsumedOnce(t *testing.T) {
	repo := NewMemoryRepository(time.Hour)
	ctx := context.Background()

	if err := repo.SetHandoff(ctx, "s1", &Handoff{RestaurantID: "R1", RestaurantName: "Casa X"}); err != nil {
		t.Fatalf("set handoff: %v", err)
	}

	handoff, err := repo.TakeHandoff(ctx, "s1")
	if err != nil {
		t.Fatalf("take handoff: %v", err)
	}
	if handoff.RestaurantID != "R1" {
		t.Fatalf("unexpected handoff: %+v", handoff)
	}

	if _, err := repo.TakeHandoff(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second take must report ErrNotFound, got %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	current := time.Now()
	repo.now = func() time.Time { return current }
	ctx := context.Background()

	if err := repo.SetRestaurant(ctx, "s1", &RestaurantRecord{ID: "R1", Name: "Casa X"}); err != nil {
		t.Fatalf("set restaurant: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := repo.Restaurant(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemorySweepDropsAbandonedSessions(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	current := time.Now()
	repo.now = func() time.Time { return current }
	ctx := context.Background()

	if err := repo.SetClient(ctx, "abandoned", &ClientRecord{ID: "C1"}); err != nil {
		t.Fatalf("set client: %v", err)
	}

	// The abandoned session is never read again; a later write from another
	// session must still reclaim it once it expires.
	current = current.Add(2 * time.Minute)
	if err := repo.SetClient(ctx, "active", &ClientRecord{ID: "C2"}); err != nil {
		t.Fatalf("set client: %v", err)
	}

	repo.mu.RLock()
	_, abandonedKept := repo.sessions["abandoned"]
	_, activeKept := repo.sessions["active"]
	repo.mu.RUnlock()
	if abandonedKept {
		t.Fatal("expired session not swept on write")
	}
	if !activeKept {
		t.Fatal("live session must survive the sweep")
	}
}
