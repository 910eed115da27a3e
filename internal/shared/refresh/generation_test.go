package refresh

import "testing"

func TestGenerationsBumpInvalidatesObservers(t *testing.T) {
	gens := NewGenerations()
	key := AreaKey("client", "99727933D")

	observed := gens.Current(key)
	if gens.Stale(key, observed) {
		t.Fatal("fresh observation must not be stale")
	}

	gens.Bump(key)
	if !gens.Stale(key, observed) {
		t.Fatal("observation must be stale after a bump")
	}

	if gens.Stale(key, gens.Current(key)) {
		t.Fatal("re-observed generation must not be stale")
	}
}

func TestGenerationsKeysAreIndependent(t *testing.T) {
	gens := NewGenerations()
	clientKey := AreaKey("client", "C1")
	restaurantKey := AreaKey("restaurant", "R1")

	observed := gens.Current(clientKey)
	gens.Bump(restaurantKey)
	if gens.Stale(clientKey, observed) {
		t.Fatal("bump on another key must not invalidate this one")
	}
}

func TestGenerationsEmptyKeyIgnored(t *testing.T) {
	gens := NewGenerations()
	if got := gens.Bump("  "); got != 0 {
		t.Fatalf("blank key bump returned %d", got)
	}
}
