package refresh

import (
	"strings"
	"sync"
)

// Generations tracks a monotonic counter per view key. A loader captures the
// generation before fetching; if the counter moved while the fetch was in
// flight, the assembled result is stale and must be discarded. Broker-driven
// refreshes bump the counter for the affected area.
type Generations struct {
	mu       sync.RWMutex
	counters map[string]uint64
}

func NewGenerations() *Generations {
	return &Generations{counters: make(map[string]uint64)}
}

// Current returns the generation for key.
func (g *Generations) Current(key string) uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.counters[normalizeKey(key)]
}

// Bump invalidates every in-flight load for key and returns the new generation.
func (g *Generations) Bump(key string) uint64 {
	normalized := normalizeKey(key)
	if normalized == "" {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[normalized]++
	return g.counters[normalized]
}

// Stale reports whether a load that started at observed has been superseded.
func (g *Generations) Stale(key string, observed uint64) bool {
	return g.Current(key) != observed
}

// AreaKey builds the view key for a client or restaurant area.
func AreaKey(kind, id string) string {
	return "area." + strings.TrimSpace(kind) + "." + strings.TrimSpace(id)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
