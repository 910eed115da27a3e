package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// MemoryRepository is the default single-process backend. Entries live under
// session id, slot name, with a whole-session expiry refreshed on write.
type MemoryRepository struct {
	mu        sync.RWMutex
	sessions  map[string]*memorySession
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

type memorySession struct {
	slots     map[string][]byte
	expiresAt time.Time
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &MemoryRepository{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *MemoryRepository) set(sid, slot string, value any) error {
	sid = strings.TrimSpace(sid)
	if sid == "" {
		return ErrNotFound
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	sess := r.sessions[sid]
	if sess == nil || !sess.expiresAt.After(r.now()) {
		sess = &memorySession{slots: make(map[string][]byte)}
		r.sessions[sid] = sess
	}
	sess.slots[slot] = encoded
	sess.expiresAt = r.now().Add(r.ttl)
	return nil
}

// sweepLocked drops expired sessions. Abandoned sessions are otherwise never
// read again, so expiry on Get alone would let them accumulate. Runs at most
// once per quarter TTL, piggybacking on writes.
func (r *MemoryRepository) sweepLocked() {
	now := r.now()
	if now.Before(r.nextSweep) {
		return
	}
	r.nextSweep = now.Add(r.ttl / 4)
	for sid, sess := range r.sessions {
		if !sess.expiresAt.After(now) {
			delete(r.sessions, sid)
		}
	}
}

func (r *MemoryRepository) get(sid, slot string, target any) error {
	r.mu.RLock()
	sess := r.sessions[strings.TrimSpace(sid)]
	var encoded []byte
	if sess != nil && sess.expiresAt.After(r.now()) {
		encoded = sess.slots[slot]
	}
	r.mu.RUnlock()
	if encoded == nil {
		return ErrNotFound
	}
	return json.Unmarshal(encoded, target)
}

func (r *MemoryRepository) clear(sid, slot string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess := r.sessions[strings.TrimSpace(sid)]; sess != nil {
		delete(sess.slots, slot)
		if len(sess.slots) == 0 {
			delete(r.sessions, strings.TrimSpace(sid))
		}
	}
}

func (r *MemoryRepository) Client(_ context.Context, sid string) (*ClientRecord, error) {
	record := &ClientRecord{}
	if err := r.get(sid, slotClient, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *MemoryRepository) SetClient(_ context.Context, sid string, record *ClientRecord) error {
	return r.set(sid, slotClient, record)
}

func (r *MemoryRepository) ClearClient(_ context.Context, sid string) error {
	r.clear(sid, slotClient)
	return nil
}

func (r *MemoryRepository) Restaurant(_ context.Context, sid string) (*RestaurantRecord, error) {
	record := &RestaurantRecord{}
	if err := r.get(sid, slotRestaurant, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *MemoryRepository) SetRestaurant(_ context.Context, sid string, record *RestaurantRecord) error {
	return r.set(sid, slotRestaurant, record)
}

func (r *MemoryRepository) ClearRestaurant(_ context.Context, sid string) error {
	r.clear(sid, slotRestaurant)
	return nil
}

func (r *MemoryRepository) SetHandoff(_ context.Context, sid string, handoff *Handoff) error {
	return r.set(sid, slotHandoff, handoff)
}

func (r *MemoryRepository) TakeHandoff(_ context.Context, sid string) (*Handoff, error) {
	handoff := &Handoff{}
	if err := r.get(sid, slotHandoff, handoff); err != nil {
		return nil, err
	}
	r.clear(sid, slotHandoff)
	return handoff, nil
}

var _ Repository = (*MemoryRepository)(nil)
