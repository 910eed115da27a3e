package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores session slots as JSON values under
// session:{sid}:{slot}, letting multiple frontend replicas share sessions.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &RedisRepository{client: client, ttl: ttl}
}

func sessionKey(sid, slot string) string {
	return "session:" + strings.TrimSpace(sid) + ":" + slot
}

func (r *RedisRepository) set(ctx context.Context, sid, slot string, value any) error {
	if strings.TrimSpace(sid) == "" {
		return ErrNotFound
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(sid, slot), encoded, r.ttl).Err()
}

func (r *RedisRepository) get(ctx context.Context, sid, slot string, target any) error {
	encoded, err := r.client.Get(ctx, sessionKey(sid, slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, target)
}

func (r *RedisRepository) Client(ctx context.Context, sid string) (*ClientRecord, error) {
	record := &ClientRecord{}
	if err := r.get(ctx, sid, slotClient, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *RedisRepository) SetClient(ctx context.Context, sid string, record *ClientRecord) error {
	return r.set(ctx, sid, slotClient, record)
}

func (r *RedisRepository) ClearClient(ctx context.Context, sid string) error {
	return r.client.Del(ctx, sessionKey(sid, slotClient)).Err()
}

func (r *RedisRepository) Restaurant(ctx context.Context, sid string) (*RestaurantRecord, error) {
	record := &RestaurantRecord{}
	if err := r.get(ctx, sid, slotRestaurant, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *RedisRepository) SetRestaurant(ctx context.Context, sid string, record *RestaurantRecord) error {
	return r.set(ctx, sid, slotRestaurant, record)
}

func (r *RedisRepository) ClearRestaurant(ctx context.Context, sid string) error {
	return r.client.Del(ctx, sessionKey(sid, slotRestaurant)).Err()
}

func (r *RedisRepository) SetHandoff(ctx context.Context, sid string, handoff *Handoff) error {
	return r.set(ctx, sid, slotHandoff, handoff)
}

func (r *RedisRepository) TakeHandoff(ctx context.Context, sid string) (*Handoff, error) {
	encoded, err := r.client.GetDel(ctx, sessionKey(sid, slotHandoff)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	handoff := &Handoff{}
	if err := json.Unmarshal(encoded, handoff); err != nil {
		return nil, err
	}
	return handoff, nil
}

var _ Repository = (*RedisRepository)(nil)
