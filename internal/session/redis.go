package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "groomsess:"

// RedisStore keeps sessions in Redis so restarts and multiple instances
// share them. Entries expire with the session ceiling; the gate's own
// checks still apply on top.
type RedisStore struct {
	rdb    *redis.Client
	maxAge time.Duration
}

// NewRedisStore constructs a Redis-backed session store.
func NewRedisStore(rdb *redis.Client, maxAge time.Duration) *RedisStore {
	if maxAge <= 0 {
		maxAge = 3 * time.Hour
	}
	return &RedisStore{rdb: rdb, maxAge: maxAge}
}

// Put stores the session with the remaining lifetime as its TTL.
func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := r.maxAge
	if !s.StartedAt.IsZero() {
		if remaining := r.maxAge - time.Since(s.StartedAt); remaining > 0 {
			ttl = remaining
		}
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+s.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get loads a session or reports ErrNotFound.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := r.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Delete removes a session; deleting an absent session is not an error.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
