package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, 3*time.Hour), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	s := &Session{
		ID:        "sid-1",
		Token:     "tok-1",
		Login:     "manager",
		Role:      RoleManager,
		StartedAt: time.Now(),
		State:     []byte(`{"view":"week"}`),
	}
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, s.Login, got.Login)
	assert.Equal(t, s.Token, got.Token)
	assert.JSONEq(t, `{"view":"week"}`, string(got.State))
}

func TestRedisStore_MissingAndDeleted(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrNotFound)

	s := &Session{ID: "sid-2", Token: "tok", StartedAt: time.Now()}
	require.NoError(t, store.Put(ctx, s))
	require.NoError(t, store.Delete(ctx, "sid-2"))

	_, err = store.Get(ctx, "sid-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_EntriesExpireWithCeiling(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	s := &Session{ID: "sid-3", Token: "tok", StartedAt: time.Now()}
	require.NoError(t, store.Put(ctx, s))

	mr.FastForward(3*time.Hour + time.Minute)

	_, err := store.Get(ctx, "sid-3")
	assert.ErrorIs(t, err, ErrNotFound)
}
