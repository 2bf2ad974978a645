package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	s := NewRedisStore(client, ttl)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return s, mr, cleanup
}

func TestRedisStore_Contract(t *testing.T) {
	s, _, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	runStoreContract(t, s)
}

func TestRedisStore_SetAppliesTTL(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t, time.Hour)
	defer cleanup()

	require.NoError(t, s.Set(context.Background(), "browser:x:token", "abc"))

	assert.Equal(t, time.Hour, mr.TTL("browser:x:token"))
}

func TestRedisStore_DefaultTTL(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	require.NoError(t, s.Set(context.Background(), "k", "v"))

	assert.Equal(t, DefaultRedisTTL, mr.TTL("k"))
}

func TestRedisStore_ExpiredKeyIsNotFound(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t, time.Minute)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v"))
	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ServerDown(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()
	mr.Close()

	_, err := s.Get(context.Background(), "k")
	require.ErrorContains(t, err, "redis get failed")
	assert.NotErrorIs(t, err, ErrNotFound)

	err = s.Set(context.Background(), "k", "v")
	require.ErrorContains(t, err, "redis set failed")
}
