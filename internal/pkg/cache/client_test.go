package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posstock/internal/pkg/cache"
)

func newTestClient(t *testing.T) (*cache.RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisClient_GetSetDelete(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	_, err := client.Get(ctx, "product:1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, client.Set(ctx, "product:1", `{"id":"1"}`, time.Minute))
	val, err := client.Get(ctx, "product:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, val)

	mr.FastForward(2 * time.Minute)
	_, err = client.Get(ctx, "product:1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, client.Set(ctx, "product:2", "x", 0))
	require.NoError(t, client.Delete(ctx, "product:2"))
	require.NoError(t, client.Delete(ctx, "product:2"))
	assert.False(t, mr.Exists("product:2"))
}

func TestRedisClient_Counters(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.GetInt(ctx, "rate-limit:10.0.0.1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, client.Set(ctx, "rate-limit:10.0.0.1", 1, time.Minute))
	n, err := client.Incr(ctx, "rate-limit:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := client.GetInt(ctx, "rate-limit:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := cache.NewRedisClient(addr)
	assert.Error(t, err)
}
