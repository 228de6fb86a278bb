package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisCache(mr.Addr(), "storefront"), mr
}

func TestRedisCache_SetNX(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "k", "pending", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "pending", v)
}

func TestRedisCache_GetMissing(t *testing.T) {
	c, _ := newTestCache(t)

	v, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestRedisCache_SetDeleteAndTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "done", time.Minute))
	assert.True(t, mr.Exists("k"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("k"))

	require.NoError(t, c.Set(ctx, "k", "done", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestRedisCache_GenerateKey(t *testing.T) {
	c, _ := newTestCache(t)
	assert.Equal(t, "storefront:submission:abc", c.GenerateKey("submission", "abc"))
}

func TestRedisCache_Unreachable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, err := c.SetNX(context.Background(), "k", "v", time.Minute)
	assert.Error(t, err)
}
