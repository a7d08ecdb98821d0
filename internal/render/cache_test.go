package render

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// countingCache wraps a Cache to observe hit/miss behaviour.
type countingCache struct {
	Cache
	gets, hits, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]Block, bool) {
	c.gets++
	blocks, ok := c.Cache.Get(ctx, key)
	if ok {
		c.hits++
	}
	return blocks, ok
}

func (c *countingCache) Set(ctx context.Context, key string, blocks []Block) {
	c.sets++
	c.Cache.Set(ctx, key, blocks)
}

func TestRenderer_MemoizesOnContentIdentity(t *testing.T) {
	cache := &countingCache{Cache: NewMemoryCache(16)}
	r := NewRenderer(cache)
	ctx := context.Background()

	first := r.Render(ctx, sampleNote)
	second := r.Render(ctx, sampleNote)
	require.Equal(t, first, second)
	require.Equal(t, 2, cache.gets)
	require.Equal(t, 1, cache.hits)
	require.Equal(t, 1, cache.sets)

	// different content misses
	r.Render(ctx, "# Other\n\nbody")
	require.Equal(t, 2, cache.sets)
}

func TestContentKey_DistinctContent(t *testing.T) {
	require.Equal(t, ContentKey("abc"), ContentKey("abc"))
	require.NotEqual(t, ContentKey("abc"), ContentKey("abd"))
}

func TestMemoryCache_EvictsWhenFull(t *testing.T) {
	c := NewMemoryCache(2)
	ctx := context.Background()
	c.Set(ctx, "a", []Block{{Type: BlockParagraph}})
	c.Set(ctx, "b", []Block{{Type: BlockParagraph}})
	c.Set(ctx, "c", []Block{{Type: BlockParagraph}})

	_, okA := c.Get(ctx, "a")
	_, okC := c.Get(ctx, "c")
	require.False(t, okA)
	require.True(t, okC)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	key := ContentKey(sampleNote)
	_, ok := c.Get(ctx, key)
	require.False(t, ok)

	blocks := BuildTree(sampleNote)
	c.Set(ctx, key, blocks)

	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	require.Equal(t, blocks, got)
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := NewRedisCache(client, time.Second)
	ctx := context.Background()

	c.Set(ctx, "k", []Block{{Type: BlockParagraph}})
	_, ok := c.Get(ctx, "k")
	require.True(t, ok)

	m.FastForward(2 * time.Second)
	_, ok = c.Get(ctx, "k")
	require.False(t, ok)
}
