package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoizes built display trees keyed by content identity. Misses are
// never an error: a failing cache only costs a re-parse.
type Cache interface {
	Get(ctx context.Context, key string) ([]Block, bool)
	Set(ctx context.Context, key string, blocks []Block)
}

// ContentKey derives the memoization key for a markdown body.
func ContentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Renderer builds display trees through a cache.
type Renderer struct {
	cache Cache
}

func NewRenderer(cache Cache) *Renderer {
	if cache == nil {
		cache = NewMemoryCache(256)
	}
	return &Renderer{cache: cache}
}

// Render returns the display tree for a markdown body, reusing a cached
// tree when the same content was rendered before.
func (r *Renderer) Render(ctx context.Context, content string) []Block {
	key := ContentKey(content)
	if blocks, ok := r.cache.Get(ctx, key); ok {
		return blocks
	}
	blocks := BuildTree(content)
	r.cache.Set(ctx, key, blocks)
	return blocks
}

// MemoryCache is a bounded in-process cache. When full it evicts wholesale.
type MemoryCache struct {
	mu    sync.RWMutex
	max   int
	trees map[string][]Block
}

func NewMemoryCache(max int) *MemoryCache {
	if max <= 0 {
		max = 256
	}
	return &MemoryCache{max: max, trees: make(map[string][]Block)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	blocks, ok := c.trees[key]
	return blocks, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, blocks []Block) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.trees) >= c.max {
		c.trees = make(map[string][]Block)
	}
	c.trees[key] = blocks
}

// RedisCache stores rendered trees as JSON under "render:<key>" with a TTL,
// letting multiple instances share one memo.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, prefix: "render:", ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Block, bool) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var blocks []Block
	if err := json.Unmarshal(b, &blocks); err != nil {
		return nil, false
	}
	return blocks, true
}

func (c *RedisCache) Set(ctx context.Context, key string, blocks []Block) {
	b, err := json.Marshal(blocks)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.prefix+key, b, c.ttl).Err()
}
