// Package embcache caches embeddings in front of the provider: a bounded
// in-process LRU backed by an optional Redis key-value layer.
package embcache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tripweaver/internal/db"
	"github.com/kailas-cloud/tripweaver/internal/domain"
)

const cacheKeyPrefix = "tripweaver:emb_cache:"

// store is the consumer interface for the shared cache layer (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedEmbedder caches embeddings keyed by a hash of the normalized query
// text. Entries are bounded by the LRU size; the unbounded growth of the
// naive approach is a documented non-option. Safe for concurrent use.
type CachedEmbedder struct {
	inner      domain.Embedder
	local      *lru.Cache[string, []float32]
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// Option configures a CachedEmbedder.
type Option func(*CachedEmbedder)

// WithStore adds a Redis-backed second cache level with the given TTL.
// Store failures degrade to a miss, never fail the request.
func WithStore(s store, ttl time.Duration) Option {
	return func(c *CachedEmbedder) {
		c.store = s
		c.ttl = ttl
	}
}

// WithMetrics wires the hit/miss counter vec (label "result").
func WithMetrics(cacheTotal *prometheus.CounterVec) Option {
	return func(c *CachedEmbedder) {
		c.cacheTotal = cacheTotal
	}
}

// New creates a caching decorator with an LRU of the given size.
func New(inner domain.Embedder, size int, logger *zap.Logger, opts ...Option) (*CachedEmbedder, error) {
	local, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}

	c := &CachedEmbedder{
		inner:  inner,
		local:  local,
		logger: logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Embed returns a cached embedding or calls the inner embedder.
// Cache hit: CacheHit=true, TotalTokens=0 (no real tokens consumed).
// Cache miss: full EmbeddingResult from inner; only successful results are
// cached, so a provider failure never poisons the cache.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := domain.CacheKey(text)

	if vec, ok := c.local.Get(key); ok {
		c.incCache("hit")
		return domain.EmbeddingResult{Embedding: vec, CacheHit: true}, nil
	}

	if vec, ok := c.getFromStore(ctx, key); ok {
		c.incCache("hit")
		c.local.Add(key, vec)
		return domain.EmbeddingResult{Embedding: vec, CacheHit: true}, nil
	}

	c.incCache("miss")

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	c.local.Add(key, result.Embedding)
	c.putToStore(ctx, key, result.Embedding)
	return result, nil
}

// Len returns the number of entries in the in-process cache.
func (c *CachedEmbedder) Len() int {
	return c.local.Len()
}

func (c *CachedEmbedder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedEmbedder) getFromStore(ctx context.Context, key string) ([]float32, bool) {
	if c.store == nil {
		return nil, false
	}

	data, err := c.store.Get(ctx, cacheKeyPrefix+key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached embedding", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	vec, err := bytesToVector(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return vec, true
}

func (c *CachedEmbedder) putToStore(ctx context.Context, key string, vec []float32) {
	if c.store == nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, cacheKeyPrefix+key, vectorToCacheBytes(vec), c.ttl); err != nil {
		c.logger.Warn("Failed to cache embedding", zap.String("key", key), zap.Error(err))
	}
}

func vectorToCacheBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
