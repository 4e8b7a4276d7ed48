package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
)

const defaultCacheTTL = 24 * time.Hour

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Cached memoizes vectors by model and normalized text. Cache failures fall through to the provider.
type Cached struct {
	next   Provider
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCached(next Provider, cache Cache, ttl time.Duration, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger.Named("embedding")}
}

func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + Truncate(text)))
	return "embedding:" + hex.EncodeToString(sum[:])
}

func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.cache == nil {
		return c.next.Embed(ctx, text)
	}

	key := CacheKey(c.next.Model(), text)
	var cached []float32
	hit, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		c.logger.Debug("embedding cache read failed", zap.Error(err))
	}
	if hit && len(cached) == c.next.Dimensions() {
		return cached, nil
	}

	v, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, v, c.ttl); err != nil {
		c.logger.Debug("embedding cache write failed", zap.Error(err))
	}
	return v, nil
}

func (c *Cached) Model() string   { return c.next.Model() }
func (c *Cached) Dimensions() int { return c.next.Dimensions() }
