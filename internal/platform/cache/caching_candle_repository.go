// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"candle_dashboard/internal/feature/candles/domain/entity"
	"candle_dashboard/internal/feature/candles/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "candles"
)

// CachingCandleRepository decorates a CandleRepository with Redis caching.
//
// Entries are versioned by a per (symbol, interval) generation counter.
// UpsertBatch bumps the counter, so stale entries are never read again and
// simply expire with their TTL.
type CachingCandleRepository struct {
	inner     usecase.CandleRepository
	rdb       redis.Cmdable
	ttl       time.Duration
	namespace string

	// refreshHour >= 0 caps every TTL at the next refreshHour in refreshLoc.
	refreshHour int
	refreshLoc  *time.Location
	now         func() time.Time
}

var _ usecase.CandleRepository = (*CachingCandleRepository)(nil)

// Option configures a CachingCandleRepository.
type Option func(*CachingCandleRepository)

// WithTTL sets the entry lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *CachingCandleRepository) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithNamespace sets the key prefix.
func WithNamespace(ns string) Option {
	return func(c *CachingCandleRepository) {
		if ns != "" {
			c.namespace = ns
		}
	}
}

// WithRefreshAt expires entries no later than the next hour:00 in loc,
// which is when the scheduled ingest rewrites the snapshots.
func WithRefreshAt(hour int, loc *time.Location) Option {
	return func(c *CachingCandleRepository) {
		if hour >= 0 && hour < 24 {
			c.refreshHour = hour
			c.refreshLoc = loc
		}
	}
}

// NewCachingCandleRepository wraps inner. A nil rdb disables caching.
func NewCachingCandleRepository(rdb redis.Cmdable, inner usecase.CandleRepository, opts ...Option) *CachingCandleRepository {
	c := &CachingCandleRepository{
		inner:       inner,
		rdb:         rdb,
		ttl:         defaultTTL,
		namespace:   defaultNamespace,
		refreshHour: -1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpsertBatch writes through to inner and then bumps the generation of every
// (symbol, interval) pair touched.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if err := c.inner.UpsertBatch(ctx, candles); err != nil {
		return err
	}
	if c.rdb == nil || len(candles) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	for _, cd := range candles {
		gk := c.generationKey(cd.Symbol, cd.Interval)
		if _, ok := seen[gk]; ok {
			continue
		}
		seen[gk] = struct{}{}
		if err := c.rdb.Incr(ctx, gk).Err(); err != nil {
			// 失敗しても書き込み自体は成功しているので処理は続ける
			slog.WarnContext(ctx, "cache invalidation failed", "key", gk, "error", err)
		}
	}
	return nil
}

// Find serves from Redis when possible and fills the cache on a miss.
// Redis failures degrade to a direct read.
func (c *CachingCandleRepository) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, interval, outputsize)
	}

	gen, err := c.generation(ctx, symbol, interval)
	if err != nil {
		slog.WarnContext(ctx, "cache unavailable", "error", err)
		return c.inner.Find(ctx, symbol, interval, outputsize)
	}
	key := c.entryKey(symbol, interval, gen, outputsize)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Find(ctx, symbol, interval, outputsize)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.entryTTL()).Err(); err != nil {
			slog.DebugContext(ctx, "cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

func (c *CachingCandleRepository) generation(ctx context.Context, symbol, interval string) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.generationKey(symbol, interval)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *CachingCandleRepository) entryTTL() time.Duration {
	if c.refreshHour < 0 {
		return c.ttl
	}
	return min(c.ttl, TimeUntilNext(c.now(), c.refreshHour, c.refreshLoc))
}

// entryKey は "candles:Tesla:Daily:g3:200" の形式です。
func (c *CachingCandleRepository) entryKey(symbol, interval string, gen int64, outputsize int) string {
	return fmt.Sprintf("%s:%s:%s:g%d:%d", c.namespace, safe(symbol), safe(interval), gen, outputsize)
}

// generationKey は "candles:gen:Tesla:Daily" の形式です。
func (c *CachingCandleRepository) generationKey(symbol, interval string) string {
	return fmt.Sprintf("%s:gen:%s:%s", c.namespace, safe(symbol), safe(interval))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	return strings.NewReplacer(" ", "_", ":", "_").Replace(s)
}
