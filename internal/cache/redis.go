package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/config"
	"github.com/buzzblog/backend/pkg/logging"
)

const namespace = "buzzblog"

// Cache holds relation counts in Redis. A nil *Cache is a valid, disabled
// cache: reads miss and writes are dropped.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis cache client
func New(cfg *config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return NewWithClient(client, cfg.CountTTL), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Count returns the cached count for q, if any. gen is the domain
// generation the lookup was made under; pass it to SetCount after counting
// from the store. A negative gen means the cache could not be read.
func (c *Cache) Count(ctx context.Context, q models.UniquepairQuery) (n int64, gen int64, ok bool) {
	if c == nil || c.client == nil {
		return 0, -1, false
	}
	gen, err := c.generation(ctx, q.Domain)
	if err != nil {
		logging.WithComponent("cache").Warn("Generation lookup failed", zap.Error(err))
		return 0, -1, false
	}
	n, err = c.client.Get(ctx, c.countKey(q.Domain, gen, q.FirstElem, q.SecondElem)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.WithComponent("cache").Warn("Count lookup failed", zap.Error(err))
		}
		return 0, gen, false
	}
	return n, gen, true
}

// SetCount caches the count for q under generation gen. If the domain was
// invalidated since gen was read, the entry lands under a retired key and is
// never served.
func (c *Cache) SetCount(ctx context.Context, q models.UniquepairQuery, gen, n int64) {
	if c == nil || c.client == nil || gen < 0 {
		return
	}
	if err := c.client.Set(ctx, c.countKey(q.Domain, gen, q.FirstElem, q.SecondElem), n, c.ttl).Err(); err != nil {
		logging.WithComponent("cache").Warn("Count store failed", zap.Error(err))
	}
}

// Invalidate retires every cached count of p's domain
func (c *Cache) Invalidate(ctx context.Context, p *models.Uniquepair) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, c.generationKey(p.Domain)).Err(); err != nil {
		logging.WithComponent("cache").Warn("Count invalidation failed", zap.Error(err))
	}
}

func (c *Cache) generation(ctx context.Context, domain string) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(domain)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health
func (c *Cache) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) countKey(domain string, gen int64, first, second *int64) string {
	return c.namespaceKey("count:" + HashKey(domain, strconv.FormatInt(gen, 10), elem(first), elem(second)))
}

func (c *Cache) generationKey(domain string) string {
	return c.namespaceKey("gen:" + HashKey(domain))
}

func (c *Cache) namespaceKey(key string) string {
	return namespace + ":" + key
}

func elem(v *int64) string {
	if v == nil {
		return "*"
	}
	return strconv.FormatInt(*v, 10)
}

// HashKey returns a fixed-length key for the given parts
func HashKey(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

var (
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = fmt.Errorf("cache is disabled")
)
