package routing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"periplus/internal/cost"
	"periplus/internal/logger"
	"periplus/internal/metrics"
)

// TableCache stores provider-built cost tables in redis so repeated solves
// of the same coordinate set skip the N(N-1) provider fetches. A nil client
// disables caching.
type TableCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTableCache(client *redis.Client, ttl time.Duration) *TableCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TableCache{client: client, ttl: ttl}
}

type cachedTable struct {
	Dimension int   `json:"dimension"`
	Weights   []int `json:"weights"`
}

// Key digests the provider, vehicle type and ordered coordinate list.
func (c *TableCache) Key(provider, vehicleType string, coordinates []string) string {
	sum := sha256.Sum256([]byte(provider + "|" + vehicleType + "|" + strings.Join(coordinates, ";")))
	return "periplus:table:" + hex.EncodeToString(sum[:])
}

// Get returns a cached table, or nil on miss or when caching is disabled.
func (c *TableCache) Get(ctx context.Context, key string) *cost.Table {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.L().Warn("table_cache_get_error", "err", err)
		}
		metrics.TableCacheMissesTotal.Inc()
		return nil
	}
	var cached cachedTable
	if err := json.Unmarshal(raw, &cached); err != nil || cached.Dimension <= 0 || len(cached.Weights) != cached.Dimension*cached.Dimension {
		metrics.TableCacheMissesTotal.Inc()
		return nil
	}
	table, err := cost.NewTable(cached.Dimension)
	if err != nil {
		return nil
	}
	for i := 0; i < cached.Dimension; i++ {
		for j := 0; j < cached.Dimension; j++ {
			if i == j {
				continue
			}
			if err := table.Set(i, j, cached.Weights[i*cached.Dimension+j]); err != nil {
				metrics.TableCacheMissesTotal.Inc()
				return nil
			}
		}
	}
	metrics.TableCacheHitsTotal.Inc()
	return table
}

// Put stores a table; failures are logged and otherwise ignored.
func (c *TableCache) Put(ctx context.Context, key string, table *cost.Table) {
	if c == nil || c.client == nil || table == nil {
		return
	}
	n := table.Dimension()
	cached := cachedTable{Dimension: n, Weights: make([]int, 0, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cached.Weights = append(cached.Weights, table.At(i, j))
		}
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.L().Warn("table_cache_put_error", "err", err)
	}
}

// OpenRedisFromEnv opens a redis client from REDIS_HOST / REDIS_PORT /
// REDIS_PASS / REDIS_DB, or returns nil when no host is configured.
func OpenRedisFromEnv() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	return redis.NewClient(&redis.Options{Addr: host + ":" + port, Password: os.Getenv("REDIS_PASS"), DB: db})
}
