package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"alphaview/internal/model"
)

const redisPrefix = "alphaview:chart:"

// Redis is a Store backed by a Redis server, for setups where several
// dashboard processes should share one response cache. Expiry is enforced
// server-side through the key TTL. Any Redis failure degrades to a cache
// miss; the cache is an optimization, never a dependency.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis builds a Redis store. A non-positive TTL falls back to
// DefaultTTL.
func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (*model.Chart, bool) {
	data, err := r.client.Get(ctx, redisPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] redis cache get %s: %v", key, err)
		}
		return nil, false
	}
	var chart model.Chart
	if err := json.Unmarshal([]byte(data), &chart); err != nil {
		log.Printf("[WARN] redis cache decode %s: %v", key, err)
		return nil, false
	}
	return &chart, true
}

func (r *Redis) Set(ctx context.Context, key string, chart *model.Chart) {
	data, err := json.Marshal(chart)
	if err != nil {
		log.Printf("[WARN] redis cache encode %s: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, redisPrefix+key, data, r.ttl).Err(); err != nil {
		log.Printf("[WARN] redis cache set %s: %v", key, err)
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error { return r.client.Close() }
