// README: Quote cache backed by Redis, keyed on rounded trip coordinates.
package rapido

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const quoteKeyPrefix = "quotes:rapido:%s"

var ErrCacheMiss = errors.New("quote cache miss")

// CacheKey identifies a trip to ~100m precision plus the requested vehicle.
func CacheKey(req FareRequest) string {
	vehicle := strings.ToLower(req.VehicleType)
	if vehicle == "" {
		vehicle = "any"
	}
	base := fmt.Sprintf("%.3f:%.3f:%.3f:%.3f:%s",
		req.Pickup.Lat, req.Pickup.Lng, req.Dropoff.Lat, req.Dropoff.Lng, vehicle)
	sum := sha1.Sum([]byte(base))
	return "cabsync_" + hex.EncodeToString(sum[:])[:12]
}

type QuoteCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewQuoteCache(redis *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{redis: redis, ttl: ttl}
}

func (c *QuoteCache) Get(ctx context.Context, key string) ([]RideQuote, error) {
	val, err := c.redis.Get(ctx, quoteKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var rides []RideQuote
	if err := json.Unmarshal(val, &rides); err != nil {
		return nil, fmt.Errorf("decode cached quotes: %w", err)
	}
	return rides, nil
}

func (c *QuoteCache) Set(ctx context.Context, key string, rides []RideQuote) error {
	val, err := json.Marshal(rides)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, quoteKey(key), val, c.ttl).Err()
}

func quoteKey(key string) string {
	return fmt.Sprintf(quoteKeyPrefix, key)
}
