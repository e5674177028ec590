package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched rate stays valid.
const DefaultTTL = 24 * time.Hour

type pair struct {
	from string
	to   string
}

type entry struct {
	rate      float64
	fetchedAt time.Time
}

// RateCache caches currency-pair rates for a TTL and refreshes them from the
// provider on expiry. Lookups never fail: any provider error falls back to a
// parity rate of 1.0, which is cached like a real rate so that a stats
// request never stalls or errors on an unreachable provider.
type RateCache struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[pair]entry
	group   singleflight.Group
}

// NewRateCache creates a cache over the given provider with DefaultTTL.
func NewRateCache(provider Provider) *RateCache {
	return &RateCache{
		provider: provider,
		ttl:      DefaultTTL,
		now:      time.Now,
		entries:  make(map[pair]entry),
	}
}

// Rate returns the multiplier converting one unit of from into to.
// Identical currencies never touch the cache or the provider.
func (c *RateCache) Rate(ctx context.Context, from, to string) float64 {
	if from == to {
		return 1.0
	}

	key := pair{from: from, to: to}
	if rate, ok := c.fresh(key); ok {
		return rate
	}

	// Concurrent lookups for the same expired pair share one fetch.
	v, _, _ := c.group.Do(from+"/"+to, func() (interface{}, error) {
		if rate, ok := c.fresh(key); ok {
			return rate, nil
		}
		return c.fetch(ctx, key), nil
	})
	return v.(float64)
}

func (c *RateCache) fresh(key pair) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		return 0, false
	}
	return e.rate, true
}

// fetch asks the provider and records the result. A failed fetch records the
// parity fallback with a fresh timestamp, so an outage sticks for one TTL
// window rather than hammering the provider on every request.
func (c *RateCache) fetch(ctx context.Context, key pair) float64 {
	fetchCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	rate, err := c.provider.Convert(fetchCtx, key.from, key.to)
	if err != nil {
		log.Warnf("exchange: using parity rate for %s/%s: %v", key.from, key.to, err)
		rate = 1.0
	}

	c.mu.Lock()
	c.entries[key] = entry{rate: rate, fetchedAt: c.now()}
	c.mu.Unlock()
	return rate
}
