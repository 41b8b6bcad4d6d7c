// Package cache provides the process-local response cache that fronts the
// catalog proxy and the title-list endpoint. The cache is advisory only:
// every caller must behave correctly on a permanent miss.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cinevault/cinevault/internal/models"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinevault_cache_hits_total",
		Help: "Response cache hits",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinevault_cache_misses_total",
		Help: "Response cache misses",
	})
)

// AllTitlesKey caches the full local title list.
const AllTitlesKey = "titles:all"

// TitleKey builds the per-lookup cache key for (external id, kind).
func TitleKey(externalID int64, kind models.MediaKind) string {
	return fmt.Sprintf("title:%d:%s", externalID, kind)
}

// Cache is a time-expiring key/value store. An expired entry is never
// returned.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Delete(key string)
}

// TTLCache backs the Cache interface with an in-memory store applying a
// uniform time-to-live to every entry.
type TTLCache struct {
	store *gocache.Cache
}

// NewTTLCache creates a cache with the given entry lifetime.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	value, found := c.store.Get(key)
	if found {
		cacheHits.Inc()
	} else {
		cacheMisses.Inc()
	}
	return value, found
}

func (c *TTLCache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

func (c *TTLCache) Delete(key string) {
	c.store.Delete(key)
}

// Noop is a cache that always misses. It stands in for TTLCache in tests:
// per the advisory-only contract this must not change behavior.
type Noop struct{}

func (Noop) Get(string) (interface{}, bool) { return nil, false }
func (Noop) Set(string, interface{})        {}
func (Noop) Delete(string)                  {}
