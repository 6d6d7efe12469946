// Package cache keeps short-lived aggregate responses in memory. Entries are
// keyed by resource path and dropped whenever that resource changes.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const dashboardKey = "dashboard"

type StatsCache struct {
	items *gocache.Cache
}

// New caches entries for ttl; a non-positive ttl disables caching.
func New(ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		return &StatsCache{}
	}
	return &StatsCache{items: gocache.New(ttl, 2*ttl)}
}

func (c *StatsCache) Get(resource string) (any, bool) {
	if c == nil || c.items == nil {
		return nil, false
	}
	return c.items.Get(resource)
}

func (c *StatsCache) Set(resource string, value any) {
	if c == nil || c.items == nil {
		return
	}
	c.items.SetDefault(resource, value)
}

// Invalidate drops the cached stats of resource and the dashboard summary
// that aggregates across resources.
func (c *StatsCache) Invalidate(resource string) {
	if c == nil || c.items == nil {
		return
	}
	c.items.Delete(resource)
	c.items.Delete(dashboardKey)
}

func (c *StatsCache) Dashboard() (any, bool) {
	return c.Get(dashboardKey)
}

func (c *StatsCache) SetDashboard(value any) {
	c.Set(dashboardKey, value)
}
