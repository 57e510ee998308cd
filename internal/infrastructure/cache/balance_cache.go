package cache

import (
	"time"

	"github.com/DanielPopoola/walletgate/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// BalanceCache is the in-process TTL store behind the balance engine.
// Entries expire on their own; the orchestrator additionally deletes them
// after every ledger mutation.
type BalanceCache struct {
	store *gocache.Cache
}

func NewBalanceCache(defaultTTL, cleanupInterval time.Duration) *BalanceCache {
	return &BalanceCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *BalanceCache) Get(key string) (domain.Money, bool) {
	value, ok := c.store.Get(key)
	if !ok {
		return domain.Money{}, false
	}

	balance, ok := value.(domain.Money)
	return balance, ok
}

func (c *BalanceCache) Set(key string, balance domain.Money, ttl time.Duration) {
	c.store.Set(key, balance, ttl)
}

func (c *BalanceCache) Delete(key string) {
	c.store.Delete(key)
}
