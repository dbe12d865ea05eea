package market

import (
	"context"
	"sync"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// Cache is the write-once-per-venue Markets Cache. The first loadMarkets
// call for a venue stores the result, including an empty map on failure;
// every later access reads the cached value. There is no TTL: a process
// restart is the only refresh.
type Cache struct {
	mu       sync.Mutex
	once     map[venue.ID]*sync.Once
	data     map[venue.ID]map[Symbol]MarketMeta
	adapters map[venue.ID]venue.Adapter
}

// NewCache builds a Cache over the given venue adapters.
func NewCache(adapters map[venue.ID]venue.Adapter) *Cache {
	once := make(map[venue.ID]*sync.Once, len(adapters))
	for id := range adapters {
		once[id] = &sync.Once{}
	}
	return &Cache{
		once:     once,
		data:     make(map[venue.ID]map[Symbol]MarketMeta, len(adapters)),
		adapters: adapters,
	}
}

// Markets returns the cached market metadata for venue v, loading it on
// first access. Concurrent callers for the same venue block until the
// single winning loadMarkets call completes.
func (c *Cache) Markets(ctx context.Context, v venue.ID) map[Symbol]MarketMeta {
	c.mu.Lock()
	once, ok := c.once[v]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	once.Do(func() {
		adapter := c.adapters[v]
		meta, err := adapter.LoadMarkets(ctx)
		c.mu.Lock()
		if err != nil || meta == nil {
			c.data[v] = map[Symbol]MarketMeta{}
		} else {
			c.data[v] = meta
		}
		c.mu.Unlock()
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[v]
}

// Loaded reports whether venue v's markets have already been fetched.
func (c *Cache) Loaded(v venue.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[v]
	return ok
}
