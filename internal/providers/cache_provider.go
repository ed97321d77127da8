package providers

import (
	"rankwatch/internal/structures"
	"time"

	"github.com/coocood/freecache"
)

// CacheProviderInterface holds raw response bodies for a short time so that
// repeated leaderboard lookups inside one TTL window hit memory.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type CacheProvider struct {
	store *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Leaderboard cache disabled")
		return &noopCache{}
	}

	ttl := cacheTTLSeconds(conf)
	logger.Infof(TypeApp, "Leaderboard cache: %dMB, ttl %ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		store: freecache.NewCache(conf.Cache.Size << 20),
		ttl:   ttl,
	}
}

// cacheTTLSeconds rounds the configured TTL down to whole seconds, never below one.
func cacheTTLSeconds(conf *structures.Config) int {
	return max(int(conf.Leaderboard.CacheTTL/time.Second), 1)
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.store.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.store.Set([]byte(key), value, c.ttl)
}

func (c *CacheProvider) Delete(key string) {
	c.store.Del([]byte(key))
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Delete(_ string)             {}
