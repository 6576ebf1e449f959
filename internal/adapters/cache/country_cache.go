package cache

import (
	"fmt"
	"strings"

	"countrypulse/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoCountryCache memoizes single-country lookups. Keys are lower-cased
// so hits follow the same case-insensitive identity the store uses. The whole
// cache is dropped after every committed refresh.
type RistrettoCountryCache struct {
	cache *ristretto.Cache
}

func NewCountryCache(maxItems int64) (*RistrettoCountryCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create country cache failed: %w", err)
	}
	return &RistrettoCountryCache{cache: c}, nil
}

func (c *RistrettoCountryCache) Get(name string) (domain.Country, bool) {
	if v, ok := c.cache.Get(toKey(name)); ok {
		country, ok := v.(domain.Country)
		return country, ok
	}
	return domain.Country{}, false
}

func (c *RistrettoCountryCache) Set(name string, country domain.Country) {
	c.cache.Set(toKey(name), country, 1)
	c.cache.Wait()
}

func (c *RistrettoCountryCache) Delete(name string) {
	c.cache.Del(toKey(name))
}

func (c *RistrettoCountryCache) Clear() {
	c.cache.Clear()
}

func (c *RistrettoCountryCache) Close() { c.cache.Close() }

func toKey(name string) string { return strings.ToLower(name) }
