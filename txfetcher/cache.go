package txfetcher

import (
	"sync"
	"time"

	"github.com/huynhtastic/programmingbitcoin/wire"
	"github.com/jellydator/ttlcache/v3"
)

// CacheKey identifies a transaction on a network.
type CacheKey struct {
	Net  wire.BitcoinNet
	TxID string
}

// Cache stores the legacy serialization of fetched transactions.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the serialized transaction stored under key. found is
	// false when the key is not in the cache.
	Get(key CacheKey) (raw []byte, found bool, err error)

	// Put stores the serialized transaction under key.
	Put(key CacheKey, raw []byte) error

	// Close releases the resources held by the cache.
	Close() error
}

// MemoryCache is a Cache kept in memory. Entries expire after the TTL the
// cache was created with.
type MemoryCache struct {
	cache     *ttlcache.Cache[CacheKey, []byte]
	closeOnce sync.Once
}

// NewMemoryCache returns a MemoryCache whose entries live for ttl. A ttl of
// zero keeps entries until the cache is closed.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	mc := &MemoryCache{
		cache: ttlcache.New[CacheKey, []byte](
			ttlcache.WithTTL[CacheKey, []byte](ttl),
			ttlcache.WithDisableTouchOnHit[CacheKey, []byte](),
		),
	}
	go mc.cache.Start()
	return mc
}

// Get is part of the Cache interface.
func (mc *MemoryCache) Get(key CacheKey) ([]byte, bool, error) {
	item := mc.cache.Get(key)
	if item == nil {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

// Put is part of the Cache interface.
func (mc *MemoryCache) Put(key CacheKey, raw []byte) error {
	mc.cache.Set(key, append([]byte(nil), raw...), ttlcache.DefaultTTL)
	return nil
}

// Len returns the number of cached transactions.
func (mc *MemoryCache) Len() int {
	return mc.cache.Len()
}

// Close is part of the Cache interface. It stops the expiration goroutine.
func (mc *MemoryCache) Close() error {
	mc.closeOnce.Do(mc.cache.Stop)
	return nil
}
