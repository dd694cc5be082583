package storagemgr

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	readCacheHitCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "storage",
		Name:      "read_cache_hit_counter",
		Help:      "The number of state reads served by the read cache",
	})

	readCacheMissCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "storage",
		Name:      "read_cache_miss_counter",
		Help:      "The number of state reads that went to the kv backend",
	})
)

func init() {
	prometheus.MustRegister(readCacheHitCounter)
	prometheus.MustRegister(readCacheMissCounter)
}

// ReadCache keeps the committed value of every key the ledger touched in a fastcache.
// A key known to be absent is cached as an empty value, so repeated lookups of
// holders without a position or queue stay off the backend.
type ReadCache struct {
	backend Storage
	cache   *fastcache.Cache
}

func NewReadCache(backend Storage, megabytesLimit int) *ReadCache {
	if megabytesLimit <= 0 {
		megabytesLimit = 128
	}
	return &ReadCache{
		backend: backend,
		cache:   fastcache.New(megabytesLimit * 1024 * 1024),
	}
}

func (c *ReadCache) Get(key []byte) []byte {
	if value, ok := c.cache.HasGet(nil, key); ok {
		readCacheHitCounter.Inc()
		if len(value) == 0 {
			return nil
		}
		return value
	}

	readCacheMissCounter.Inc()
	value := c.backend.Get(key)
	c.cache.Set(key, value)
	return value
}

func (c *ReadCache) NewBatch() Batch {
	return &readCacheBatch{
		batch:   c.backend.NewBatch(),
		cache:   c.cache,
		written: make(map[string][]byte),
	}
}

func (c *ReadCache) Close() error {
	c.cache.Reset()
	return c.backend.Close()
}

// readCacheBatch refreshes the cache only after the backend batch is written,
// a batch that is never committed leaves the cache untouched.
type readCacheBatch struct {
	batch   Batch
	cache   *fastcache.Cache
	written map[string][]byte
}

func (b *readCacheBatch) Put(key, value []byte) {
	if len(value) == 0 {
		b.Delete(key)
		return
	}
	b.written[string(key)] = value
	b.batch.Put(key, value)
}

func (b *readCacheBatch) Delete(key []byte) {
	b.written[string(key)] = nil
	b.batch.Delete(key)
}

func (b *readCacheBatch) Commit() {
	b.batch.Commit()
	for k, v := range b.written {
		b.cache.Set([]byte(k), v)
	}
}
