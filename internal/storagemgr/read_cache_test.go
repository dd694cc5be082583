package storagemgr

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var (
	vault       = "0x0000000000000000000000000000000000001007"
	positionKey = []byte(vault + "positions_" + repo.DefaultAccounts[0] + "_" + repo.DefaultAsset)
	queueLenKey = []byte(vault + "unbonding_" + repo.DefaultAccounts[0] + "_" + repo.DefaultAsset + "_len")
)

func commit(s Storage, puts map[string][]byte, deletes ...[]byte) {
	batch := s.NewBatch()
	for k, v := range puts {
		batch.Put([]byte(k), v)
	}
	for _, k := range deletes {
		batch.Delete(k)
	}
	batch.Commit()
}

func TestReadCache_MissThenHit(t *testing.T) {
	backend := NewMemory()
	commit(backend, map[string][]byte{string(positionKey): []byte(`500`)})
	c := NewReadCache(backend, 1)
	defer c.Close()

	hits, misses := testutil.ToFloat64(readCacheHitCounter), testutil.ToFloat64(readCacheMissCounter)
	assert.Equal(t, []byte(`500`), c.Get(positionKey))
	assert.Equal(t, misses+1, testutil.ToFloat64(readCacheMissCounter))

	assert.Equal(t, []byte(`500`), c.Get(positionKey))
	assert.Equal(t, hits+1, testutil.ToFloat64(readCacheHitCounter))
	assert.Equal(t, misses+1, testutil.ToFloat64(readCacheMissCounter))
}

func TestReadCache_AbsentKey(t *testing.T) {
	c := NewReadCache(NewMemory(), 1)
	defer c.Close()

	misses := testutil.ToFloat64(readCacheMissCounter)
	assert.Nil(t, c.Get(queueLenKey))
	assert.Nil(t, c.Get(queueLenKey))
	assert.Equal(t, misses+1, testutil.ToFloat64(readCacheMissCounter))

	// the cached absence is replaced on commit
	commit(c, map[string][]byte{string(queueLenKey): []byte(`2`)})
	assert.Equal(t, []byte(`2`), c.Get(queueLenKey))

	commit(c, nil, queueLenKey)
	assert.Nil(t, c.Get(queueLenKey))
	assert.Nil(t, c.backend.Get(queueLenKey))

	// an empty value is a deletion
	commit(c, map[string][]byte{string(positionKey): []byte(`1`)})
	commit(c, map[string][]byte{string(positionKey): {}})
	assert.Nil(t, c.Get(positionKey))
	assert.Nil(t, c.backend.Get(positionKey))
}

func TestReadCache_UncommittedBatch(t *testing.T) {
	c := NewReadCache(NewMemory(), 1)
	defer c.Close()
	commit(c, map[string][]byte{string(positionKey): []byte(`300`)})

	batch := c.NewBatch()
	batch.Put(positionKey, []byte(`100`))
	batch.Delete(queueLenKey)
	assert.Equal(t, []byte(`300`), c.Get(positionKey))
}

func TestReadCache_Reopen(t *testing.T) {
	p := repo.GetStoragePath(t.TempDir(), Ledger)
	backend, err := NewLeveldb(p, repo.KVStorageCacheSize, repo.KVStorageSync)
	require.Nil(t, err)
	c := NewReadCache(backend, 1)
	commit(c, map[string][]byte{
		string(positionKey): []byte(`300`),
		string(queueLenKey): []byte(`2`),
	})
	commit(c, nil, queueLenKey)
	require.Nil(t, c.Close())

	backend, err = NewLeveldb(p, repo.KVStorageCacheSize, repo.KVStorageSync)
	require.Nil(t, err)
	c = NewReadCache(backend, 1)
	defer c.Close()
	assert.Equal(t, []byte(`300`), c.Get(positionKey))
	assert.Nil(t, c.Get(queueLenKey))
}
