package storagemgr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

func TestInitializeWrongType(t *testing.T) {
	repoConfig := &repo.Config{Storage: repo.Storage{
		KvType:      "unsupport",
		Sync:        false,
		KvCacheSize: repo.KVStorageCacheSize,
	}}
	err := Initialize(repoConfig)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknow kv type unsupport")
}

func TestOpen(t *testing.T) {
	testcase := map[string]struct {
		kvType string
	}{
		"leveldb": {kvType: repo.KVStorageTypeLeveldb},
		"memory":  {kvType: repo.KVStorageTypeMemory},
	}
	for name, tc := range testcase {
		t.Run(name, func(t *testing.T) {
			rep := repo.MockRepo(t)
			rep.Config.Storage.KvType = tc.kvType
			require.Nil(t, Initialize(rep.Config))

			p := GetLedgerComponentPath(rep, Ledger)
			s, err := Open(p)
			require.Nil(t, err)
			require.NotNil(t, s)

			same, err := Open(p)
			require.Nil(t, err)
			require.True(t, s == same)

			batch := s.NewBatch()
			batch.Put([]byte("k"), []byte("v"))
			batch.Commit()
			require.EqualValues(t, []byte("v"), s.Get([]byte("k")))
			require.Nil(t, Close(p))
			require.Nil(t, Close(p))

			if tc.kvType == repo.KVStorageTypeLeveldb {
				reopened, err := Open(p)
				require.Nil(t, err)
				require.EqualValues(t, []byte("v"), reopened.Get([]byte("k")))
				require.Nil(t, Close(p))
			}
		})
	}
}
