package storagemgr

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

const (
	Ledger = "ledger"
)

type storageBuilder func(p string) (Storage, error)

var globalStorageMgr = &storageMgr{
	storageBuilderMap: make(map[string]storageBuilder),
	storages:          make(map[string]Storage),
	lock:              new(sync.Mutex),
}

func init() {
	memoryBuilder := func(p string) (Storage, error) {
		return NewMemory(), nil
	}

	// only for test
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeMemory] = memoryBuilder
	globalStorageMgr.storageBuilderMap[""] = memoryBuilder
}

type storageMgr struct {
	storageBuilderMap map[string]storageBuilder
	storages          map[string]Storage
	defaultKVType     string
	cacheSize         int
	lock              *sync.Mutex
}

func (m *storageMgr) open(typ string, p string) (Storage, error) {
	builder, ok := m.storageBuilderMap[typ]
	if !ok {
		return nil, fmt.Errorf("unknow kv type %s, expect leveldb or memory", typ)
	}
	return builder(p)
}

func Initialize(repoConfig *repo.Config) error {
	cacheSize := repoConfig.Storage.KvCacheSize
	sync := repoConfig.Storage.Sync
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = func(p string) (Storage, error) {
		return NewLeveldb(p, cacheSize, sync)
	}
	if _, ok := globalStorageMgr.storageBuilderMap[repoConfig.Storage.KvType]; !ok {
		return fmt.Errorf("unknow kv type %s, expect leveldb or memory", repoConfig.Storage.KvType)
	}
	globalStorageMgr.defaultKVType = repoConfig.Storage.KvType
	globalStorageMgr.cacheSize = cacheSize
	loggers.Logger(loggers.Storage).WithFields(map[string]any{
		"kv_type":    repoConfig.Storage.KvType,
		"cache_size": cacheSize,
		"sync":       sync,
	}).Info("Storage manager initialized")
	return nil
}

// Open returns the storage at p wrapped with the read cache, one instance per path.
func Open(p string) (Storage, error) {
	return OpenSpecifyType(globalStorageMgr.defaultKVType, p)
}

func OpenSpecifyType(typ string, p string) (Storage, error) {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	s, ok := globalStorageMgr.storages[p]
	if !ok {
		raw, err := globalStorageMgr.open(typ, p)
		if err != nil {
			return nil, err
		}
		s = NewReadCache(raw, globalStorageMgr.cacheSize)
		globalStorageMgr.storages[p] = s
	}
	return s, nil
}

// Close closes the storage opened at p and forgets it, a later Open reopens the files.
func Close(p string) error {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	s, ok := globalStorageMgr.storages[p]
	if !ok {
		return nil
	}
	delete(globalStorageMgr.storages, p)
	return s.Close()
}

func GetLedgerComponentPath(rep *repo.Repo, component string) string {
	return filepath.Join(repo.GetStoragePath(rep.RepoRoot), component)
}
