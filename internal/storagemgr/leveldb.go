package storagemgr

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

type leveldbStorage struct {
	db           *leveldb.DB
	writeOptions *opt.WriteOptions
}

func NewLeveldb(p string, cacheMegabytes int, sync bool) (Storage, error) {
	if cacheMegabytes <= 0 {
		cacheMegabytes = 8
	}
	db, err := leveldb.OpenFile(p, &opt.Options{
		BlockCacheCapacity: cacheMegabytes * opt.MiB,
		WriteBuffer:        cacheMegabytes * opt.MiB / 2,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %s", p)
	}
	return &leveldbStorage{
		db:           db,
		writeOptions: &opt.WriteOptions{Sync: sync},
	}, nil
}

// NewMemory returns a leveldb instance backed by memory, nothing survives Close.
func NewMemory() Storage {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		panic(errors.Wrap(err, "open memory leveldb"))
	}
	return &leveldbStorage{
		db:           db,
		writeOptions: &opt.WriteOptions{},
	}
}

// The kv layer has no error path for single operations, an io failure here
// means the underlying files are gone and continuing would corrupt the ledger.
func (l *leveldbStorage) Get(key []byte) []byte {
	val, err := l.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		panic(err)
	}
	return val
}

func (l *leveldbStorage) NewBatch() Batch {
	return &leveldbBatch{
		db:    l,
		batch: new(leveldb.Batch),
	}
}

func (l *leveldbStorage) Close() error {
	return l.db.Close()
}

type leveldbBatch struct {
	db    *leveldbStorage
	batch *leveldb.Batch
}

func (b *leveldbBatch) Put(key, value []byte) {
	b.batch.Put(key, value)
}

func (b *leveldbBatch) Delete(key []byte) {
	b.batch.Delete(key)
}

func (b *leveldbBatch) Commit() {
	if err := b.db.db.Write(b.batch, b.db.writeOptions); err != nil {
		panic(err)
	}
}
