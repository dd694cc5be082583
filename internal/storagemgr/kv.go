package storagemgr

// Storage is the raw key-value store beneath the state ledger.
// A nil value returned by Get means the key does not exist. All writes go
// through a Batch so that one ledger commit lands atomically.
type Storage interface {
	Get(key []byte) []byte
	NewBatch() Batch
	Close() error
}

// Batch buffers writes until Commit applies them atomically.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
	Commit()
}
