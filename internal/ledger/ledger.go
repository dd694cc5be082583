package ledger

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// StateLedger manipulates the contract state data. Writes stay in memory
// until Commit flushes them into the backend storage in one batch.
type StateLedger interface {
	// GetState returns whether the key exists and its value
	GetState(addr ethcommon.Address, key []byte) (bool, []byte)

	// SetState sets the value of key, a nil value deletes the key
	SetState(addr ethcommon.Address, key []byte, value []byte)

	// Snapshot returns an identifier for the current revision of the state
	Snapshot() int

	// RevertToSnapshot reverts all state changes made since the given revision
	RevertToSnapshot(int)

	// Finalise drops the journal, the changes can no longer be reverted
	Finalise()

	// Commit flushes the finalised changes into the backend storage
	Commit() (uint64, error)

	// Clear drops all uncommitted changes
	Clear()

	// Version returns the number of commits applied to the backend storage
	Version() uint64

	Close()
}
