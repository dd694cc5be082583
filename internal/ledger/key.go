package ledger

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
)

const (
	stateKey   = "state-"
	versionKey = "ledger-version"
)

func compositeStorageKey(addr ethcommon.Address, key []byte) []byte {
	return append(append([]byte(stateKey), addr.Bytes()...), key...)
}

func dirtyKey(addr ethcommon.Address, key []byte) string {
	return string(compositeStorageKey(addr, key))
}
