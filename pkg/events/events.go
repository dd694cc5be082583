package events

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

const (
	LockedEventName   = "Locked"
	UnlockedEventName = "Unlocked"
	ClaimedEventName  = "Claimed"
)

// Event is emitted by a successful ledger operation.
type Event interface {
	EventName() string
}

type Locked struct {
	Holder ethcommon.Address `json:"holder"`
	Asset  string            `json:"asset"`
	Amount *big.Int          `json:"amount"`
}

func (e *Locked) EventName() string {
	return LockedEventName
}

type Unlocked struct {
	Holder        ethcommon.Address `json:"holder"`
	Asset         string            `json:"asset"`
	Amount        *big.Int          `json:"amount"`
	MaturityEpoch uint64            `json:"maturity_epoch"`
}

func (e *Unlocked) EventName() string {
	return UnlockedEventName
}

type Claimed struct {
	Holder ethcommon.Address `json:"holder"`
	Asset  string            `json:"asset"`
	Amount *big.Int          `json:"amount"`
}

func (e *Claimed) EventName() string {
	return ClaimedEventName
}

// ExecutedEvent is published once the state changes of an operation are committed.
type ExecutedEvent struct {
	Version uint64
	Epoch   uint64
	Events  []Event
}
