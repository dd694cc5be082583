package executor

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/framework"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/unbonding"
	"github.com/axiomesh/unbonding-ledger/pkg/events"
)

type Executor interface {
	Start() error

	Stop() error

	Lock(from ethcommon.Address, asset string, amount *big.Int) error

	Unlock(from ethcommon.Address, asset string, amount *big.Int) (*unbonding.UnlockedDescriptor, error)

	Claim(from ethcommon.Address, asset string) (*big.Int, error)

	TurnIntoNewEpoch() (framework.EpochInfo, error)

	CurrentEpochInfo() (framework.EpochInfo, error)

	GetPosition(holder ethcommon.Address, asset string) (*big.Int, error)

	GetUnbondingQueue(holder ethcommon.Address, asset string) ([]unbonding.UnbondingEntry, error)

	GetUnlockingAmount(holder ethcommon.Address, asset string) (*big.Int, error)

	GetClaimableAmount(holder ethcommon.Address, asset string) (*big.Int, error)

	TotalLocked(asset string) (*big.Int, error)

	TotalUnbonding(asset string) (*big.Int, error)

	BalanceOf(account ethcommon.Address, asset string) (*big.Int, error)

	SupportedAssets() []string

	Version() uint64

	SubscribeExecutedEvent(chan<- events.ExecutedEvent) event.Subscription
}
