package unbonding

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -destination mock_unbonding/mock_unbonding.go -package mock_unbonding -source types.go -typed

// EpochOracle supplies the current monotonically increasing epoch number.
type EpochOracle interface {
	CurrentEpoch() (uint64, error)
}

// TransferExecutor moves asset amounts between the ledger vault and holders,
// a returned error aborts the whole operation.
type TransferExecutor interface {
	// Transfer pays amount of asset from the vault to the recipient
	Transfer(to ethcommon.Address, asset string, amount *big.Int) error

	// Collect takes amount of asset from the holder into the vault
	Collect(from ethcommon.Address, asset string, amount *big.Int) error
}

type UnbondingEntry struct {
	MaturityEpoch uint64   `json:"maturity_epoch"`
	Amount        *big.Int `json:"amount"`
}

// UnlockedDescriptor is returned by Unlock, it is not persisted.
type UnlockedDescriptor struct {
	Asset         string
	MaturityEpoch uint64
	Amount        *big.Int
}

type holderAsset struct {
	Holder ethcommon.Address
	Asset  string
}

func (k holderAsset) String() string {
	return fmt.Sprintf("%s_%s", k.Holder.Hex(), k.Asset)
}
