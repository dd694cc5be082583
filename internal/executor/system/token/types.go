package token

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	ErrValue               = errors.New("input value below zero")
	ErrInsufficientBalance = errors.New("value exceeds balance")
	ErrEmptyAsset          = errors.New("asset is empty")
	ErrNotSystemCall       = errors.New("collect is only allowed for system contract calls")
)

const (
	BalancesStorageKey    = "balances"
	TotalSupplyStorageKey = "totalSupply"
)

type accountAsset struct {
	Account ethcommon.Address
	Asset   string
}

func (k accountAsset) String() string {
	return fmt.Sprintf("%s_%s", k.Account.Hex(), k.Asset)
}
