package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

type IToken interface {
	// TotalSupply Returns the amount of asset in existence
	TotalSupply(asset string) (*big.Int, error)

	// BalanceOf Returns the asset balance of the account
	BalanceOf(account ethcommon.Address, asset string) (*big.Int, error)

	// Transfer moves `value` of asset from the caller's account to `recipient`
	Transfer(recipient ethcommon.Address, asset string, value *big.Int) error

	// Collect moves `value` of asset from `sender` to the calling system contract,
	// it is the value-bearing part of a call made by `sender`
	Collect(sender ethcommon.Address, asset string, value *big.Int) error
}
