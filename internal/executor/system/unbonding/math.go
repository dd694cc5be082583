package unbonding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// every stored amount fits in an uint256
func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 || amount.Cmp(math.MaxBig256) > 0 {
		return errors.Wrapf(ErrInvalidAmount, "amount %v", amount)
	}
	return nil
}

func checkedAdd(a, b *big.Int) (*big.Int, error) {
	res := new(big.Int).Add(a, b)
	if res.Cmp(math.MaxBig256) > 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%s + %s overflows", a, b)
	}
	return res, nil
}

func checkedSub(a, b *big.Int) (*big.Int, error) {
	res := new(big.Int).Sub(a, b)
	if res.Sign() < 0 {
		return nil, errors.Wrapf(ErrInsufficientBalance, "%s - %s underflows", a, b)
	}
	return res, nil
}
