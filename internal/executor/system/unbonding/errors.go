package unbonding

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrUnsupportedAsset        = errors.New("unsupported asset")
	ErrInsufficientBalance     = errors.New("insufficient locked balance")
	ErrNothingToClaim          = errors.New("nothing to claim")
	ErrTransferFailure         = errors.New("transfer failure")
	ErrTooManyUnbondingEntries = errors.New("too many unbonding entries")

	// the maturity epoch of an unlock does not fit in uint64
	ErrMaturityEpochOverflow = errors.New("maturity epoch overflow")
)
