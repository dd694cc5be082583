package types

import (
	"github.com/pkg/errors"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/unbonding"
)

// error codes returned in the json-rpc error object
const (
	ErrCodeInternal = -32000

	ErrCodeInvalidParams = -32602
)

const (
	ErrCodeInvalidAmount = iota + 1
	ErrCodeUnsupportedAsset
	ErrCodeInsufficientBalance
	ErrCodeNothingToClaim
	ErrCodeTransferFailure
	ErrCodeReentrantCall
	ErrCodeTooManyUnbondingEntries
	ErrCodeMaturityEpochOverflow
)

var errorCodes = []struct {
	kind error
	code int
}{
	{kind: unbonding.ErrInvalidAmount, code: ErrCodeInvalidAmount},
	{kind: unbonding.ErrUnsupportedAsset, code: ErrCodeUnsupportedAsset},
	{kind: unbonding.ErrInsufficientBalance, code: ErrCodeInsufficientBalance},
	{kind: unbonding.ErrNothingToClaim, code: ErrCodeNothingToClaim},
	{kind: common.ErrReentrantCall, code: ErrCodeReentrantCall},
	{kind: unbonding.ErrTransferFailure, code: ErrCodeTransferFailure},
	{kind: unbonding.ErrTooManyUnbondingEntries, code: ErrCodeTooManyUnbondingEntries},
	{kind: unbonding.ErrMaturityEpochOverflow, code: ErrCodeMaturityEpochOverflow},
}

// LedgerError is an API error that carries the json-rpc error code of its kind.
type LedgerError struct {
	err  error
	code int
}

func (e *LedgerError) Error() string {
	return e.err.Error()
}

func (e *LedgerError) ErrorCode() int {
	return e.code
}

func (e *LedgerError) Unwrap() error {
	return e.err
}

// NewLedgerError wraps err with the error code of its kind, nil stays nil.
func NewLedgerError(err error) error {
	if err == nil {
		return nil
	}
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.kind) {
			return &LedgerError{err: err, code: c.code}
		}
	}
	return &LedgerError{err: err, code: ErrCodeInternal}
}

func NewInvalidParamsError(format string, args ...any) error {
	return &LedgerError{err: errors.Errorf(format, args...), code: ErrCodeInvalidParams}
}
