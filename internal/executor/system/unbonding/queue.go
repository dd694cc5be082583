package unbonding

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
)

const UnbondingQueuesStorageKey = "unbonding"

// Queue keeps the unclaimed unbonding entries of every (holder, asset),
// no two entries of one queue share a maturity epoch.
type Queue struct {
	account common.StateAccount
}

func NewQueue(account common.StateAccount) *Queue {
	return &Queue{
		account: account,
	}
}

func (q *Queue) array(holder ethcommon.Address, asset string) *common.VMArray[UnbondingEntry] {
	return common.NewVMArray[UnbondingEntry](q.account, fmt.Sprintf("%s_%s", UnbondingQueuesStorageKey, holderAsset{Holder: holder, Asset: asset}))
}

func (q *Queue) Entries(holder ethcommon.Address, asset string) ([]UnbondingEntry, error) {
	return q.array(holder, asset).Values()
}

// Insert merges amount into the entry maturing at maturityEpoch, or appends a new one,
// and returns the resulting queue length. At most maxEntries entries may be pending at
// currentEpoch, matured entries waiting for a claim are not counted.
func (q *Queue) Insert(holder ethcommon.Address, asset string, currentEpoch, maturityEpoch uint64, amount *big.Int, maxEntries uint64) (merged bool, length int, err error) {
	arr := q.array(holder, asset)
	entries, err := arr.Values()
	if err != nil {
		return false, 0, err
	}

	existing, idx, found := lo.FindIndexOf(entries, func(e UnbondingEntry) bool {
		return e.MaturityEpoch == maturityEpoch
	})
	if found {
		sum, err := checkedAdd(existing.Amount, amount)
		if err != nil {
			return false, 0, err
		}
		return true, len(entries), arr.Set(uint64(idx), UnbondingEntry{MaturityEpoch: maturityEpoch, Amount: sum})
	}

	if maxEntries != 0 {
		_, pending := partition(entries, currentEpoch)
		if uint64(len(pending)) >= maxEntries {
			return false, 0, errors.Wrapf(ErrTooManyUnbondingEntries, "%s already has %d pending entries of %s", holder, len(pending), asset)
		}
	}
	if err := arr.Push(UnbondingEntry{MaturityEpoch: maturityEpoch, Amount: new(big.Int).Set(amount)}); err != nil {
		return false, 0, err
	}
	return false, len(entries) + 1, nil
}

// Sweep removes every entry matured at currentEpoch and returns them, the pending
// entries keep their order.
func (q *Queue) Sweep(holder ethcommon.Address, asset string, currentEpoch uint64) ([]UnbondingEntry, error) {
	arr := q.array(holder, asset)
	entries, err := arr.Values()
	if err != nil {
		return nil, err
	}
	matured, pending := partition(entries, currentEpoch)
	if len(matured) == 0 {
		return nil, nil
	}
	if err := arr.Reset(pending); err != nil {
		return nil, err
	}
	return matured, nil
}

func partition(entries []UnbondingEntry, currentEpoch uint64) (matured []UnbondingEntry, pending []UnbondingEntry) {
	matured = lo.Filter(entries, func(e UnbondingEntry, _ int) bool {
		return e.MaturityEpoch <= currentEpoch
	})
	pending = lo.Reject(entries, func(e UnbondingEntry, _ int) bool {
		return e.MaturityEpoch <= currentEpoch
	})
	return matured, pending
}

func sumEntries(entries []UnbondingEntry) (*big.Int, error) {
	sum := big.NewInt(0)
	for _, e := range entries {
		var err error
		if sum, err = checkedAdd(sum, e.Amount); err != nil {
			return nil, err
		}
	}
	return sum, nil
}
