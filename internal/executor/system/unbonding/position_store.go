package unbonding

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
)

const PositionsStorageKey = "positions"

// PositionStore keeps the locked principal of every (holder, asset).
type PositionStore struct {
	positions *common.VMMap[holderAsset, *big.Int]
}

func NewPositionStore(account common.StateAccount) *PositionStore {
	return &PositionStore{
		positions: common.NewVMMap[holderAsset, *big.Int](account, PositionsStorageKey, func(key holderAsset) string {
			return key.String()
		}),
	}
}

func (s *PositionStore) Get(holder ethcommon.Address, asset string) (*big.Int, error) {
	exist, amount, err := s.positions.Get(holderAsset{Holder: holder, Asset: asset})
	if err != nil {
		return nil, err
	}
	if !exist {
		return big.NewInt(0), nil
	}
	return amount, nil
}

func (s *PositionStore) increase(holder ethcommon.Address, asset string, amount *big.Int) (*big.Int, error) {
	current, err := s.Get(holder, asset)
	if err != nil {
		return nil, err
	}
	res, err := checkedAdd(current, amount)
	if err != nil {
		return nil, err
	}
	return res, s.put(holder, asset, res)
}

func (s *PositionStore) decrease(holder ethcommon.Address, asset string, amount *big.Int) (*big.Int, error) {
	current, err := s.Get(holder, asset)
	if err != nil {
		return nil, err
	}
	res, err := checkedSub(current, amount)
	if err != nil {
		return nil, err
	}
	return res, s.put(holder, asset, res)
}

func (s *PositionStore) put(holder ethcommon.Address, asset string, amount *big.Int) error {
	key := holderAsset{Holder: holder, Asset: asset}
	if amount.Sign() == 0 {
		return s.positions.Delete(key)
	}
	return s.positions.Put(key, amount)
}
