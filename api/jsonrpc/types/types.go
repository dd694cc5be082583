package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/framework"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/unbonding"
)

type UnbondingEntry struct {
	MaturityEpoch hexutil.Uint64 `json:"maturityEpoch"`
	Amount        *hexutil.Big   `json:"amount"`
}

type UnlockedDescriptor struct {
	Asset         string         `json:"asset"`
	MaturityEpoch hexutil.Uint64 `json:"maturityEpoch"`
	Amount        *hexutil.Big   `json:"amount"`
}

type EpochInfo struct {
	Epoch     hexutil.Uint64 `json:"epoch"`
	StartTime int64          `json:"startTime"`
}

func NewUnbondingEntries(entries []unbonding.UnbondingEntry) []UnbondingEntry {
	return lo.Map(entries, func(e unbonding.UnbondingEntry, _ int) UnbondingEntry {
		return UnbondingEntry{
			MaturityEpoch: hexutil.Uint64(e.MaturityEpoch),
			Amount:        (*hexutil.Big)(new(big.Int).Set(e.Amount)),
		}
	})
}

func NewUnlockedDescriptor(d *unbonding.UnlockedDescriptor) *UnlockedDescriptor {
	return &UnlockedDescriptor{
		Asset:         d.Asset,
		MaturityEpoch: hexutil.Uint64(d.MaturityEpoch),
		Amount:        (*hexutil.Big)(new(big.Int).Set(d.Amount)),
	}
}

func NewEpochInfo(info framework.EpochInfo) *EpochInfo {
	return &EpochInfo{
		Epoch:     hexutil.Uint64(info.Epoch),
		StartTime: info.StartTime,
	}
}
