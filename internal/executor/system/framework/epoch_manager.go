package framework

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

const (
	EpochManagerCurrentEpochIDStorageKey   = "currentEpochID"
	EpochManagerHistoryEpochInfoStorageKey = "historyEpochInfo"
)

var EpochManagerBuildConfig = &common.SystemContractBuildConfig[*EpochManager]{
	Name:    "framework_epoch_manager",
	Address: common.EpochManagerContractAddr,
	Constructor: func(systemContractBase common.SystemContractBase) *EpochManager {
		return &EpochManager{
			SystemContractBase: systemContractBase,
		}
	},
}

type EpochInfo struct {
	Epoch uint64 `json:"epoch"`

	// unix seconds at which the epoch began, 0 for the genesis epoch
	StartTime int64 `json:"start_time"`
}

type EpochManager struct {
	common.SystemContractBase

	currentEpochID *common.VMSlot[uint64]

	// history epoch id -> history epoch info
	historyEpochInfoMap *common.VMMap[uint64, EpochInfo]
}

func (m *EpochManager) GenesisInit(genesis *repo.GenesisConfig) error {
	if genesis.Epoch == 0 {
		return errors.Errorf("genesis epoch number must be greater than 0")
	}

	if err := m.historyEpochInfoMap.Put(genesis.Epoch, EpochInfo{Epoch: genesis.Epoch}); err != nil {
		return err
	}
	return m.currentEpochID.Put(genesis.Epoch)
}

func (m *EpochManager) SetContext(context *common.VMContext) {
	m.SystemContractBase.SetContext(context)

	m.currentEpochID = common.NewVMSlot[uint64](m.StateAccount, EpochManagerCurrentEpochIDStorageKey)
	m.historyEpochInfoMap = common.NewVMMap[uint64, EpochInfo](m.StateAccount, EpochManagerHistoryEpochInfoStorageKey, func(id uint64) string {
		return strconv.FormatUint(id, 10)
	})
}

func (m *EpochManager) CurrentEpoch() (uint64, error) {
	return m.currentEpochID.MustGet()
}

func (m *EpochManager) CurrentEpochInfo() (EpochInfo, error) {
	currentEpochID, err := m.currentEpochID.MustGet()
	if err != nil {
		return EpochInfo{}, err
	}

	return m.HistoryEpoch(currentEpochID)
}

func (m *EpochManager) HistoryEpoch(epochID uint64) (EpochInfo, error) {
	epochInfo, err := m.historyEpochInfoMap.MustGet(epochID)
	if err != nil {
		return EpochInfo{}, err
	}
	return epochInfo, nil
}

// TurnIntoNewEpoch advances the current epoch by one and returns the new epoch info.
func (m *EpochManager) TurnIntoNewEpoch() (EpochInfo, error) {
	currentEpochID, err := m.currentEpochID.MustGet()
	if err != nil {
		return EpochInfo{}, err
	}

	newEpoch := EpochInfo{
		Epoch:     currentEpochID + 1,
		StartTime: time.Now().Unix(),
	}
	if err := m.historyEpochInfoMap.Put(newEpoch.Epoch, newEpoch); err != nil {
		return EpochInfo{}, err
	}

	if err := m.currentEpochID.Put(newEpoch.Epoch); err != nil {
		return EpochInfo{}, err
	}
	m.Logger.WithField("epoch", newEpoch.Epoch).Info("Turn into new epoch")
	return newEpoch, nil
}
