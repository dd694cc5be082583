package unbonding

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/framework"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/token"
	"github.com/axiomesh/unbonding-ledger/pkg/events"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

const (
	TotalLockedStorageKey    = "totalLocked"
	TotalUnbondingStorageKey = "totalUnbonding"
)

var BuildConfig = &common.SystemContractBuildConfig[*Ledger]{
	Name:    "unbonding_ledger",
	Address: common.UnbondingLedgerContractAddr,
	Constructor: func(systemContractBase common.SystemContractBase) *Ledger {
		return &Ledger{
			SystemContractBase: systemContractBase,
			guard:              common.NewReentrancyGuard(),
			cfg:                DefaultConfig(),
		}
	},
}

type Config struct {
	UnbondPeriod        uint64
	MaxUnbondingEntries uint64
	Assets              []string
}

func DefaultConfig() Config {
	return Config{
		UnbondPeriod:        repo.DefaultUnbondPeriod,
		MaxUnbondingEntries: repo.DefaultUnbondPeriod + 1,
		Assets:              []string{repo.DefaultAsset},
	}
}

func NewConfig(cfg *repo.Config) Config {
	return Config{
		UnbondPeriod:        cfg.Ledger.UnbondPeriod,
		MaxUnbondingEntries: cfg.MaxUnbondingEntries(),
		Assets:              cfg.Ledger.Assets,
	}
}

// Ledger turns locked positions into delayed, epoch indexed claims.
type Ledger struct {
	common.SystemContractBase

	cfg   Config
	guard *common.ReentrancyGuard

	positions *PositionStore
	queue     *Queue

	// asset -> sum of all positions
	totalLocked *common.VMMap[string, *big.Int]

	// asset -> sum of all queued entries
	totalUnbonding *common.VMMap[string, *big.Int]

	epochOracle      EpochOracle
	transferExecutor TransferExecutor

	// set by WithCollaborators, kept across SetContext
	epochOracleOverride      EpochOracle
	transferExecutorOverride TransferExecutor
}

func (l *Ledger) GenesisInit(genesis *repo.GenesisConfig) error {
	for _, asset := range l.cfg.Assets {
		if err := l.totalLocked.Put(asset, big.NewInt(0)); err != nil {
			return err
		}
		if err := l.totalUnbonding.Put(asset, big.NewInt(0)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) SetContext(context *common.VMContext) {
	l.SystemContractBase.SetContext(context)

	l.positions = NewPositionStore(l.StateAccount)
	l.queue = NewQueue(l.StateAccount)
	l.totalLocked = common.NewVMMap[string, *big.Int](l.StateAccount, TotalLockedStorageKey, func(asset string) string {
		return asset
	})
	l.totalUnbonding = common.NewVMMap[string, *big.Int](l.StateAccount, TotalUnbondingStorageKey, func(asset string) string {
		return asset
	})

	l.epochOracle = l.epochOracleOverride
	if l.epochOracle == nil {
		l.epochOracle = framework.EpochManagerBuildConfig.Build(l.CrossCallSystemContractContext())
	}
	l.transferExecutor = l.transferExecutorOverride
	if l.transferExecutor == nil {
		l.transferExecutor = token.TokenManagerBuildConfig.Build(l.CrossCallSystemContractContext())
	}
}

// Configure replaces the ledger parameters.
func (l *Ledger) Configure(cfg Config) *Ledger {
	l.cfg = cfg
	return l
}

// WithCollaborators replaces the epoch manager and token manager the ledger calls by default.
func (l *Ledger) WithCollaborators(epochOracle EpochOracle, transferExecutor TransferExecutor) *Ledger {
	l.epochOracleOverride = epochOracle
	l.transferExecutorOverride = transferExecutor
	if epochOracle != nil {
		l.epochOracle = epochOracle
	}
	if transferExecutor != nil {
		l.transferExecutor = transferExecutor
	}
	return l
}

func (l *Ledger) nonReentrant(operation string, fn func() error) error {
	if err := l.guard.Enter(); err != nil {
		recordOperation(operation, err)
		return err
	}
	defer l.guard.Exit()

	err := fn()
	recordOperation(operation, err)
	return err
}

func (l *Ledger) checkArgs(asset string, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	return l.checkAsset(asset)
}

func (l *Ledger) checkAsset(asset string) error {
	if !lo.Contains(l.cfg.Assets, asset) {
		return errors.Wrapf(ErrUnsupportedAsset, "asset %s", asset)
	}
	return nil
}

// Lock moves amount of asset from the caller's balance into its locked position.
func (l *Ledger) Lock(asset string, amount *big.Int) error {
	return l.nonReentrant("lock", func() error {
		holder := l.Ctx.From
		if err := l.checkArgs(asset, amount); err != nil {
			return err
		}

		position, err := l.positions.increase(holder, asset, amount)
		if err != nil {
			return err
		}
		if err := l.changeTotal(l.totalLocked, asset, amount, true); err != nil {
			return err
		}
		if err := l.transferExecutor.Collect(holder, asset, amount); err != nil {
			return errors.Wrapf(ErrTransferFailure, "collect %s %s from %s: %v", amount, asset, holder, err)
		}

		l.Ctx.EmitEvent(&events.Locked{Holder: holder, Asset: asset, Amount: new(big.Int).Set(amount)})
		l.Logger.WithFields(logrus.Fields{
			"holder":   holder,
			"asset":    asset,
			"amount":   amount,
			"position": position,
		}).Info("Lock")
		return nil
	})
}

// Unlock moves amount of asset from the caller's locked position into its unbonding queue,
// the amount becomes claimable UnbondPeriod epochs later.
func (l *Ledger) Unlock(asset string, amount *big.Int) (*UnlockedDescriptor, error) {
	var descriptor *UnlockedDescriptor
	err := l.nonReentrant("unlock", func() error {
		holder := l.Ctx.From
		if err := l.checkArgs(asset, amount); err != nil {
			return err
		}

		position, err := l.positions.decrease(holder, asset, amount)
		if err != nil {
			return err
		}
		currentEpoch, err := l.epochOracle.CurrentEpoch()
		if err != nil {
			return errors.Wrap(err, "failed to get current epoch")
		}
		maturityEpoch := currentEpoch + l.cfg.UnbondPeriod
		if maturityEpoch < currentEpoch {
			return errors.Wrapf(ErrMaturityEpochOverflow, "current epoch %d, unbond period %d", currentEpoch, l.cfg.UnbondPeriod)
		}
		merged, queueLength, err := l.queue.Insert(holder, asset, currentEpoch, maturityEpoch, amount, l.cfg.MaxUnbondingEntries)
		if err != nil {
			return err
		}
		if err := l.changeTotal(l.totalLocked, asset, amount, false); err != nil {
			return err
		}
		if err := l.changeTotal(l.totalUnbonding, asset, amount, true); err != nil {
			return err
		}

		descriptor = &UnlockedDescriptor{
			Asset:         asset,
			MaturityEpoch: maturityEpoch,
			Amount:        new(big.Int).Set(amount),
		}
		l.Ctx.EmitEvent(&events.Unlocked{Holder: holder, Asset: asset, Amount: new(big.Int).Set(amount), MaturityEpoch: maturityEpoch})
		unbondingQueueLength.Observe(float64(queueLength))
		l.Logger.WithFields(logrus.Fields{
			"holder":         holder,
			"asset":          asset,
			"amount":         amount,
			"position":       position,
			"maturity_epoch": maturityEpoch,
			"merged":         merged,
		}).Info("Unlock")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return descriptor, nil
}

// Claim pays every matured unbonding entry of asset back to the caller and returns the payout.
// The queue is updated before the transfer, a failed transfer aborts the whole operation.
func (l *Ledger) Claim(asset string) (*big.Int, error) {
	var payout *big.Int
	err := l.nonReentrant("claim", func() error {
		holder := l.Ctx.From
		if err := l.checkAsset(asset); err != nil {
			return err
		}

		currentEpoch, err := l.epochOracle.CurrentEpoch()
		if err != nil {
			return errors.Wrap(err, "failed to get current epoch")
		}
		matured, err := l.queue.Sweep(holder, asset, currentEpoch)
		if err != nil {
			return err
		}
		if len(matured) == 0 {
			return errors.Wrapf(ErrNothingToClaim, "%s has no %s matured at epoch %d", holder, asset, currentEpoch)
		}
		sum, err := sumEntries(matured)
		if err != nil {
			return err
		}
		if err := l.changeTotal(l.totalUnbonding, asset, sum, false); err != nil {
			return err
		}
		l.Ctx.EmitEvent(&events.Claimed{Holder: holder, Asset: asset, Amount: new(big.Int).Set(sum)})

		if err := l.transferExecutor.Transfer(holder, asset, sum); err != nil {
			return errors.Wrapf(ErrTransferFailure, "pay %s %s to %s: %v", sum, asset, holder, err)
		}
		claimedEntriesCounter.Add(float64(len(matured)))
		l.Logger.WithFields(logrus.Fields{
			"holder":  holder,
			"asset":   asset,
			"amount":  sum,
			"entries": len(matured),
			"epoch":   currentEpoch,
		}).Info("Claim")
		payout = sum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

func (l *Ledger) changeTotal(totals *common.VMMap[string, *big.Int], asset string, amount *big.Int, increase bool) error {
	_, total, err := totals.Get(asset)
	if err != nil {
		return err
	}
	if total == nil {
		total = big.NewInt(0)
	}
	if increase {
		total, err = checkedAdd(total, amount)
	} else {
		total, err = checkedSub(total, amount)
	}
	if err != nil {
		return err
	}
	return totals.Put(asset, total)
}

func (l *Ledger) GetPosition(holder ethcommon.Address, asset string) (*big.Int, error) {
	return l.positions.Get(holder, asset)
}

func (l *Ledger) GetUnbondingQueue(holder ethcommon.Address, asset string) ([]UnbondingEntry, error) {
	return l.queue.Entries(holder, asset)
}

// GetUnlockingAmount returns the queued amount not yet matured.
func (l *Ledger) GetUnlockingAmount(holder ethcommon.Address, asset string) (*big.Int, error) {
	_, pending, err := l.partitionQueue(holder, asset)
	if err != nil {
		return nil, err
	}
	return sumEntries(pending)
}

// GetClaimableAmount returns the queued amount a claim would pay now.
func (l *Ledger) GetClaimableAmount(holder ethcommon.Address, asset string) (*big.Int, error) {
	matured, _, err := l.partitionQueue(holder, asset)
	if err != nil {
		return nil, err
	}
	return sumEntries(matured)
}

func (l *Ledger) partitionQueue(holder ethcommon.Address, asset string) ([]UnbondingEntry, []UnbondingEntry, error) {
	currentEpoch, err := l.epochOracle.CurrentEpoch()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get current epoch")
	}
	entries, err := l.queue.Entries(holder, asset)
	if err != nil {
		return nil, nil, err
	}
	matured, pending := partition(entries, currentEpoch)
	return matured, pending, nil
}

func (l *Ledger) TotalLocked(asset string) (*big.Int, error) {
	return l.total(l.totalLocked, asset)
}

func (l *Ledger) TotalUnbonding(asset string) (*big.Int, error) {
	return l.total(l.totalUnbonding, asset)
}

func (l *Ledger) total(totals *common.VMMap[string, *big.Int], asset string) (*big.Int, error) {
	if err := l.checkAsset(asset); err != nil {
		return nil, err
	}
	exist, total, err := totals.Get(asset)
	if err != nil {
		return nil, err
	}
	if !exist {
		return big.NewInt(0), nil
	}
	return total, nil
}

func (l *Ledger) SupportedAssets() []string {
	return append([]string{}, l.cfg.Assets...)
}

func (l *Ledger) UnbondPeriod() uint64 {
	return l.cfg.UnbondPeriod
}
