package executor

import (
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/framework"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/unbonding"
	"github.com/axiomesh/unbonding-ledger/pkg/events"
)

const (
	OperationLock             = "lock"
	OperationUnlock           = "unlock"
	OperationClaim            = "claim"
	OperationTurnIntoNewEpoch = "turn_into_new_epoch"
)

// execute runs fn as one transaction: the state changes are committed and the
// emitted events published if fn succeeds, otherwise everything is reverted.
func (exec *LedgerExecutor) execute(operation string, ctx *common.VMContext, fn func() error) error {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	current := time.Now()
	snapshot := exec.stateLedger.Snapshot()
	exec.setContext(ctx)

	if err := fn(); err != nil {
		exec.stateLedger.RevertToSnapshot(snapshot)
		executedOperationCounter.WithLabelValues(operation, "failed").Inc()
		exec.logger.WithFields(logrus.Fields{
			"operation": operation,
			"from":      ctx.From,
			"err":       err.Error(),
		}).Warn("Execute operation failed")
		return err
	}

	epoch, err := exec.epochManager.CurrentEpoch()
	if err != nil {
		exec.stateLedger.RevertToSnapshot(snapshot)
		return errors.Wrap(err, "failed to get current epoch")
	}

	exec.stateLedger.Finalise()
	version, err := exec.stateLedger.Commit()
	if err != nil {
		exec.stateLedger.Clear()
		executedOperationCounter.WithLabelValues(operation, "failed").Inc()
		return errors.Wrapf(err, "commit %s failed", operation)
	}
	executedOperationCounter.WithLabelValues(operation, "success").Inc()
	executeOperationDuration.WithLabelValues(operation).Observe(float64(time.Since(current)) / float64(time.Second))

	executed := &events.ExecutedEvent{
		Version: version,
		Epoch:   epoch,
		Events:  ctx.CollectedEvents(),
	}
	for _, hook := range exec.afterCommitHooks {
		hook(executed)
	}

	exec.logger.WithFields(logrus.Fields{
		"operation": operation,
		"from":      ctx.From,
		"version":   version,
		"epoch":     epoch,
		"events":    len(executed.Events),
		"elapse":    time.Since(current),
	}).Debug("Executed operation")
	return nil
}

// call runs fn against the latest committed state and drops whatever it changed.
func (exec *LedgerExecutor) call(fn func() error) error {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	snapshot := exec.stateLedger.Snapshot()
	defer exec.stateLedger.RevertToSnapshot(snapshot)
	exec.setContext(common.NewViewVMContext(exec.stateLedger))
	return fn()
}

func (exec *LedgerExecutor) Lock(from ethcommon.Address, asset string, amount *big.Int) error {
	return exec.execute(OperationLock, common.NewVMContext(exec.stateLedger, from), func() error {
		return exec.unbondingLedger.Lock(asset, amount)
	})
}

func (exec *LedgerExecutor) Unlock(from ethcommon.Address, asset string, amount *big.Int) (*unbonding.UnlockedDescriptor, error) {
	var descriptor *unbonding.UnlockedDescriptor
	err := exec.execute(OperationUnlock, common.NewVMContext(exec.stateLedger, from), func() error {
		var err error
		descriptor, err = exec.unbondingLedger.Unlock(asset, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return descriptor, nil
}

func (exec *LedgerExecutor) Claim(from ethcommon.Address, asset string) (*big.Int, error) {
	var payout *big.Int
	err := exec.execute(OperationClaim, common.NewVMContext(exec.stateLedger, from), func() error {
		var err error
		payout, err = exec.unbondingLedger.Claim(asset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

// TurnIntoNewEpoch advances the epoch by one, it is the external epoch signal of the ledger.
func (exec *LedgerExecutor) TurnIntoNewEpoch() (framework.EpochInfo, error) {
	var epochInfo framework.EpochInfo
	ctx := common.NewViewVMContext(exec.stateLedger)
	ctx.CallFromSystem = true
	err := exec.execute(OperationTurnIntoNewEpoch, ctx, func() error {
		var err error
		epochInfo, err = exec.epochManager.TurnIntoNewEpoch()
		return err
	})
	if err != nil {
		return framework.EpochInfo{}, err
	}
	return epochInfo, nil
}

func (exec *LedgerExecutor) CurrentEpochInfo() (epochInfo framework.EpochInfo, err error) {
	err = exec.call(func() error {
		epochInfo, err = exec.epochManager.CurrentEpochInfo()
		return err
	})
	return epochInfo, err
}

func (exec *LedgerExecutor) GetPosition(holder ethcommon.Address, asset string) (position *big.Int, err error) {
	err = exec.call(func() error {
		position, err = exec.unbondingLedger.GetPosition(holder, asset)
		return err
	})
	return position, err
}

func (exec *LedgerExecutor) GetUnbondingQueue(holder ethcommon.Address, asset string) (entries []unbonding.UnbondingEntry, err error) {
	err = exec.call(func() error {
		entries, err = exec.unbondingLedger.GetUnbondingQueue(holder, asset)
		return err
	})
	return entries, err
}

func (exec *LedgerExecutor) GetUnlockingAmount(holder ethcommon.Address, asset string) (amount *big.Int, err error) {
	err = exec.call(func() error {
		amount, err = exec.unbondingLedger.GetUnlockingAmount(holder, asset)
		return err
	})
	return amount, err
}

func (exec *LedgerExecutor) GetClaimableAmount(holder ethcommon.Address, asset string) (amount *big.Int, err error) {
	err = exec.call(func() error {
		amount, err = exec.unbondingLedger.GetClaimableAmount(holder, asset)
		return err
	})
	return amount, err
}

func (exec *LedgerExecutor) TotalLocked(asset string) (total *big.Int, err error) {
	err = exec.call(func() error {
		total, err = exec.unbondingLedger.TotalLocked(asset)
		return err
	})
	return total, err
}

func (exec *LedgerExecutor) TotalUnbonding(asset string) (total *big.Int, err error) {
	err = exec.call(func() error {
		total, err = exec.unbondingLedger.TotalUnbonding(asset)
		return err
	})
	return total, err
}

func (exec *LedgerExecutor) BalanceOf(account ethcommon.Address, asset string) (balance *big.Int, err error) {
	err = exec.call(func() error {
		balance, err = exec.tokenManager.BalanceOf(account, asset)
		return err
	})
	return balance, err
}

func (exec *LedgerExecutor) SupportedAssets() []string {
	return exec.unbondingLedger.SupportedAssets()
}
