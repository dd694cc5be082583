package executor

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/framework"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/token"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/unbonding"
	"github.com/axiomesh/unbonding-ledger/internal/ledger"
	"github.com/axiomesh/unbonding-ledger/pkg/events"
	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var _ Executor = (*LedgerExecutor)(nil)

// LedgerExecutor runs ledger operations one at a time, each one either
// commits as a whole or leaves no trace.
type LedgerExecutor struct {
	rep          *repo.Repo
	stateLedger  ledger.StateLedger
	logger       logrus.FieldLogger
	executedFeed event.Feed

	epochManager    *framework.EpochManager
	tokenManager    *token.TokenManager
	unbondingLedger *unbonding.Ledger

	lock *sync.Mutex

	afterCommitHooks []func(executed *events.ExecutedEvent)
}

// New creates executor instance, the genesis state is committed when the state ledger is empty
func New(rep *repo.Repo, stateLedger ledger.StateLedger) (*LedgerExecutor, error) {
	ctx := common.NewViewVMContext(stateLedger)
	exec := &LedgerExecutor{
		rep:             rep,
		stateLedger:     stateLedger,
		logger:          loggers.Logger(loggers.Executor),
		epochManager:    framework.EpochManagerBuildConfig.Build(ctx),
		tokenManager:    token.TokenManagerBuildConfig.Build(ctx),
		unbondingLedger: unbonding.BuildConfig.Build(ctx).Configure(unbonding.NewConfig(rep.Config)),
		lock:            &sync.Mutex{},
	}
	exec.afterCommitHooks = []func(executed *events.ExecutedEvent){
		exec.updateEpochMetrics,
		exec.postExecutedEvent,
	}

	if stateLedger.Version() == 0 {
		if err := exec.initGenesis(); err != nil {
			return nil, errors.Wrap(err, "failed to init genesis state")
		}
	}
	return exec, nil
}

// Start starts executor
func (exec *LedgerExecutor) Start() error {
	epochInfo, err := exec.CurrentEpochInfo()
	if err != nil {
		return errors.Wrap(err, "failed to get current epoch")
	}
	currentEpochGauge.Set(float64(epochInfo.Epoch))

	exec.logger.WithFields(logrus.Fields{
		"version":       exec.stateLedger.Version(),
		"epoch":         epochInfo.Epoch,
		"unbond_period": exec.rep.Config.Ledger.UnbondPeriod,
		"assets":        exec.rep.Config.Ledger.Assets,
	}).Info("LedgerExecutor started")

	return nil
}

// Stop stops executor
func (exec *LedgerExecutor) Stop() error {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	exec.stateLedger.Clear()
	exec.logger.Info("LedgerExecutor stopped")

	return nil
}

// SubscribeExecutedEvent registers a subscription of ExecutedEvent.
func (exec *LedgerExecutor) SubscribeExecutedEvent(ch chan<- events.ExecutedEvent) event.Subscription {
	return exec.executedFeed.Subscribe(ch)
}

func (exec *LedgerExecutor) Version() uint64 {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	return exec.stateLedger.Version()
}

func (exec *LedgerExecutor) setContext(ctx *common.VMContext) {
	exec.epochManager.SetContext(ctx)
	exec.tokenManager.SetContext(ctx)
	exec.unbondingLedger.SetContext(ctx)
}

func (exec *LedgerExecutor) initGenesis() error {
	ctx := common.NewViewVMContext(exec.stateLedger)
	contracts := []common.SystemContract{exec.epochManager, exec.tokenManager, exec.unbondingLedger}
	for _, contract := range contracts {
		contract.SetContext(ctx)
		if err := contract.GenesisInit(&exec.rep.Config.Genesis); err != nil {
			exec.stateLedger.Clear()
			return err
		}
	}
	exec.stateLedger.Finalise()
	version, err := exec.stateLedger.Commit()
	if err != nil {
		return err
	}

	exec.logger.WithFields(logrus.Fields{
		"version":  version,
		"epoch":    exec.rep.Config.Genesis.Epoch,
		"accounts": len(exec.rep.Config.Genesis.Accounts),
	}).Info("Genesis state committed")
	return nil
}
