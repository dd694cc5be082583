package app

import (
	"context"
	"fmt"
	"sync"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/api/jsonrpc"
	"github.com/axiomesh/unbonding-ledger/internal/executor"
	"github.com/axiomesh/unbonding-ledger/internal/ledger"
	"github.com/axiomesh/unbonding-ledger/internal/storagemgr"
	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

type UnbondingLedger struct {
	Ctx         context.Context
	Cancel      context.CancelFunc
	Repo        *repo.Repo
	logger      logrus.FieldLogger
	StateLedger ledger.StateLedger
	Executor    executor.Executor
	Jsonrpc     *jsonrpc.LedgerBrokerService
	Monitor     *Monitor

	wg sync.WaitGroup
}

func PrepareUnbondingLedger(rep *repo.Repo) error {
	if err := storagemgr.Initialize(rep.Config); err != nil {
		return fmt.Errorf("storagemgr initialize: %w", err)
	}
	if err := raiseUlimit(rep.Config.Ulimit); err != nil {
		return fmt.Errorf("raise ulimit: %w", err)
	}
	return nil
}

func NewUnbondingLedger(rep *repo.Repo, ctx context.Context, cancel context.CancelFunc) (*UnbondingLedger, error) {
	if err := PrepareUnbondingLedger(rep); err != nil {
		return nil, err
	}

	stateLedger, err := ledger.NewStateLedger(rep)
	if err != nil {
		return nil, fmt.Errorf("create state ledger: %w", err)
	}

	exec, err := executor.New(rep, stateLedger)
	if err != nil {
		stateLedger.Close()
		return nil, fmt.Errorf("create executor: %w", err)
	}

	broker, err := jsonrpc.NewLedgerBrokerService(rep, exec)
	if err != nil {
		stateLedger.Close()
		return nil, fmt.Errorf("create json-rpc service: %w", err)
	}

	return &UnbondingLedger{
		Ctx:         ctx,
		Cancel:      cancel,
		Repo:        rep,
		logger:      loggers.Logger(loggers.App),
		StateLedger: stateLedger,
		Executor:    exec,
		Jsonrpc:     broker,
		Monitor:     NewMonitor(rep),
	}, nil
}

func (ul *UnbondingLedger) Start() error {
	if err := ul.Executor.Start(); err != nil {
		return fmt.Errorf("executor start: %w", err)
	}

	if err := ul.Jsonrpc.Start(); err != nil {
		return fmt.Errorf("json-rpc service start: %w", err)
	}

	if err := ul.Monitor.Start(); err != nil {
		return fmt.Errorf("monitor start: %w", err)
	}

	ul.start()

	ul.printLogo()

	return nil
}

func (ul *UnbondingLedger) Stop() error {
	if err := ul.Jsonrpc.Stop(); err != nil {
		return fmt.Errorf("json-rpc service stop: %w", err)
	}
	if err := ul.Monitor.Stop(); err != nil {
		return fmt.Errorf("monitor stop: %w", err)
	}

	ul.Cancel()
	ul.wg.Wait()

	if err := ul.Executor.Stop(); err != nil {
		return fmt.Errorf("executor stop: %w", err)
	}
	ul.StateLedger.Close()

	ul.logger.Infof("%s stopped", repo.AppName)

	return nil
}

func (ul *UnbondingLedger) printLogo() {
	fig := figure.NewFigure(repo.AppName, "slant", true)
	ul.logger.Infof(`
=========================================================================================
%s
=========================================================================================
`, fig.String())
}

func raiseUlimit(limitNew uint64) error {
	_, err := fdlimit.Raise(limitNew)
	if err != nil {
		return fmt.Errorf("set limit failed: %w", err)
	}

	var limit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limit); err != nil {
		return fmt.Errorf("getrlimit error: %w", err)
	}

	if limit.Cur != limitNew && limit.Cur != limit.Max {
		return errors.New("failed to raise ulimit")
	}

	return nil
}
