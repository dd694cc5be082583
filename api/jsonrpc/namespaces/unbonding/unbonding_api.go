package unbonding

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	rpctypes "github.com/axiomesh/unbonding-ledger/api/jsonrpc/types"
	"github.com/axiomesh/unbonding-ledger/internal/executor"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

// UnbondingAPI provides the lock, unlock and claim entry points and the ledger views
type UnbondingAPI struct {
	rep    *repo.Repo
	exec   executor.Executor
	logger logrus.FieldLogger
}

func NewUnbondingAPI(rep *repo.Repo, exec executor.Executor, logger logrus.FieldLogger) *UnbondingAPI {
	return &UnbondingAPI{rep: rep, exec: exec, logger: logger}
}

func toBigInt(amount *hexutil.Big) (*big.Int, error) {
	if amount == nil {
		return nil, rpctypes.NewInvalidParamsError("missing amount")
	}
	return (*big.Int)(amount), nil
}

func fromBigInt(amount *big.Int) *hexutil.Big {
	return (*hexutil.Big)(amount)
}

func (api *UnbondingAPI) send(method string, from common.Address, fn func() error) error {
	sendTotalCounter.WithLabelValues(method).Inc()
	if err := fn(); err != nil {
		sendFailedCounter.WithLabelValues(method).Inc()
		api.logger.WithFields(logrus.Fields{
			"method": method,
			"from":   from,
			"err":    err.Error(),
		}).Debug("Request failed")
		return rpctypes.NewLedgerError(err)
	}
	return nil
}

func (api *UnbondingAPI) query(fn func() error) error {
	defer func(start time.Time) {
		invokeReadOnlyDuration.Observe(time.Since(start).Seconds())
		queryTotalCounter.Inc()
	}(time.Now())

	if err := fn(); err != nil {
		queryFailedCounter.Inc()
		return rpctypes.NewLedgerError(err)
	}
	return nil
}

// Lock moves amount of asset from the balance of from into its locked position.
func (api *UnbondingAPI) Lock(from common.Address, asset string, amount *hexutil.Big) (bool, error) {
	err := api.send("lock", from, func() error {
		value, err := toBigInt(amount)
		if err != nil {
			return err
		}
		return api.exec.Lock(from, asset, value)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Unlock moves amount of asset from the locked position of from into its unbonding queue.
func (api *UnbondingAPI) Unlock(from common.Address, asset string, amount *hexutil.Big) (*rpctypes.UnlockedDescriptor, error) {
	var res *rpctypes.UnlockedDescriptor
	err := api.send("unlock", from, func() error {
		value, err := toBigInt(amount)
		if err != nil {
			return err
		}
		descriptor, err := api.exec.Unlock(from, asset, value)
		if err != nil {
			return err
		}
		res = rpctypes.NewUnlockedDescriptor(descriptor)
		return nil
	})
	return res, err
}

// Claim pays every matured unbonding entry of asset back to from.
func (api *UnbondingAPI) Claim(from common.Address, asset string) (*hexutil.Big, error) {
	var res *hexutil.Big
	err := api.send("claim", from, func() error {
		payout, err := api.exec.Claim(from, asset)
		if err != nil {
			return err
		}
		res = fromBigInt(payout)
		return nil
	})
	return res, err
}

func (api *UnbondingAPI) GetPosition(holder common.Address, asset string) (res *hexutil.Big, err error) {
	err = api.query(func() error {
		position, err := api.exec.GetPosition(holder, asset)
		res = fromBigInt(position)
		return err
	})
	return res, err
}

func (api *UnbondingAPI) GetUnbondingQueue(holder common.Address, asset string) (res []rpctypes.UnbondingEntry, err error) {
	err = api.query(func() error {
		entries, err := api.exec.GetUnbondingQueue(holder, asset)
		if err != nil {
			return err
		}
		res = rpctypes.NewUnbondingEntries(entries)
		return nil
	})
	return res, err
}

func (api *UnbondingAPI) GetUnlockingAmount(holder common.Address, asset string) (res *hexutil.Big, err error) {
	err = api.query(func() error {
		amount, err := api.exec.GetUnlockingAmount(holder, asset)
		res = fromBigInt(amount)
		return err
	})
	return res, err
}

func (api *UnbondingAPI) GetClaimableAmount(holder common.Address, asset string) (res *hexutil.Big, err error) {
	err = api.query(func() error {
		amount, err := api.exec.GetClaimableAmount(holder, asset)
		res = fromBigInt(amount)
		return err
	})
	return res, err
}

func (api *UnbondingAPI) TotalLocked(asset string) (res *hexutil.Big, err error) {
	err = api.query(func() error {
		total, err := api.exec.TotalLocked(asset)
		res = fromBigInt(total)
		return err
	})
	return res, err
}

func (api *UnbondingAPI) TotalUnbonding(asset string) (res *hexutil.Big, err error) {
	err = api.query(func() error {
		total, err := api.exec.TotalUnbonding(asset)
		res = fromBigInt(total)
		return err
	})
	return res, err
}

func (api *UnbondingAPI) CurrentEpoch() (res *rpctypes.EpochInfo, err error) {
	err = api.query(func() error {
		epochInfo, err := api.exec.CurrentEpochInfo()
		if err != nil {
			return err
		}
		res = rpctypes.NewEpochInfo(epochInfo)
		return nil
	})
	return res, err
}

func (api *UnbondingAPI) BalanceOf(account common.Address, asset string) (res *hexutil.Big, err error) {
	err = api.query(func() error {
		balance, err := api.exec.BalanceOf(account, asset)
		res = fromBigInt(balance)
		return err
	})
	return res, err
}

func (api *UnbondingAPI) SupportedAssets() []string {
	return api.exec.SupportedAssets()
}

func (api *UnbondingAPI) UnbondPeriod() hexutil.Uint64 {
	return hexutil.Uint64(api.rep.Config.Ledger.UnbondPeriod)
}
