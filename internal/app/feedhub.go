package app

import (
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/strategy"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/framework"
	"github.com/axiomesh/unbonding-ledger/pkg/events"
	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
)

const (
	executedEventChanSize = 1024

	advanceEpochRetryLimit = 3
	advanceEpochRetryWait  = 100 * time.Millisecond
)

func (ul *UnbondingLedger) start() {
	ul.wg.Add(2)
	go ul.listenExecutedEvent()
	go ul.advanceEpoch()
}

func (ul *UnbondingLedger) listenExecutedEvent() {
	defer ul.wg.Done()

	executedCh := make(chan events.ExecutedEvent, executedEventChanSize)
	sub := ul.Executor.SubscribeExecutedEvent(executedCh)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ul.Ctx.Done():
			return
		case err := <-sub.Err():
			if err != nil {
				ul.logger.WithField("err", err).Error("Executed event subscription failed")
			}
			return
		case ev := <-executedCh:
			ul.reportExecuted(ev)
		}
	}
}

func (ul *UnbondingLedger) reportExecuted(ev events.ExecutedEvent) {
	for _, e := range ev.Events {
		fields := logrus.Fields{
			"version": ev.Version,
			"epoch":   ev.Epoch,
		}
		switch e := e.(type) {
		case *events.Locked:
			fields["holder"] = e.Holder
			fields["asset"] = e.Asset
			fields["amount"] = e.Amount
		case *events.Unlocked:
			fields["holder"] = e.Holder
			fields["asset"] = e.Asset
			fields["amount"] = e.Amount
			fields["maturity_epoch"] = e.MaturityEpoch
		case *events.Claimed:
			fields["holder"] = e.Holder
			fields["asset"] = e.Asset
			fields["amount"] = e.Amount
		}
		ul.logger.WithFields(fields).Info(e.EventName())
	}
}

// advanceEpoch turns into a new epoch every epoch.advance_interval when epoch.auto_advance is set.
func (ul *UnbondingLedger) advanceEpoch() {
	defer ul.wg.Done()

	if !ul.Repo.Config.Epoch.AutoAdvance {
		return
	}

	logger := loggers.Logger(loggers.Epoch)
	ticker := time.NewTicker(ul.Repo.Config.Epoch.AdvanceInterval.ToDuration())
	defer ticker.Stop()
	for {
		select {
		case <-ul.Ctx.Done():
			return
		case <-ticker.C:
			var epochInfo framework.EpochInfo
			if err := retry.Retry(func(attempt uint) error {
				info, err := ul.Executor.TurnIntoNewEpoch()
				if err != nil {
					logger.WithFields(logrus.Fields{
						"attempt": attempt,
						"err":     err,
					}).Warn("Turn into new epoch failed, retry")
					return err
				}
				epochInfo = info
				return nil
			}, strategy.Limit(advanceEpochRetryLimit), strategy.Wait(advanceEpochRetryWait)); err != nil {
				logger.WithField("err", err).Error("Turn into new epoch failed")
				continue
			}
			logger.WithFields(logrus.Fields{
				"epoch":      epochInfo.Epoch,
				"start_time": epochInfo.StartTime,
			}).Debug("Epoch advanced by ticker")
		}
	}
}
