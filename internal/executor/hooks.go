package executor

import (
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/pkg/events"
)

func (exec *LedgerExecutor) updateEpochMetrics(executed *events.ExecutedEvent) {
	currentEpochGauge.Set(float64(executed.Epoch))
}

func (exec *LedgerExecutor) postExecutedEvent(executed *events.ExecutedEvent) {
	if len(executed.Events) == 0 {
		return
	}
	for _, e := range executed.Events {
		publishedEventCounter.WithLabelValues(e.EventName()).Inc()
	}
	n := exec.executedFeed.Send(*executed)
	exec.logger.WithFields(logrus.Fields{
		"version":     executed.Version,
		"events":      len(executed.Events),
		"subscribers": n,
	}).Debug("Post executed event")
}
