package admin

import (
	"github.com/sirupsen/logrus"

	rpctypes "github.com/axiomesh/unbonding-ledger/api/jsonrpc/types"
	"github.com/axiomesh/unbonding-ledger/internal/executor"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

// AdminAPI lets an external driver feed the epoch signal, only served when jsonrpc.enable_admin is set
type AdminAPI struct {
	rep    *repo.Repo
	exec   executor.Executor
	logger logrus.FieldLogger
}

func NewAdminAPI(rep *repo.Repo, exec executor.Executor, logger logrus.FieldLogger) *AdminAPI {
	return &AdminAPI{rep: rep, exec: exec, logger: logger}
}

func (api *AdminAPI) TurnIntoNewEpoch() (*rpctypes.EpochInfo, error) {
	epochInfo, err := api.exec.TurnIntoNewEpoch()
	if err != nil {
		return nil, rpctypes.NewLedgerError(err)
	}
	api.logger.WithField("epoch", epochInfo.Epoch).Info("Turn into new epoch by admin")
	return rpctypes.NewEpochInfo(epochInfo), nil
}
