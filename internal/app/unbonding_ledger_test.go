package app

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

func newTestUnbondingLedger(t *testing.T, rep *repo.Repo) *UnbondingLedger {
	rep.Config.Port.JsonRpc = 0
	rep.Config.Port.Monitor = 0
	ctx, cancel := context.WithCancel(context.Background())
	ul, err := NewUnbondingLedger(rep, ctx, cancel)
	require.Nil(t, err)
	require.Nil(t, ul.Start())
	return ul
}

func TestUnbondingLedger_StartStop(t *testing.T) {
	ul := newTestUnbondingLedger(t, repo.MockRepo(t))

	holder := ethcommon.HexToAddress(repo.DefaultAccounts[0])
	require.Nil(t, ul.Executor.Lock(holder, repo.DefaultAsset, big.NewInt(100)))
	position, err := ul.Executor.GetPosition(holder, repo.DefaultAsset)
	require.Nil(t, err)
	assert.EqualValues(t, 100, position.Int64())

	require.Nil(t, ul.Stop())
}

func TestUnbondingLedger_AutoAdvanceEpoch(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.Config.Epoch.AutoAdvance = true
	rep.Config.Epoch.AdvanceInterval = repo.Duration(10 * time.Millisecond)
	ul := newTestUnbondingLedger(t, rep)
	defer func() {
		assert.Nil(t, ul.Stop())
	}()

	assert.Eventually(t, func() bool {
		epochInfo, err := ul.Executor.CurrentEpochInfo()
		return err == nil && epochInfo.Epoch >= 3
	}, 5*time.Second, 10*time.Millisecond)
}

func TestMonitor(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.Config.Monitor.Enable = true
	rep.Config.Port.Monitor = 0
	m := NewMonitor(rep)
	require.Nil(t, m.Start())
	defer func() {
		assert.Nil(t, m.Stop())
	}()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unbonding_ledger_executor_current_epoch")
}
