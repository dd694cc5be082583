package jsonrpc

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rpctypes "github.com/axiomesh/unbonding-ledger/api/jsonrpc/types"
	"github.com/axiomesh/unbonding-ledger/internal/executor"
	"github.com/axiomesh/unbonding-ledger/internal/executor/system/unbonding"
	"github.com/axiomesh/unbonding-ledger/internal/ledger"
	"github.com/axiomesh/unbonding-ledger/internal/storagemgr"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var (
	holder = ethcommon.HexToAddress(repo.DefaultAccounts[0])
	asset  = repo.DefaultAsset
)

func newTestService(t *testing.T, enableAdmin bool) (*LedgerBrokerService, *rpc.Client) {
	rep := repo.MockRepo(t)
	rep.Config.JsonRPC.EnableAdmin = enableAdmin
	exec, err := executor.New(rep, ledger.NewStateLedgerWithStorage(storagemgr.NewMemory()))
	require.Nil(t, err)

	s, err := NewLedgerBrokerService(rep, exec)
	require.Nil(t, err)
	client := rpc.DialInProc(s.RPCServer())
	t.Cleanup(func() {
		client.Close()
		s.RPCServer().Stop()
	})
	return s, client
}

func hexBig(v int64) *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(v))
}

func requireErrorCode(t *testing.T, err error, code int) {
	var rpcErr rpc.Error
	require.True(t, errors.As(err, &rpcErr), "unexpected error %v", err)
	assert.Equal(t, code, rpcErr.ErrorCode())
}

func TestUnbondingAPI(t *testing.T) {
	_, client := newTestService(t, true)

	var ok bool
	require.Nil(t, client.Call(&ok, "unbonding_lock", holder, asset, hexBig(500)))
	assert.True(t, ok)

	var position hexutil.Big
	require.Nil(t, client.Call(&position, "unbonding_getPosition", holder, asset))
	assert.EqualValues(t, 500, position.ToInt().Int64())

	var descriptor rpctypes.UnlockedDescriptor
	require.Nil(t, client.Call(&descriptor, "unbonding_unlock", holder, asset, hexBig(200)))
	assert.Equal(t, asset, descriptor.Asset)
	assert.EqualValues(t, 1+repo.DefaultUnbondPeriod, descriptor.MaturityEpoch)
	assert.EqualValues(t, 200, descriptor.Amount.ToInt().Int64())

	var entries []rpctypes.UnbondingEntry
	require.Nil(t, client.Call(&entries, "unbonding_getUnbondingQueue", holder, asset))
	require.Len(t, entries, 1)
	assert.EqualValues(t, 1+repo.DefaultUnbondPeriod, entries[0].MaturityEpoch)

	var payout hexutil.Big
	err := client.Call(&payout, "unbonding_claim", holder, asset)
	requireErrorCode(t, err, rpctypes.ErrCodeNothingToClaim)

	for i := uint64(0); i < repo.DefaultUnbondPeriod; i++ {
		var epochInfo rpctypes.EpochInfo
		require.Nil(t, client.Call(&epochInfo, "admin_turnIntoNewEpoch"))
		assert.EqualValues(t, i+2, epochInfo.Epoch)
	}

	var claimable hexutil.Big
	require.Nil(t, client.Call(&claimable, "unbonding_getClaimableAmount", holder, asset))
	assert.EqualValues(t, 200, claimable.ToInt().Int64())
	var unlocking hexutil.Big
	require.Nil(t, client.Call(&unlocking, "unbonding_getUnlockingAmount", holder, asset))
	assert.EqualValues(t, 0, unlocking.ToInt().Int64())

	require.Nil(t, client.Call(&payout, "unbonding_claim", holder, asset))
	assert.EqualValues(t, 200, payout.ToInt().Int64())

	var epochInfo rpctypes.EpochInfo
	require.Nil(t, client.Call(&epochInfo, "unbonding_currentEpoch"))
	assert.EqualValues(t, 1+repo.DefaultUnbondPeriod, epochInfo.Epoch)

	var balance hexutil.Big
	require.Nil(t, client.Call(&balance, "unbonding_balanceOf", holder, asset))
	expected, _ := new(big.Int).SetString(repo.DefaultAccountBalance, 10)
	assert.Equal(t, new(big.Int).Sub(expected, big.NewInt(300)), balance.ToInt())

	var totalLocked, totalUnbonding hexutil.Big
	require.Nil(t, client.Call(&totalLocked, "unbonding_totalLocked", asset))
	assert.EqualValues(t, 300, totalLocked.ToInt().Int64())
	require.Nil(t, client.Call(&totalUnbonding, "unbonding_totalUnbonding", asset))
	assert.EqualValues(t, 0, totalUnbonding.ToInt().Int64())

	var assets []string
	require.Nil(t, client.Call(&assets, "unbonding_supportedAssets"))
	assert.Equal(t, []string{asset}, assets)

	var unbondPeriod hexutil.Uint64
	require.Nil(t, client.Call(&unbondPeriod, "unbonding_unbondPeriod"))
	assert.EqualValues(t, repo.DefaultUnbondPeriod, unbondPeriod)
}

func TestUnbondingAPI_ErrorCodes(t *testing.T) {
	_, client := newTestService(t, false)

	var ok bool
	requireErrorCode(t, client.Call(&ok, "unbonding_lock", holder, asset, hexBig(0)), rpctypes.ErrCodeInvalidAmount)
	requireErrorCode(t, client.Call(&ok, "unbonding_lock", holder, asset, nil), rpctypes.ErrCodeInvalidParams)
	requireErrorCode(t, client.Call(&ok, "unbonding_lock", holder, "UNKNOWN", hexBig(1)), rpctypes.ErrCodeUnsupportedAsset)
	poor := ethcommon.HexToAddress("0x1000000000000000000000000000000000000001")
	requireErrorCode(t, client.Call(&ok, "unbonding_lock", poor, asset, hexBig(1)), rpctypes.ErrCodeTransferFailure)

	var descriptor rpctypes.UnlockedDescriptor
	requireErrorCode(t, client.Call(&descriptor, "unbonding_unlock", holder, asset, hexBig(1)), rpctypes.ErrCodeInsufficientBalance)
	requireErrorCode(t, client.Call(&descriptor, "unbonding_unlock", holder, asset, nil), rpctypes.ErrCodeInvalidParams)

	var total hexutil.Big
	requireErrorCode(t, client.Call(&total, "unbonding_totalLocked", "UNKNOWN"), rpctypes.ErrCodeUnsupportedAsset)

	// admin namespace is disabled
	var epochInfo rpctypes.EpochInfo
	err := client.Call(&epochInfo, "admin_turnIntoNewEpoch")
	assert.Error(t, err)
}

func TestLedgerBrokerService_Health(t *testing.T) {
	s, _ := newTestService(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"normal","epoch":1,"version":1}`, w.Body.String())
}

func TestLedgerBrokerService_RateLimit(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.Config.JsonRPC.Limiter = repo.JLimiter{
		Enable:   true,
		Interval: repo.Duration(time.Hour),
		Quantum:  1,
		Capacity: 2,
	}
	exec, err := executor.New(rep, ledger.NewStateLedgerWithStorage(storagemgr.NewMemory()))
	require.Nil(t, err)
	s, err := NewLedgerBrokerService(rep, exec)
	require.Nil(t, err)
	defer s.RPCServer().Stop()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLedgerBrokerService_Cors(t *testing.T) {
	s, _ := newTestService(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewLedgerError(t *testing.T) {
	assert.Nil(t, rpctypes.NewLedgerError(nil))

	err := rpctypes.NewLedgerError(errors.New("boom"))
	requireErrorCode(t, err, rpctypes.ErrCodeInternal)
	assert.Equal(t, "boom", err.Error())

	err = rpctypes.NewLedgerError(errors.Wrap(unbonding.ErrMaturityEpochOverflow, "current epoch 1"))
	requireErrorCode(t, err, rpctypes.ErrCodeMaturityEpochOverflow)

	err = rpctypes.NewLedgerError(rpctypes.NewInvalidParamsError("missing amount"))
	requireErrorCode(t, err, rpctypes.ErrCodeInvalidParams)
}
