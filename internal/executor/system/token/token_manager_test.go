package token

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var (
	admin1 = ethcommon.HexToAddress(repo.DefaultAccounts[0])
	admin2 = ethcommon.HexToAddress(repo.DefaultAccounts[1])
	user   = ethcommon.HexToAddress("0x1000000000000000000000000000000000000001")
	vault  = ethcommon.HexToAddress(common.UnbondingLedgerContractAddr)
)

func prepareTokenManager(t *testing.T) (*common.TestNVM, *TokenManager) {
	testNVM := common.NewTestNVM(t)
	tm := TokenManagerBuildConfig.Build(common.NewTestVMContext(testNVM.StateLedger, ethcommon.Address{}))
	testNVM.GenesisInit(tm)
	return testNVM, tm
}

func TestTokenManager_GenesisInit(t *testing.T) {
	testNVM, tm := prepareTokenManager(t)
	defaultBalance, ok := new(big.Int).SetString(repo.DefaultAccountBalance, 10)
	require.True(t, ok)

	testNVM.Call(tm, ethcommon.Address{}, func() {
		balance, err := tm.BalanceOf(admin1, repo.DefaultAsset)
		assert.Nil(t, err)
		assert.Equal(t, defaultBalance, balance)

		balance, err = tm.BalanceOf(user, repo.DefaultAsset)
		assert.Nil(t, err)
		assert.EqualValues(t, 0, balance.Int64())

		totalSupply, err := tm.TotalSupply(repo.DefaultAsset)
		assert.Nil(t, err)
		assert.Equal(t, new(big.Int).Mul(defaultBalance, big.NewInt(int64(len(repo.DefaultAccounts)))), totalSupply)

		totalSupply, err = tm.TotalSupply("unknown")
		assert.Nil(t, err)
		assert.EqualValues(t, 0, totalSupply.Int64())
	})

	testNVM.Rep.Config.Genesis.Accounts = []repo.GenesisAccount{{Address: user.Hex(), Asset: repo.DefaultAsset, Balance: "-1"}}
	assert.Error(t, tm.GenesisInit(&testNVM.Rep.Config.Genesis))
}

func TestTokenManager_Transfer(t *testing.T) {
	testNVM, tm := prepareTokenManager(t)

	testNVM.RunSingleTX(tm, admin1, func() error {
		err := tm.Transfer(admin2, repo.DefaultAsset, big.NewInt(100))
		assert.Nil(t, err)
		return err
	})

	testNVM.RunSingleTX(tm, user, func() error {
		err := tm.Transfer(admin2, repo.DefaultAsset, big.NewInt(1))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		return err
	})

	testNVM.RunSingleTX(tm, admin1, func() error {
		err := tm.Transfer(admin2, repo.DefaultAsset, big.NewInt(-1))
		assert.ErrorIs(t, err, ErrValue)
		return err
	})

	testNVM.RunSingleTX(tm, admin1, func() error {
		err := tm.Transfer(admin2, "", big.NewInt(1))
		assert.ErrorIs(t, err, ErrEmptyAsset)
		return err
	})

	testNVM.Call(tm, ethcommon.Address{}, func() {
		b1, err := tm.BalanceOf(admin1, repo.DefaultAsset)
		assert.Nil(t, err)
		b2, err := tm.BalanceOf(admin2, repo.DefaultAsset)
		assert.Nil(t, err)
		assert.EqualValues(t, 200, new(big.Int).Sub(b2, b1).Int64())
	})
}

func TestTokenManager_Collect(t *testing.T) {
	testNVM, tm := prepareTokenManager(t)

	testNVM.RunSingleTX(tm, vault, func() error {
		err := tm.Collect(admin1, repo.DefaultAsset, big.NewInt(500))
		assert.ErrorIs(t, err, ErrNotSystemCall)
		return err
	})

	testNVM.RunSingleTX(tm, user, func() error {
		err := tm.Collect(admin1, repo.DefaultAsset, big.NewInt(500))
		assert.ErrorIs(t, err, ErrNotSystemCall)
		return err
	}, common.TestNVMRunOptionCallFromSystem())

	testNVM.RunSingleTX(tm, vault, func() error {
		err := tm.Collect(admin1, repo.DefaultAsset, big.NewInt(500))
		assert.Nil(t, err)
		return err
	}, common.TestNVMRunOptionCallFromSystem())

	testNVM.RunSingleTX(tm, vault, func() error {
		err := tm.Collect(user, repo.DefaultAsset, big.NewInt(1))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		return err
	}, common.TestNVMRunOptionCallFromSystem())

	testNVM.Call(tm, ethcommon.Address{}, func() {
		balance, err := tm.BalanceOf(vault, repo.DefaultAsset)
		assert.Nil(t, err)
		assert.EqualValues(t, 500, balance.Int64())
	})

	testNVM.RunSingleTX(tm, vault, func() error {
		err := tm.Transfer(user, repo.DefaultAsset, big.NewInt(200))
		assert.Nil(t, err)
		return err
	})

	testNVM.Call(tm, ethcommon.Address{}, func() {
		balance, err := tm.BalanceOf(vault, repo.DefaultAsset)
		assert.Nil(t, err)
		assert.EqualValues(t, 300, balance.Int64())
		balance, err = tm.BalanceOf(user, repo.DefaultAsset)
		assert.Nil(t, err)
		assert.EqualValues(t, 200, balance.Int64())
	})
}
