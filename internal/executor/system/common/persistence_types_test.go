package common

import (
	"fmt"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/internal/ledger"
	"github.com/axiomesh/unbonding-ledger/internal/storagemgr"
	"github.com/axiomesh/unbonding-ledger/pkg/events"
)

type testHolderAsset struct {
	Holder ethcommon.Address
	Asset  string
}

func (k testHolderAsset) String() string {
	return fmt.Sprintf("%s_%s", k.Holder, k.Asset)
}

type testEntry struct {
	MaturityEpoch uint64   `json:"maturity_epoch"`
	Amount        *big.Int `json:"amount"`
}

var (
	testHolder = ethcommon.HexToAddress("0xc7F999b83Af6DF9e67d0a37Ee7e900bF38b3D013")
	testKey    = testHolderAsset{Holder: testHolder, Asset: "AXC"}
)

func newTestAccount() (StateAccount, *ledger.StateLedgerImpl) {
	stateLedger := ledger.NewStateLedgerWithStorage(storagemgr.NewMemory())
	return NewStateAccount(stateLedger, ethcommon.HexToAddress(UnbondingLedgerContractAddr)), stateLedger
}

func TestVMMap_Positions(t *testing.T) {
	account, _ := newTestAccount()
	positions := NewVMMap[testHolderAsset, *big.Int](account, "positions", testHolderAsset.String)

	exist, position, err := positions.Get(testKey)
	require.Nil(t, err)
	assert.False(t, exist)
	assert.Nil(t, position)
	_, err = positions.MustGet(testKey)
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.Nil(t, positions.Put(testKey, big.NewInt(500)))
	position, err = positions.MustGet(testKey)
	require.Nil(t, err)
	assert.EqualValues(t, 500, position.Int64())

	// keys are the composite holder asset tuple
	exist, raw := account.GetState([]byte(fmt.Sprintf("positions_%s_AXC", testHolder)))
	assert.True(t, exist)
	assert.Equal(t, "500", string(raw))

	other := testHolderAsset{Holder: testHolder, Asset: "USDT"}
	exist, _, err = positions.Get(other)
	require.Nil(t, err)
	assert.False(t, exist)

	require.Nil(t, positions.Delete(testKey))
	exist, _, err = positions.Get(testKey)
	require.Nil(t, err)
	assert.False(t, exist)
}

func TestVMMap_MaxUint256RoundTrip(t *testing.T) {
	account, stateLedger := newTestAccount()
	totals := NewVMMap[string, *big.Int](account, "totalLocked", func(asset string) string { return asset })

	require.Nil(t, totals.Put("AXC", math.MaxBig256))
	stateLedger.Finalise()
	_, err := stateLedger.Commit()
	require.Nil(t, err)

	total, err := totals.MustGet("AXC")
	require.Nil(t, err)
	assert.Equal(t, 0, math.MaxBig256.Cmp(total))
	assert.Equal(t, 256, total.BitLen())
}

func TestVMMap_DecodeError(t *testing.T) {
	account, _ := newTestAccount()
	positions := NewVMMap[testHolderAsset, *big.Int](account, "positions", testHolderAsset.String)

	account.SetState([]byte(fmt.Sprintf("positions_%s", testKey)), []byte(`"not a number"`))
	_, _, err := positions.Get(testKey)
	assert.ErrorContains(t, err, "decode state")
}

func TestVMSlot_CurrentEpoch(t *testing.T) {
	account, stateLedger := newTestAccount()
	currentEpoch := NewVMSlot[uint64](account, "currentEpochID")

	_, err := currentEpoch.MustGet()
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.Nil(t, currentEpoch.Put(10))
	snapshot := stateLedger.Snapshot()
	require.Nil(t, currentEpoch.Put(11))
	epoch, err := currentEpoch.MustGet()
	require.Nil(t, err)
	assert.EqualValues(t, 11, epoch)

	stateLedger.RevertToSnapshot(snapshot)
	epoch, err = currentEpoch.MustGet()
	require.Nil(t, err)
	assert.EqualValues(t, 10, epoch)

	require.Nil(t, currentEpoch.Delete())
	exist, _, err := currentEpoch.Get()
	require.Nil(t, err)
	assert.False(t, exist)
}

func TestVMArray_UnbondingQueue(t *testing.T) {
	account, stateLedger := newTestAccount()
	name := fmt.Sprintf("unbonding_%s", testKey)
	queue := NewVMArray[testEntry](account, name)

	l, err := queue.Len()
	require.Nil(t, err)
	assert.EqualValues(t, 0, l)
	values, err := queue.Values()
	require.Nil(t, err)
	assert.Empty(t, values)
	assert.Error(t, queue.Set(0, testEntry{}))

	require.Nil(t, queue.Push(testEntry{MaturityEpoch: 25, Amount: big.NewInt(200)}))
	require.Nil(t, queue.Push(testEntry{MaturityEpoch: 30, Amount: big.NewInt(100)}))
	require.Nil(t, queue.Push(testEntry{MaturityEpoch: 35, Amount: math.MaxBig256}))
	require.Nil(t, queue.Set(0, testEntry{MaturityEpoch: 25, Amount: big.NewInt(250)}))

	stateLedger.Finalise()
	_, err = stateLedger.Commit()
	require.Nil(t, err)

	values, err = queue.Values()
	require.Nil(t, err)
	assert.Equal(t, []testEntry{
		{MaturityEpoch: 25, Amount: big.NewInt(250)},
		{MaturityEpoch: 30, Amount: big.NewInt(100)},
		{MaturityEpoch: 35, Amount: math.MaxBig256},
	}, values)
	exist, raw := account.GetState([]byte(name + "_1"))
	assert.True(t, exist)
	assert.JSONEq(t, `{"maturity_epoch":30,"amount":100}`, string(raw))

	// shrinking clears the slots past the new length
	require.Nil(t, queue.Reset([]testEntry{{MaturityEpoch: 35, Amount: math.MaxBig256}}))
	values, err = queue.Values()
	require.Nil(t, err)
	assert.Equal(t, []testEntry{{MaturityEpoch: 35, Amount: math.MaxBig256}}, values)
	for _, i := range []string{"_1", "_2"} {
		exist, _ = account.GetState([]byte(name + i))
		assert.False(t, exist)
	}

	require.Nil(t, queue.Reset(nil))
	l, err = queue.Len()
	require.Nil(t, err)
	assert.EqualValues(t, 0, l)
	exist, _ = account.GetState([]byte(name + "_len"))
	assert.False(t, exist)
	exist, _ = account.GetState([]byte(name + "_0"))
	assert.False(t, exist)
}

func TestReentrancyGuard(t *testing.T) {
	rg := NewReentrancyGuard()
	assert.False(t, rg.IsEntered())
	require.Nil(t, rg.Enter())
	assert.True(t, rg.IsEntered())
	assert.ErrorIs(t, rg.Enter(), ErrReentrantCall)
	rg.Exit()
	assert.False(t, rg.IsEntered())
	require.Nil(t, rg.Enter())
}

func TestIsSystemContract(t *testing.T) {
	assert.True(t, IsSystemContract(ethcommon.HexToAddress(UnbondingLedgerContractAddr)))
	assert.True(t, IsSystemContract(ethcommon.HexToAddress(SystemContractEndAddr)))
	assert.False(t, IsSystemContract(ethcommon.HexToAddress(ZeroAddress)))
	assert.False(t, IsSystemContract(ethcommon.HexToAddress("0x0000000000000000000000000000000000010000")))
}

func TestVMContextEvents(t *testing.T) {
	ctx := NewVMContext(ledger.NewStateLedgerWithStorage(storagemgr.NewMemory()), ethcommon.Address{})
	base := &SystemContractBase{EthAddress: ethcommon.HexToAddress(TokenManagerContractAddr)}
	base.SetContext(ctx)

	cross := base.CrossCallSystemContractContext()
	assert.Equal(t, base.EthAddress, cross.From)
	assert.True(t, cross.CallFromSystem)
	cross.EmitEvent(&events.Locked{Holder: base.EthAddress, Asset: "AXC"})
	assert.Len(t, ctx.CollectedEvents(), 1)

	assert.Nil(t, (&VMContext{}).CollectedEvents())
}
