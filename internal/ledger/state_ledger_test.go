package ledger

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/internal/storagemgr"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var (
	addr1 = ethcommon.HexToAddress("0x1000000000000000000000000000000000000001")
	addr2 = ethcommon.HexToAddress("0x1000000000000000000000000000000000000002")
)

func TestStateLedger_GetSetState(t *testing.T) {
	l := NewStateLedgerWithStorage(storagemgr.NewMemory())

	exist, value := l.GetState(addr1, []byte("k"))
	assert.False(t, exist)
	assert.Nil(t, value)

	l.SetState(addr1, []byte("k"), []byte("v"))
	exist, value = l.GetState(addr1, []byte("k"))
	assert.True(t, exist)
	assert.Equal(t, []byte("v"), value)

	exist, _ = l.GetState(addr2, []byte("k"))
	assert.False(t, exist)

	l.SetState(addr1, []byte("k"), nil)
	exist, _ = l.GetState(addr1, []byte("k"))
	assert.False(t, exist)
}

func TestStateLedger_RevertToSnapshot(t *testing.T) {
	l := NewStateLedgerWithStorage(storagemgr.NewMemory())
	l.SetState(addr1, []byte("a"), []byte("1"))
	l.Finalise()
	_, err := l.Commit()
	require.Nil(t, err)

	snap := l.Snapshot()
	l.SetState(addr1, []byte("a"), []byte("2"))
	l.SetState(addr1, []byte("b"), []byte("1"))

	inner := l.Snapshot()
	l.SetState(addr1, []byte("a"), nil)
	exist, _ := l.GetState(addr1, []byte("a"))
	assert.False(t, exist)

	l.RevertToSnapshot(inner)
	_, value := l.GetState(addr1, []byte("a"))
	assert.Equal(t, []byte("2"), value)

	l.RevertToSnapshot(snap)
	_, value = l.GetState(addr1, []byte("a"))
	assert.Equal(t, []byte("1"), value)
	exist, _ = l.GetState(addr1, []byte("b"))
	assert.False(t, exist)

	assert.Panics(t, func() {
		l.RevertToSnapshot(inner)
	})
}

func TestStateLedger_Commit(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.Config.Storage.KvType = repo.KVStorageTypeLeveldb
	require.Nil(t, storagemgr.Initialize(rep.Config))

	l, err := NewStateLedger(rep)
	require.Nil(t, err)
	assert.EqualValues(t, 0, l.Version())

	l.SetState(addr1, []byte("a"), []byte("1"))
	l.SetState(addr1, []byte("b"), []byte("1"))
	_, err = l.Commit()
	require.NotNil(t, err)

	l.Finalise()
	version, err := l.Commit()
	require.Nil(t, err)
	assert.EqualValues(t, 1, version)

	l.SetState(addr1, []byte("b"), nil)
	l.Finalise()
	_, err = l.Commit()
	require.Nil(t, err)

	l.SetState(addr1, []byte("c"), []byte("uncommitted"))
	l.Close()

	reopened, err := NewStateLedger(rep)
	require.Nil(t, err)
	defer reopened.Close()
	assert.EqualValues(t, 2, reopened.Version())
	_, value := reopened.GetState(addr1, []byte("a"))
	assert.Equal(t, []byte("1"), value)
	exist, _ := reopened.GetState(addr1, []byte("b"))
	assert.False(t, exist)
	exist, _ = reopened.GetState(addr1, []byte("c"))
	assert.False(t, exist)
}

func TestStateLedger_Clear(t *testing.T) {
	l := NewStateLedgerWithStorage(storagemgr.NewMemory())
	l.SetState(addr1, []byte("a"), []byte("1"))
	l.Snapshot()
	l.Clear()
	exist, _ := l.GetState(addr1, []byte("a"))
	assert.False(t, exist)
	l.Finalise()
	version, err := l.Commit()
	require.Nil(t, err)
	assert.EqualValues(t, 1, version)
}
