package common

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/axiomesh/unbonding-ledger/internal/ledger"
	"github.com/axiomesh/unbonding-ledger/internal/storagemgr"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

type TestNVM struct {
	t           testing.TB
	Rep         *repo.Repo
	StateLedger ledger.StateLedger
}

func NewTestNVM(t testing.TB) *TestNVM {
	rep := repo.MockRepo(t)
	return &TestNVM{
		t:           t,
		Rep:         rep,
		StateLedger: ledger.NewStateLedgerWithStorage(storagemgr.NewMemory()),
	}
}

func NewTestVMContext(stateLedger ledger.StateLedger, from ethcommon.Address) *VMContext {
	return NewVMContext(stateLedger, from)
}

func (nvm *TestNVM) GenesisInit(contracts ...SystemContract) {
	for _, contract := range contracts {
		contract.SetContext(NewVMContext(nvm.StateLedger, ethcommon.Address{}))
		err := contract.GenesisInit(&nvm.Rep.Config.Genesis)
		assert.Nil(nvm.t, err)
	}
	nvm.StateLedger.Finalise()
}

type TestNVMRunOption func(ctx *VMContext)

func TestNVMRunOptionCallFromSystem() TestNVMRunOption {
	return func(ctx *VMContext) {
		ctx.CallFromSystem = true
	}
}

// RunSingleTX keeps the state changes of executor if it succeeds and reverts them otherwise.
func (nvm *TestNVM) RunSingleTX(contract SystemContract, from ethcommon.Address, executor func() error, opts ...TestNVMRunOption) {
	snapshot := nvm.StateLedger.Snapshot()
	ctx := NewVMContext(nvm.StateLedger, from)
	for _, opt := range opts {
		opt(ctx)
	}
	contract.SetContext(ctx)
	if err := executor(); err != nil {
		nvm.StateLedger.RevertToSnapshot(snapshot)
		return
	}
	nvm.StateLedger.Finalise()
}

// Call always reverts the state changes of executor.
func (nvm *TestNVM) Call(contract SystemContract, from ethcommon.Address, executor func()) {
	snapshot := nvm.StateLedger.Snapshot()
	contract.SetContext(NewVMContext(nvm.StateLedger, from))
	executor()
	nvm.StateLedger.RevertToSnapshot(snapshot)
}
