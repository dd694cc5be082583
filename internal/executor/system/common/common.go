package common

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/internal/ledger"
	"github.com/axiomesh/unbonding-ledger/pkg/events"
	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

const (
	// ZeroAddress is a special address, no one has control
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// system contract address range 0x1000-0xffff
	// SystemContractStartAddr is the start address of system contract
	SystemContractStartAddr = "0x0000000000000000000000000000000000001000"

	// TokenManagerContractAddr is the contract to used to manager asset balances
	TokenManagerContractAddr = "0x0000000000000000000000000000000000001002"

	// EpochManagerContractAddr is the contract to used to manager ledger epoch info
	EpochManagerContractAddr = "0x0000000000000000000000000000000000001006"

	// UnbondingLedgerContractAddr is the contract holding locked positions and unbonding queues
	UnbondingLedgerContractAddr = "0x0000000000000000000000000000000000001007"

	// SystemContractEndAddr is the end address of system contract
	SystemContractEndAddr = "0x000000000000000000000000000000000000ffff"
)

type VMContext struct {
	StateLedger ledger.StateLedger

	// the account which sends the current operation
	From ethcommon.Address

	CallFromSystem bool

	// events emitted by the current operation, published after commit
	Events *[]events.Event
}

func NewVMContext(stateLedger ledger.StateLedger, from ethcommon.Address) *VMContext {
	return &VMContext{
		StateLedger: stateLedger,
		From:        from,
		Events:      &[]events.Event{},
	}
}

// NewViewVMContext returns a context for read-only calls.
func NewViewVMContext(stateLedger ledger.StateLedger) *VMContext {
	return NewVMContext(stateLedger, ethcommon.Address{})
}

func (ctx *VMContext) EmitEvent(e events.Event) {
	if ctx.Events == nil {
		return
	}
	*ctx.Events = append(*ctx.Events, e)
}

func (ctx *VMContext) CollectedEvents() []events.Event {
	if ctx.Events == nil {
		return nil
	}
	return *ctx.Events
}

// SystemContract must be implemented by all system contract
type SystemContract interface {
	GenesisInit(genesis *repo.GenesisConfig) error

	SetContext(*VMContext)
}

type SystemContractBuildConfig[T SystemContract] struct {
	Name        string
	Address     string
	Constructor func(systemContractBase SystemContractBase) T
}

func (cfg *SystemContractBuildConfig[T]) Build(ctx *VMContext) T {
	addr := ethcommon.HexToAddress(cfg.Address)
	contract := cfg.Constructor(SystemContractBase{
		Logger:     loggers.Logger(loggers.SystemContract).WithField("contract", cfg.Name),
		EthAddress: addr,
	})
	contract.SetContext(ctx)
	return contract
}

type SystemContractBase struct {
	Logger       logrus.FieldLogger
	EthAddress   ethcommon.Address
	Ctx          *VMContext
	StateAccount StateAccount
}

func (s *SystemContractBase) SetContext(ctx *VMContext) {
	s.Ctx = ctx
	s.StateAccount = NewStateAccount(ctx.StateLedger, s.EthAddress)
}

// CrossCallSystemContractContext returns the context used when this contract calls another system contract,
// the callee sees this contract as the sender and shares the same state ledger and events.
func (s *SystemContractBase) CrossCallSystemContractContext() *VMContext {
	return &VMContext{
		StateLedger:    s.Ctx.StateLedger,
		From:           s.EthAddress,
		CallFromSystem: true,
		Events:         s.Ctx.Events,
	}
}

// StateAccount is the storage space of one contract inside the state ledger.
type StateAccount interface {
	GetAddress() ethcommon.Address
	GetState(key []byte) (bool, []byte)
	SetState(key []byte, value []byte)
}

type stateAccount struct {
	stateLedger ledger.StateLedger
	addr        ethcommon.Address
}

func NewStateAccount(stateLedger ledger.StateLedger, addr ethcommon.Address) StateAccount {
	return &stateAccount{
		stateLedger: stateLedger,
		addr:        addr,
	}
}

func (a *stateAccount) GetAddress() ethcommon.Address {
	return a.addr
}

func (a *stateAccount) GetState(key []byte) (bool, []byte) {
	return a.stateLedger.GetState(a.addr, key)
}

func (a *stateAccount) SetState(key []byte, value []byte) {
	a.stateLedger.SetState(a.addr, key, value)
}

func IsSystemContract(addr ethcommon.Address) bool {
	start := ethcommon.HexToAddress(SystemContractStartAddr)
	end := ethcommon.HexToAddress(SystemContractEndAddr)
	return addr.Big().Cmp(start.Big()) >= 0 && addr.Big().Cmp(end.Big()) <= 0
}
