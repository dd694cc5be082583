package main

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/cheynewallace/tabby"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hokaccha/go-prettyjson"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	rpctypes "github.com/axiomesh/unbonding-ledger/api/jsonrpc/types"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var rpcAddr = "http://127.0.0.1:8881"

var rpcFlag = &cli.StringFlag{
	Name:        "rpc",
	Aliases:     []string{"r"},
	Destination: &rpcAddr,
	Usage:       "rpc server addr",
	Required:    false,
	DefaultText: "http://127.0.0.1:8881",
}

var ledgerArgs = struct {
	Account string
	Asset   string
	Amount  string
	JSON    bool
}{}

func accountFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "account",
		Aliases:     []string{"a"},
		Destination: &ledgerArgs.Account,
		Usage:       usage,
		Required:    true,
	}
}

var assetFlag = &cli.StringFlag{
	Name:        "asset",
	Destination: &ledgerArgs.Asset,
	Usage:       "asset name",
	Value:       repo.DefaultAsset,
}

var jsonFlag = &cli.BoolFlag{
	Name:        "json",
	Destination: &ledgerArgs.JSON,
	Usage:       "print the result as json instead of tables",
}

var amountFlag = &cli.StringFlag{
	Name:        "amount",
	Destination: &ledgerArgs.Amount,
	Usage:       "decimal amount, unit: mol",
	Required:    true,
}

var ledgerCMD = &cli.Command{
	Name:  "ledger",
	Usage: "The unbonding ledger commands, sent to a running node",
	Flags: []cli.Flag{
		rpcFlag,
	},
	Subcommands: []*cli.Command{
		{
			Name:   "lock",
			Usage:  "Lock asset from the account balance",
			Flags:  []cli.Flag{accountFlag("sender account"), assetFlag, amountFlag},
			Action: lock,
		},
		{
			Name:   "unlock",
			Usage:  "Unlock locked asset into the unbonding queue",
			Flags:  []cli.Flag{accountFlag("sender account"), assetFlag, amountFlag},
			Action: unlock,
		},
		{
			Name:   "claim",
			Usage:  "Claim every matured unbonding entry",
			Flags:  []cli.Flag{accountFlag("sender account"), assetFlag},
			Action: claim,
		},
		{
			Name:   "info",
			Usage:  "Show the position, unbonding queue and balance of an account",
			Flags:  []cli.Flag{accountFlag("holder account"), assetFlag, jsonFlag},
			Action: info,
		},
	},
}

var epochCMD = &cli.Command{
	Name:  "epoch",
	Usage: "The epoch manage commands, sent to a running node",
	Flags: []cli.Flag{
		rpcFlag,
	},
	Subcommands: []*cli.Command{
		{
			Name:   "current",
			Usage:  "Get current epoch info",
			Action: getCurrentEpoch,
		},
		{
			Name:   "next",
			Usage:  "Turn into a new epoch, requires jsonrpc.enable_admin on the node",
			Action: turnIntoNewEpoch,
		},
	},
}

func dial(ctx *cli.Context) (*rpc.Client, error) {
	client, err := rpc.DialContext(ctx.Context, rpcAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s failed", rpcAddr)
	}
	return client, nil
}

func parseAccount() (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(ledgerArgs.Account) {
		return ethcommon.Address{}, errors.Errorf("invalid account: %s", ledgerArgs.Account)
	}
	return ethcommon.HexToAddress(ledgerArgs.Account), nil
}

func parseAmount() (*hexutil.Big, error) {
	amount, ok := new(big.Int).SetString(ledgerArgs.Amount, 10)
	if !ok {
		return nil, errors.Errorf("invalid amount: %s", ledgerArgs.Amount)
	}
	return (*hexutil.Big)(amount), nil
}

func pretty(d any) error {
	res, err := prettyjson.Marshal(d)
	if err != nil {
		return err
	}
	fmt.Println(string(res))
	return nil
}

func lock(ctx *cli.Context) error {
	return send(ctx, "unbonding_lock", true)
}

func unlock(ctx *cli.Context) error {
	return send(ctx, "unbonding_unlock", true)
}

func claim(ctx *cli.Context) error {
	return send(ctx, "unbonding_claim", false)
}

func send(ctx *cli.Context, method string, withAmount bool) error {
	account, err := parseAccount()
	if err != nil {
		return err
	}
	args := []any{account, ledgerArgs.Asset}
	if withAmount {
		amount, err := parseAmount()
		if err != nil {
			return err
		}
		args = append(args, amount)
	}

	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var res json.RawMessage
	if err := client.CallContext(ctx.Context, &res, method, args...); err != nil {
		return err
	}
	return pretty(res)
}

func info(ctx *cli.Context) error {
	account, err := parseAccount()
	if err != nil {
		return err
	}
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var res struct {
		Position       *hexutil.Big              `json:"position"`
		Unlocking      *hexutil.Big              `json:"unlocking"`
		Claimable      *hexutil.Big              `json:"claimable"`
		Balance        *hexutil.Big              `json:"balance"`
		UnbondingQueue []rpctypes.UnbondingEntry `json:"unbondingQueue"`
	}
	calls := []struct {
		method string
		result any
	}{
		{method: "unbonding_getPosition", result: &res.Position},
		{method: "unbonding_getUnlockingAmount", result: &res.Unlocking},
		{method: "unbonding_getClaimableAmount", result: &res.Claimable},
		{method: "unbonding_balanceOf", result: &res.Balance},
		{method: "unbonding_getUnbondingQueue", result: &res.UnbondingQueue},
	}
	batch := make([]rpc.BatchElem, 0, len(calls))
	for _, c := range calls {
		batch = append(batch, rpc.BatchElem{
			Method: c.method,
			Args:   []any{account, ledgerArgs.Asset},
			Result: c.result,
		})
	}
	if err := client.BatchCallContext(ctx.Context, batch); err != nil {
		return err
	}
	for _, elem := range batch {
		if elem.Error != nil {
			return errors.Wrapf(elem.Error, "call %s failed", elem.Method)
		}
	}
	if ledgerArgs.JSON {
		return pretty(res)
	}

	summary := tabby.New()
	summary.AddHeader("ACCOUNT", "ASSET", "BALANCE", "LOCKED", "UNLOCKING", "CLAIMABLE")
	summary.AddLine(account.String(), ledgerArgs.Asset, bigString(res.Balance), bigString(res.Position), bigString(res.Unlocking), bigString(res.Claimable))
	summary.Print()
	fmt.Println()

	queue := tabby.New()
	queue.AddHeader("MATURITY_EPOCH", "AMOUNT")
	for _, entry := range res.UnbondingQueue {
		queue.AddLine(uint64(entry.MaturityEpoch), bigString(entry.Amount))
	}
	queue.Print()
	return nil
}

func bigString(v *hexutil.Big) string {
	if v == nil {
		return "0"
	}
	return v.ToInt().String()
}

func getCurrentEpoch(ctx *cli.Context) error {
	return callEpoch(ctx, "unbonding_currentEpoch")
}

func turnIntoNewEpoch(ctx *cli.Context) error {
	return callEpoch(ctx, "admin_turnIntoNewEpoch")
}

func callEpoch(ctx *cli.Context, method string) error {
	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	var epochInfo rpctypes.EpochInfo
	if err := client.CallContext(ctx.Context, &epochInfo, method); err != nil {
		return err
	}
	return pretty(epochInfo)
}
