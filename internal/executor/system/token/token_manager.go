package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/internal/executor/system/common"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var _ IToken = (*TokenManager)(nil)

var TokenManagerBuildConfig = &common.SystemContractBuildConfig[*TokenManager]{
	Name:    "token_manager",
	Address: common.TokenManagerContractAddr,
	Constructor: func(systemContractBase common.SystemContractBase) *TokenManager {
		return &TokenManager{
			SystemContractBase: systemContractBase,
		}
	},
}

// TokenManager keeps the per asset balances of every account.
type TokenManager struct {
	common.SystemContractBase

	// account_asset -> balance
	balances *common.VMMap[accountAsset, *big.Int]

	// asset -> total supply
	totalSupply *common.VMMap[string, *big.Int]
}

func (tm *TokenManager) GenesisInit(genesis *repo.GenesisConfig) error {
	for _, account := range genesis.Accounts {
		balance, err := account.BalanceBigInt()
		if err != nil {
			return err
		}
		if err := tm.mint(ethcommon.HexToAddress(account.Address), account.Asset, balance); err != nil {
			return errors.Wrapf(err, "failed to init balance of %s", account.Address)
		}
	}
	return nil
}

func (tm *TokenManager) SetContext(context *common.VMContext) {
	tm.SystemContractBase.SetContext(context)

	tm.balances = common.NewVMMap[accountAsset, *big.Int](tm.StateAccount, BalancesStorageKey, func(key accountAsset) string {
		return key.String()
	})
	tm.totalSupply = common.NewVMMap[string, *big.Int](tm.StateAccount, TotalSupplyStorageKey, func(asset string) string {
		return asset
	})
}

func (tm *TokenManager) TotalSupply(asset string) (*big.Int, error) {
	exist, totalSupply, err := tm.totalSupply.Get(asset)
	if err != nil {
		return nil, err
	}
	if !exist {
		return big.NewInt(0), nil
	}
	return totalSupply, nil
}

func (tm *TokenManager) BalanceOf(account ethcommon.Address, asset string) (*big.Int, error) {
	exist, balance, err := tm.balances.Get(accountAsset{Account: account, Asset: asset})
	if err != nil {
		return nil, err
	}
	if !exist {
		return big.NewInt(0), nil
	}
	return balance, nil
}

func (tm *TokenManager) Transfer(recipient ethcommon.Address, asset string, value *big.Int) error {
	return tm.transfer(tm.Ctx.From, recipient, asset, value)
}

func (tm *TokenManager) Collect(sender ethcommon.Address, asset string, value *big.Int) error {
	if !tm.Ctx.CallFromSystem || !common.IsSystemContract(tm.Ctx.From) {
		return ErrNotSystemCall
	}
	return tm.transfer(sender, tm.Ctx.From, asset, value)
}

func (tm *TokenManager) mint(account ethcommon.Address, asset string, value *big.Int) error {
	if err := checkArgs(asset, value); err != nil {
		return err
	}
	totalSupply, err := tm.TotalSupply(asset)
	if err != nil {
		return err
	}
	if err := tm.totalSupply.Put(asset, new(big.Int).Add(totalSupply, value)); err != nil {
		return err
	}
	balance, err := tm.BalanceOf(account, asset)
	if err != nil {
		return err
	}
	return tm.balances.Put(accountAsset{Account: account, Asset: asset}, new(big.Int).Add(balance, value))
}

func (tm *TokenManager) transfer(sender, recipient ethcommon.Address, asset string, value *big.Int) error {
	if err := checkArgs(asset, value); err != nil {
		return err
	}
	senderBalance, err := tm.BalanceOf(sender, asset)
	if err != nil {
		return err
	}
	if senderBalance.Cmp(value) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "%s has %s %s, need %s", sender, senderBalance, asset, value)
	}
	if sender == recipient {
		return nil
	}
	recipientBalance, err := tm.BalanceOf(recipient, asset)
	if err != nil {
		return err
	}

	if err := tm.balances.Put(accountAsset{Account: sender, Asset: asset}, new(big.Int).Sub(senderBalance, value)); err != nil {
		return err
	}
	if err := tm.balances.Put(accountAsset{Account: recipient, Asset: asset}, new(big.Int).Add(recipientBalance, value)); err != nil {
		return err
	}

	tm.Logger.WithFields(logrus.Fields{
		"from":   sender,
		"to":     recipient,
		"asset":  asset,
		"amount": value,
	}).Debug("Transfer")
	return nil
}

func checkArgs(asset string, value *big.Int) error {
	if asset == "" {
		return ErrEmptyAsset
	}
	if value == nil || value.Sign() < 0 {
		return ErrValue
	}
	return nil
}
