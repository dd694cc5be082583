package repo

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type GenesisConfig struct {
	// the epoch the ledger starts at, must be greater than 0
	Epoch    uint64           `mapstructure:"epoch" toml:"epoch"`
	Accounts []GenesisAccount `mapstructure:"accounts" toml:"accounts"`
}

type GenesisAccount struct {
	Address string `mapstructure:"address" toml:"address"`
	Asset   string `mapstructure:"asset" toml:"asset"`
	// decimal string, unit: mol
	Balance string `mapstructure:"balance" toml:"balance"`
}

func (a GenesisAccount) BalanceBigInt() (*big.Int, error) {
	balance, ok := new(big.Int).SetString(a.Balance, 10)
	if !ok || balance.Sign() < 0 {
		return nil, errors.Errorf("invalid balance: %s", a.Balance)
	}
	return balance, nil
}

func (g *GenesisConfig) Validate(assets []string) error {
	if g.Epoch == 0 {
		return errors.New("genesis epoch number must be greater than 0")
	}
	for _, account := range g.Accounts {
		if !ethcommon.IsHexAddress(account.Address) {
			return errors.Errorf("invalid genesis account address: %s", account.Address)
		}
		if !lo.Contains(assets, account.Asset) {
			return errors.Errorf("unsupported genesis account asset: %s", account.Asset)
		}
		if _, err := account.BalanceBigInt(); err != nil {
			return errors.Wrapf(err, "invalid genesis account %s", account.Address)
		}
	}
	return nil
}

func DefaultGenesisConfig() GenesisConfig {
	return GenesisConfig{
		Epoch: 1,
		Accounts: lo.Map(DefaultAccounts, func(addr string, _ int) GenesisAccount {
			return GenesisAccount{
				Address: addr,
				Asset:   DefaultAsset,
				Balance: DefaultAccountBalance,
			}
		}),
	}
}
