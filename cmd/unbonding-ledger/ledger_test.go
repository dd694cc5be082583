package main

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

func TestParseArgs(t *testing.T) {
	ledgerArgs.Account = repo.DefaultAccounts[0]
	ledgerArgs.Amount = "1000000000000000000000"
	account, err := parseAccount()
	require.Nil(t, err)
	assert.Equal(t, repo.DefaultAccounts[0], account.Hex())
	amount, err := parseAmount()
	require.Nil(t, err)
	assert.Equal(t, "1000000000000000000000", amount.ToInt().String())

	ledgerArgs.Account = "0x123"
	_, err = parseAccount()
	assert.ErrorContains(t, err, "invalid account")

	ledgerArgs.Amount = "1e18"
	_, err = parseAmount()
	assert.ErrorContains(t, err, "invalid amount")
}

func TestBigString(t *testing.T) {
	assert.Equal(t, "0", bigString(nil))
	amount, ok := new(big.Int).SetString("1000000000000000000000", 10)
	require.True(t, ok)
	assert.Equal(t, "1000000000000000000000", bigString((*hexutil.Big)(amount)))
}
