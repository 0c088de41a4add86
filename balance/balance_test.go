// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance_test

import (
	"context"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/balance"
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/coinstate"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/fixtures"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/signer"
	"github.com/bitmark-inc/coinset/spendbundle"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type setup struct {
	ledger *coinstate.Ledger
	record keystore.DerivationRecord
	wallet *balance.Wallet
	eval   *puzzle.Evaluator
}

func newSetup(t *testing.T, amounts ...uint64) *setup {
	log := logger.New(fixtures.LogCategory)
	keys, err := keystore.New(log, fixtures.Seed(4))
	require.Nil(t, err, "keystore")
	record, err := keys.NewDerivation()
	require.Nil(t, err, "derivation")

	e := puzzle.NewEvaluator(nil)
	ledger := coinstate.NewLedger(log, spendbundle.Parameters{Interpreter: e, AdditionalData: fixtures.AdditionalData})
	for i, amount := range amounts {
		_, err := ledger.Farm(coin.Coin{
			ParentId:   merkle.NewDigest([]byte{'b', byte(i)}),
			PuzzleHash: record.PuzzleHash,
			Amount:     amount,
		})
		require.Nil(t, err, "farm")
	}

	s := signer.New(log, keys, e, puzzle.NewDriver(nil), fixtures.AdditionalData, 0)
	return &setup{
		ledger: ledger,
		record: record,
		wallet: balance.New(log, ledger, keys, s),
		eval:   e,
	}
}

func TestSelectCoins(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 5, 20, 7)
	assert.Equal(t, uint64(32), s.wallet.Balance(), "initial balance")

	coins, err := s.wallet.SelectCoins(ctx, 21)
	require.Nil(t, err, "select")
	require.Equal(t, 2, len(coins), "coin count")
	assert.Equal(t, uint64(20), coins[0].Amount, "largest first")
	assert.Equal(t, uint64(7), coins[1].Amount, "next largest")
	assert.Equal(t, uint64(5), s.wallet.Balance(), "reserved balance")

	_, err = s.wallet.SelectCoins(ctx, 6)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "reserved coins selected")

	_, err = s.wallet.SelectCoins(ctx, 0)
	assert.Equal(t, fault.ErrInvalidAmount, err, "zero amount")

	s.wallet.Release(coins)
	assert.Equal(t, uint64(32), s.wallet.Balance(), "released balance")
}

func TestSelectCancelled(t *testing.T) {
	s := newSetup(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.wallet.SelectCoins(ctx, 1)
	assert.Equal(t, context.Canceled, err, "cancelled")
	assert.Equal(t, uint64(5), s.wallet.Balance(), "balance")
}

func TestSignedTransaction(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 5, 20, 7)

	target := merkle.NewDigest([]byte("target"))
	payments := []condition.Condition{condition.CreateCoin{PuzzleHash: target, Amount: 24}}
	b, err := s.wallet.GenerateSignedTransaction(ctx, payments, 2, nil)
	require.Nil(t, err, "transaction")
	require.Equal(t, 2, len(b.CoinSpends), "spends")

	result, err := spendbundle.Validate(b, spendbundle.Parameters{Interpreter: s.eval, AdditionalData: fixtures.AdditionalData})
	require.Nil(t, err, "validate")
	assert.Equal(t, uint64(2), result.Fee, "fee")

	_, err = s.ledger.Apply(ctx, b)
	require.Nil(t, err, "apply")
	assert.Equal(t, uint64(6), s.wallet.Balance(), "balance after spend")

	unspent := s.ledger.UnspentByPuzzleHash(target)
	require.Equal(t, 1, len(unspent), "payment")
	assert.Equal(t, uint64(24), unspent[0].Coin.Amount, "payment amount")
}

func TestSplitSpendIsRejected(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 3, 4)

	b, err := s.wallet.GenerateSignedTransaction(ctx, nil, 6, nil)
	require.Nil(t, err, "transaction")
	require.Equal(t, 2, len(b.CoinSpends), "spends")

	// the second spend on its own asserts an announcement nobody makes
	alone := spendbundle.New(b.CoinSpends[1])
	_, err = spendbundle.Validate(alone, spendbundle.Parameters{Interpreter: s.eval})
	assert.Equal(t, fault.ErrAnnouncementNotFound, err, "split spend")
}

func TestFeeBundle(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 10)

	message := []byte("asset coin id")
	b, err := s.wallet.FeeBundle(ctx, 3, message)
	require.Nil(t, err, "fee bundle")
	require.Equal(t, 1, len(b.CoinSpends), "spends")

	conditions, _, err := condition.EvaluateSpend(s.eval, b.CoinSpends[0], 0)
	require.Nil(t, err, "evaluate")
	assert.Contains(t, conditions, condition.CreateCoinAnnouncement{Message: message}, "announcement")
	assert.Contains(t, conditions, condition.ReserveFee{Amount: 3}, "reserved fee")
	assert.Contains(t, conditions, condition.CreateCoin{PuzzleHash: s.record.PuzzleHash, Amount: 7}, "change")
}

func TestForeignCoin(t *testing.T) {
	s := newSetup(t)
	stranger := coin.Coin{ParentId: merkle.NewDigest([]byte("x")), PuzzleHash: merkle.NewDigest([]byte("y")), Amount: 1}

	_, err := s.wallet.Spends([]coin.Coin{stranger}, nil, 0, nil)
	assert.Equal(t, fault.ErrUnsignableSpend, err, "foreign coin")

	_, err = s.wallet.Spends(nil, nil, 0, nil)
	assert.Equal(t, fault.ErrNoCoinsSelected, err, "no coins")
}

func TestPaymentOverflow(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 10)
	target := merkle.NewDigest([]byte("target"))
	payments := []condition.Condition{
		condition.CreateCoin{PuzzleHash: target, Amount: 1 << 63},
		condition.CreateCoin{PuzzleHash: target, Amount: 1 << 63},
	}

	_, err := s.wallet.GenerateSignedTransaction(ctx, payments, 1, nil)
	assert.Equal(t, fault.ErrInvalidAmount, err, "wrapped payments")
	assert.Equal(t, uint64(10), s.wallet.Balance(), "nothing reserved")

	coins, err := s.wallet.SelectCoins(ctx, 10)
	require.Nil(t, err, "select")
	_, err = s.wallet.Spends(coins, payments, 0, nil)
	assert.Equal(t, fault.ErrInvalidAmount, err, "wrapped spends")
}
