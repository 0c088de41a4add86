// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinstate_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/coinstate"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/fixtures"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/mocks"
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

type world struct {
	ledger *coinstate.Ledger
	signer *signer.Signer
	record keystore.DerivationRecord
}

func newWorld(t *testing.T) *world {
	log := logger.New(fixtures.LogCategory)
	keys, err := keystore.New(log, fixtures.Seed(3))
	require.Nil(t, err, "keystore")
	record, err := keys.NewDerivation()
	require.Nil(t, err, "derivation")

	e := puzzle.NewEvaluator(nil)
	parameters := spendbundle.Parameters{Interpreter: e, AdditionalData: fixtures.AdditionalData}
	return &world{
		ledger: coinstate.NewLedger(log, parameters),
		signer: signer.New(log, keys, e, puzzle.NewDriver(nil), fixtures.AdditionalData, 0),
		record: record,
	}
}

func (w *world) spend(t *testing.T, c coin.Coin, conditions ...condition.Condition) *spendbundle.SpendBundle {
	p := puzzle.StandardPuzzle(w.record.SyntheticPublicKey)
	b, err := w.signer.Sign(spendbundle.New(coin.CoinSpend{Coin: c, PuzzleReveal: p, Solution: puzzle.StandardSolution(conditions)}), nil)
	require.Nil(t, err, "sign")
	return b
}

func (w *world) farm(t *testing.T, amount uint64) coin.Coin {
	c := coin.Coin{ParentId: merkle.NewDigest([]byte{byte(amount)}), PuzzleHash: w.record.PuzzleHash, Amount: amount}
	_, err := w.ledger.Farm(c)
	require.Nil(t, err, "farm")
	return c
}

func TestLedgerApply(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	c := w.farm(t, 100)

	target := merkle.NewDigest([]byte("target"))
	b := w.spend(t, c, condition.CreateCoin{PuzzleHash: target, Amount: 90}, condition.ReserveFee{Amount: 10})
	touched, err := w.ledger.Apply(ctx, b)
	require.Nil(t, err, "apply")
	assert.Equal(t, 2, len(touched), "touched")
	assert.Equal(t, uint32(2), w.ledger.Height(), "height")

	child := coin.Coin{ParentId: c.Id(), PuzzleHash: target, Amount: 90}
	states, err := w.ledger.CoinStates(ctx, []merkle.Digest{c.Id(), child.Id(), merkle.NewDigest([]byte("unknown"))})
	require.Nil(t, err, "coin states")
	require.Equal(t, 2, len(states), "states")
	assert.Equal(t, uint32(2), states[0].SpentHeight, "parent spent height")
	assert.Equal(t, uint32(2), states[1].CreatedHeight, "child created height")
	assert.False(t, states[1].IsSpent(), "child spent")

	spend, err := w.ledger.PuzzleSolution(ctx, 2, c)
	require.Nil(t, err, "puzzle solution")
	assert.True(t, spend.IsSome(), "spend missing")

	wrong, err := w.ledger.PuzzleSolution(ctx, 1, c)
	require.Nil(t, err, "puzzle solution at wrong height")
	assert.True(t, wrong.IsNone(), "spend at wrong height")

	_, err = w.ledger.Apply(ctx, b)
	assert.Equal(t, fault.ErrDuplicateCoin, err, "replayed bundle")

	assert.Equal(t, 0, len(w.ledger.UnspentByPuzzleHash(w.record.PuzzleHash)), "unspent")
}

func TestLedgerEphemeral(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	c := w.farm(t, 5)

	middle := coin.Coin{ParentId: c.Id(), PuzzleHash: w.record.PuzzleHash, Amount: 5}
	final := merkle.NewDigest([]byte("final"))
	first := w.spend(t, c, condition.CreateCoin{PuzzleHash: w.record.PuzzleHash, Amount: 5})
	second := w.spend(t, middle, condition.CreateCoin{PuzzleHash: final, Amount: 5})

	b, err := spendbundle.Aggregate(first, second)
	require.Nil(t, err, "aggregate")
	_, err = w.ledger.Apply(ctx, b)
	require.Nil(t, err, "apply")

	state, err := coinstate.CoinState(ctx, w.ledger, middle.Id())
	require.Nil(t, err, "coin state")
	s, err := state.UnwrapOrErr(fault.ErrNotFound)
	require.Nil(t, err, "ephemeral coin missing")
	assert.Equal(t, s.CreatedHeight, s.SpentHeight, "ephemeral heights")
}

func TestLedgerUnknownCoin(t *testing.T) {
	w := newWorld(t)
	c := coin.Coin{ParentId: merkle.NewDigest([]byte("nowhere")), PuzzleHash: w.record.PuzzleHash, Amount: 1}
	_, err := w.ledger.Apply(context.Background(), w.spend(t, c))
	assert.Equal(t, fault.ErrNotFound, err, "unknown coin spent")
	assert.Equal(t, uint32(0), w.ledger.Height(), "height changed")
}

func TestLedgerCancelled(t *testing.T) {
	w := newWorld(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.ledger.CoinStates(ctx, nil)
	assert.Equal(t, context.Canceled, err, "cancelled")
}

func TestCacheKeepsSpentStates(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	source := mocks.NewMockSource(ctl)

	spent := coin.CoinState{Coin: coin.Coin{Amount: 1}, CreatedHeight: 1, SpentHeight: 2}
	unspent := coin.CoinState{Coin: coin.Coin{Amount: 3}, CreatedHeight: 1}
	ids := []merkle.Digest{spent.Coin.Id(), unspent.Coin.Id()}

	source.EXPECT().CoinStates(gomock.Any(), ids).Return([]coin.CoinState{spent, unspent}, nil).Times(1)
	source.EXPECT().CoinStates(gomock.Any(), []merkle.Digest{unspent.Coin.Id()}).Return([]coin.CoinState{unspent}, nil).Times(1)

	c := coinstate.NewCache(logger.New(fixtures.LogCategory), source, time.Minute)
	ctx := context.Background()

	first, err := c.CoinStates(ctx, ids)
	require.Nil(t, err, "first")
	assert.Equal(t, 2, len(first), "first count")

	second, err := c.CoinStates(ctx, ids)
	require.Nil(t, err, "second")
	assert.Equal(t, []coin.CoinState{spent, unspent}, second, "second")
}

func TestCacheKeepsSpends(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	source := mocks.NewMockSource(ctl)

	parent := coin.Coin{Amount: 7}
	spend := coin.CoinSpend{Coin: parent}
	source.EXPECT().PuzzleSolution(gomock.Any(), uint32(4), parent).Return(fn.Some(spend), nil).Times(1)
	source.EXPECT().PuzzleSolution(gomock.Any(), uint32(5), parent).Return(fn.None[coin.CoinSpend](), nil).Times(2)

	c := coinstate.NewCache(logger.New(fixtures.LogCategory), source, time.Minute)
	ctx := context.Background()
	for i := 0; i < 2; i += 1 {
		s, err := c.PuzzleSolution(ctx, 4, parent)
		require.Nil(t, err, "found")
		assert.True(t, s.IsSome(), "found missing")

		n, err := c.PuzzleSolution(ctx, 5, parent)
		require.Nil(t, err, "absent")
		assert.True(t, n.IsNone(), "absent present")
	}
}
