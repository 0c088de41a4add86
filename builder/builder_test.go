// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package builder_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/announcement"
	"github.com/bitmark-inc/coinset/balance"
	"github.com/bitmark-inc/coinset/builder"
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
	"github.com/bitmark-inc/coinset/tracker"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type setup struct {
	record     keystore.DerivationRecord
	eval       *puzzle.Evaluator
	signer     *signer.Signer
	builder    *builder.Builder
	parameters spendbundle.Parameters
}

func newSetup(t *testing.T, funds uint64) *setup {
	log := logger.New(fixtures.LogCategory)
	keys, err := keystore.New(log, fixtures.Seed(5))
	require.Nil(t, err, "keystore")
	record, err := keys.NewDerivation()
	require.Nil(t, err, "derivation")

	e := puzzle.NewEvaluator(nil)
	d := puzzle.NewDriver(nil)
	parameters := spendbundle.Parameters{Interpreter: e, AdditionalData: fixtures.AdditionalData}
	ledger := coinstate.NewLedger(log, parameters)
	if 0 != funds {
		_, err := ledger.Farm(coin.Coin{ParentId: merkle.NewDigest([]byte("funds")), PuzzleHash: record.PuzzleHash, Amount: funds})
		require.Nil(t, err, "farm")
	}

	s := signer.New(log, keys, e, d, fixtures.AdditionalData, 0)
	return &setup{
		record:     record,
		eval:       e,
		signer:     s,
		builder:    builder.New(log, d, balance.New(log, ledger, keys, s)),
		parameters: parameters,
	}
}

// an eve NFT locked by the setup's key
func (s *setup) nft(origin string) tracker.Record {
	o := merkle.NewDigest([]byte(origin))
	launcherId := puzzle.LauncherCoin(o, 1).Id()
	metadata := puzzle.NewMetadata(puzzle.Field{Key: puzzle.KeyDataURIs, Value: puzzle.URIs("https://example.com/" + origin)})
	full := puzzle.FullPuzzle(launcherId, metadata, puzzle.DefaultUpdaterHash, puzzle.StandardPuzzle(s.record.SyntheticPublicKey))
	return tracker.Record{
		LauncherId:   launcherId,
		Coin:         coin.Coin{ParentId: launcherId, PuzzleHash: full.TreeHash(), Amount: 1},
		LineageProof: fn.Some(coin.LineageProof{ParentId: o, Amount: 1}),
		FullPuzzle:   full,
		MintHeight:   1,
	}
}

func TestBuildRejects(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 0)

	pending := s.nft("pending")
	pending.PendingTransaction = true
	orphan := s.nft("orphan")
	orphan.LineageProof = fn.None[coin.LineageProof]()

	tests := []struct {
		records []tracker.Record
		err     error
	}{
		{nil, fault.ErrNoCoinsSelected},
		{[]tracker.Record{pending}, fault.ErrAssetPending},
		{[]tracker.Record{s.nft("fine"), orphan}, fault.ErrMissingLineageProof},
	}

	for i, item := range tests {
		_, feeBundle, err := s.builder.Build(ctx, item.records, nil, 0)
		assert.Equal(t, item.err, err, fmt.Sprintf("%d: error", i))
		assert.True(t, feeBundle.IsNone(), fmt.Sprintf("%d: fee bundle", i))
	}
}

func TestBuildWithoutFee(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 0)
	r := s.nft("single")

	target := merkle.NewDigest([]byte("new owner"))
	unsigned, feeBundle, err := s.builder.Build(ctx, []tracker.Record{r}, []condition.Condition{condition.CreateCoin{PuzzleHash: target, Amount: 1}}, 0)
	require.Nil(t, err, "build")
	assert.True(t, feeBundle.IsNone(), "fee bundle")
	require.Equal(t, 1, len(unsigned.CoinSpends), "spends")
	assert.Equal(t, r.Coin, unsigned.CoinSpends[0].Coin, "coin")

	signed, err := s.signer.Sign(unsigned, nil)
	require.Nil(t, err, "sign")
	result, err := spendbundle.Validate(signed, s.parameters)
	require.Nil(t, err, "validate")
	require.Equal(t, 1, len(result.Additions), "additions")
	assert.Equal(t, puzzle.SingletonPuzzleHash(r.LauncherId, puzzle.StatePuzzleHash(
		mustUncurry(t, r).Metadata.TreeHash(), puzzle.DefaultUpdaterHash, target)), result.Additions[0].PuzzleHash, "child puzzle hash")
}

func TestBuildWithFee(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t, 10)
	first := s.nft("first")
	second := s.nft("second")

	conditions := []condition.Condition{condition.CreateCoin{PuzzleHash: s.record.PuzzleHash, Amount: 1}}
	unsigned, feeBundle, err := s.builder.Build(ctx, []tracker.Record{first, second}, conditions, 2)
	require.Nil(t, err, "build")
	require.True(t, feeBundle.IsSome(), "fee bundle")
	require.Equal(t, 2, len(unsigned.CoinSpends), "spends")

	fb := feeBundle.UnsafeFromSome()
	firstId := first.Coin.Id()
	expected := announcement.Announcement{Origin: fb.CoinSpends[0].Coin.Id(), Message: firstId[:]}

	firstConditions, _, err := condition.EvaluateSpend(s.eval, unsigned.CoinSpends[0], 0)
	require.Nil(t, err, "evaluate first")
	assert.Contains(t, firstConditions, expected.CoinAssertion(), "fee assertion")

	secondConditions, _, err := condition.EvaluateSpend(s.eval, unsigned.CoinSpends[1], 0)
	require.Nil(t, err, "evaluate second")
	assert.Equal(t, 0, len(condition.Additions(second.Coin.Id(), secondConditions)), "second spend outputs")

	signed, err := s.signer.Sign(unsigned, nil)
	require.Nil(t, err, "sign")

	_, err = spendbundle.Validate(signed, s.parameters)
	assert.Equal(t, fault.ErrAnnouncementNotFound, err, "without fee bundle")

	whole, err := spendbundle.Aggregate(signed, fb)
	require.Nil(t, err, "aggregate")
	result, err := spendbundle.Validate(whole, s.parameters)
	require.Nil(t, err, "validate")
	assert.True(t, result.Fee >= 2, "fee")
}

func TestBuildInsufficientFee(t *testing.T) {
	s := newSetup(t, 1)
	_, _, err := s.builder.Build(context.Background(), []tracker.Record{s.nft("poor")}, nil, 5)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "fee")
}

func TestMakePayments(t *testing.T) {
	a := merkle.NewDigest([]byte("a"))
	b := merkle.NewDigest([]byte("b"))

	payments, err := builder.MakePayments([]uint64{1, 2}, []merkle.Digest{a, b}, nil)
	require.Nil(t, err, "no memos")
	assert.Equal(t, []condition.Condition{
		condition.CreateCoin{PuzzleHash: a, Amount: 1},
		condition.CreateCoin{PuzzleHash: b, Amount: 2},
	}, payments, "payments")

	memos := [][][]byte{{[]byte("hint")}, nil}
	payments, err = builder.MakePayments([]uint64{1, 2}, []merkle.Digest{a, b}, memos)
	require.Nil(t, err, "memos")
	assert.Equal(t, [][]byte{[]byte("hint")}, payments[0].(condition.CreateCoin).Memos, "memo")

	_, err = builder.MakePayments([]uint64{1, 2}, []merkle.Digest{a}, nil)
	assert.Equal(t, fault.ErrLengthMismatch, err, "puzzle hashes")

	_, err = builder.MakePayments([]uint64{1}, []merkle.Digest{a}, [][][]byte{nil, nil})
	assert.Equal(t, fault.ErrLengthMismatch, err, "memos")
}

func mustUncurry(t *testing.T, r tracker.Record) *puzzle.UncurriedNFT {
	nft, err := puzzle.NewDriver(nil).UncurryNFT(r.FullPuzzle)
	require.Nil(t, err, "uncurry")
	return nft
}
