// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/coinstate"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fixtures"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/messagebus"
	"github.com/bitmark-inc/coinset/program"
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

// a wallet with two derivations watching a local ledger
type world struct {
	log     *logger.L
	ledger  *coinstate.Ledger
	signer  *signer.Signer
	driver  *puzzle.LayerDriver
	eval    *puzzle.Evaluator
	keys    *keystore.Store
	first   keystore.DerivationRecord
	second  keystore.DerivationRecord
	bus     *messagebus.BroadcastQueue
	tracker *tracker.Tracker
	farmed  byte
}

func newWorld(t *testing.T, persister tracker.Persister, owners authorities) *world {
	log := logger.New(fixtures.LogCategory)
	keys, err := keystore.New(log, fixtures.Seed(1))
	require.Nil(t, err, "keystore")
	first, err := keys.NewDerivation()
	require.Nil(t, err, "first derivation")
	second, err := keys.NewDerivation()
	require.Nil(t, err, "second derivation")

	e := puzzle.NewEvaluator(nil)
	d := puzzle.NewDriver(nil)
	w := &world{
		log:    log,
		ledger: coinstate.NewLedger(log, spendbundle.Parameters{Interpreter: e, AdditionalData: fixtures.AdditionalData}),
		signer: signer.New(log, keys, e, d, fixtures.AdditionalData, 0),
		driver: d,
		eval:   e,
		keys:   keys,
		first:  first,
		second: second,
		bus:    messagebus.NewBroadcastQueue(),
	}

	parameters := tracker.Parameters{
		Source:      w.ledger,
		Interpreter: e,
		Driver:      d,
		Keys:        keys,
		Persister:   persister,
		Bus:         w.bus,
	}
	if nil != owners {
		parameters.Authorities = owners
	}
	w.tracker, err = tracker.New(log, parameters)
	require.Nil(t, err, "tracker")
	return w
}

func (w *world) apply(t *testing.T, spends ...coin.CoinSpend) []coin.CoinState {
	b, err := w.signer.Sign(spendbundle.New(spends...), nil)
	require.Nil(t, err, "sign")
	touched, err := w.ledger.Apply(context.Background(), b)
	require.Nil(t, err, "apply")
	return touched
}

func testMetadata() *program.Program {
	return puzzle.NewMetadata(
		puzzle.Field{Key: puzzle.KeyDataURIs, Value: puzzle.URIs("https://example.com/image.png")},
		puzzle.Field{Key: puzzle.KeyDataHash, Value: program.Digest(merkle.NewDigest([]byte("image")))},
	)
}

// mint an NFT owned by the first derivation, returning its eve child
func (w *world) mint(t *testing.T, did bool) (merkle.Digest, coin.Coin) {
	w.farmed += 1
	funding := coin.Coin{
		ParentId:   merkle.NewDigest([]byte{'f', w.farmed}),
		PuzzleHash: w.first.PuzzleHash,
		Amount:     10,
	}
	_, err := w.ledger.Farm(funding)
	require.Nil(t, err, "farm")

	launcher := puzzle.LauncherCoin(funding.Id(), 1)
	launcherId := launcher.Id()

	p2 := puzzle.StandardPuzzle(w.first.SyntheticPublicKey)
	inner := p2
	if did {
		inner = puzzle.OwnershipPuzzle(launcherId, nil, p2)
	}
	evePuzzle := puzzle.FullPuzzle(launcherId, testMetadata(), puzzle.DefaultUpdaterHash, inner)
	eve := coin.Coin{ParentId: launcherId, PuzzleHash: evePuzzle.TreeHash(), Amount: 1}

	layers, err := w.driver.UncurryNFT(evePuzzle)
	require.Nil(t, err, "uncurry eve")

	fundingSpend := coin.CoinSpend{
		Coin:         funding,
		PuzzleReveal: puzzle.StandardPuzzle(w.first.SyntheticPublicKey),
		Solution: puzzle.StandardSolution([]condition.Condition{
			condition.CreateCoin{PuzzleHash: puzzle.LauncherPuzzleHash, Amount: 1},
			condition.CreateCoin{PuzzleHash: w.first.PuzzleHash, Amount: 9},
		}),
	}
	launcherSpend := coin.CoinSpend{
		Coin:         launcher,
		PuzzleReveal: puzzle.LauncherPuzzle(),
		Solution:     puzzle.LauncherSolution(eve.PuzzleHash, 1, nil),
	}
	eveSpend := coin.CoinSpend{
		Coin:         eve,
		PuzzleReveal: evePuzzle,
		Solution: layers.Solution(
			coin.LineageProof{ParentId: funding.Id(), Amount: 1},
			1,
			puzzle.StandardSolution([]condition.Condition{
				condition.CreateCoin{PuzzleHash: w.first.PuzzleHash, Amount: 1},
			}),
		),
	}

	touched := w.apply(t, fundingSpend, launcherSpend, eveSpend)
	return launcherId, singletonChild(t, touched, eve.Id())
}

// spend of a tracked record running its p2 with conditions
func (w *world) spend(t *testing.T, r tracker.Record, conditions ...condition.Condition) coin.CoinSpend {
	layers, err := w.driver.UncurryNFT(r.FullPuzzle)
	require.Nil(t, err, "uncurry")
	require.True(t, r.LineageProof.IsSome(), "lineage proof")
	return coin.CoinSpend{
		Coin:         r.Coin,
		PuzzleReveal: r.FullPuzzle,
		Solution:     layers.Solution(r.LineageProof.UnsafeFromSome(), r.Coin.Amount, puzzle.StandardSolution(conditions)),
	}
}

// the odd coin created by parentId
func singletonChild(t *testing.T, states []coin.CoinState, parentId merkle.Digest) coin.Coin {
	for _, s := range states {
		if s.Coin.ParentId == parentId && 1 == s.Coin.Amount%2 {
			return s.Coin
		}
	}
	require.Fail(t, "no singleton child")
	return coin.Coin{}
}

// commands queued on a listener so far
func drain(c <-chan messagebus.Message) []string {
	commands := []string{}
	for {
		select {
		case m := <-c:
			commands = append(commands, m.Command)
		default:
			return commands
		}
	}
}

// authorities claiming a fixed set of owners
type authorities [][]byte

func (a authorities) HasAuthority(owner []byte) bool {
	for _, o := range a {
		if bytes.Equal(o, owner) {
			return true
		}
	}
	return false
}
