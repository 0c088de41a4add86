// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"context"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/coinstate"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/program"
	"github.com/bitmark-inc/coinset/puzzle"
)

// CoinAdded - a coin of interest appeared at height
//
// the parent's spend is fetched and resolved, a coin with no known
// parent was farmed and is not an NFT so nothing is returned
func (t *Tracker) CoinAdded(ctx context.Context, c coin.Coin, height uint32) (fn.Option[Record], error) {
	log := t.log

	if r := t.ByCoinId(c.Id()); r.IsSome() {
		return r, nil
	}

	parentState, err := coinstate.CoinState(ctx, t.p.Source, c.ParentId)
	if nil != err {
		return fn.None[Record](), err
	}
	if parentState.IsNone() {
		log.Debugf("coin: %s  has no parent state", c.Id())
		return fn.None[Record](), nil
	}
	parent := parentState.UnsafeFromSome().Coin

	spend, err := t.p.Source.PuzzleSolution(ctx, height, parent)
	if nil != err {
		return fn.None[Record](), err
	}
	if spend.IsNone() {
		log.Errorf("coin: %s  parent: %s  no spend at height: %d", c.Id(), parent.Id(), height)
		return fn.None[Record](), fault.ErrInconsistentParent
	}
	return t.ResolveIncomingSpend(ctx, spend.UnsafeFromSome())
}

// ResolveIncomingSpend - follow a spend of an NFT to its child coin
//
// when the child is locked by a local key, or owned by a local
// decentralised identity, it is tracked and returned; otherwise the
// spent coin's record is dropped and nothing is returned
func (t *Tracker) ResolveIncomingSpend(ctx context.Context, spend coin.CoinSpend) (fn.Option[Record], error) {
	log := t.log
	spentId := spend.Coin.Id()

	if err := spend.Valid(); nil != err {
		return fn.None[Record](), err
	}
	nft, err := t.p.Driver.UncurryNFT(spend.PuzzleReveal)
	if nil != err {
		return fn.None[Record](), err
	}
	transition, err := t.p.Driver.NextState(t.p.Interpreter, nft, spend.Solution)
	if nil != err {
		log.Errorf("coin: %s  next state error: %s", spentId, err)
		return fn.None[Record](), err
	}

	var childPuzzle *program.Program
	if d, ok := t.p.Keys.DerivationForPuzzleHash(transition.P2PuzzleHash); ok {
		p2 := puzzle.StandardPuzzle(d.SyntheticPublicKey)
		childPuzzle = nft.ChildPuzzle(transition.Metadata, transition.OwnerDid, p2)
	} else if nft.SupportsDid && 0 != len(transition.OwnerDid) && nil != t.p.Authorities && t.p.Authorities.HasAuthority(transition.OwnerDid) {
		// owned through a local identity: keep the previous p2 puzzle
		// under the new owner, tracked but not directly spendable
		childPuzzle = nft.ChildPuzzle(transition.Metadata, transition.OwnerDid, nft.P2Puzzle)
	} else {
		log.Infof("launcher: %s  coin: %s  sent to: %s", nft.LauncherId, spentId, transition.P2PuzzleHash)
		return fn.None[Record](), t.Remove(spend.Coin)
	}
	childHash := childPuzzle.TreeHash()

	conditions, _, err := condition.EvaluateSpend(t.p.Interpreter, spend, 0)
	if nil != err {
		return fn.None[Record](), err
	}
	var child fn.Option[coin.Coin]
	for _, c := range condition.Additions(spentId, conditions) {
		if c.PuzzleHash != childHash {
			continue
		}
		if child.IsSome() {
			return fn.None[Record](), fault.ErrInconsistentSpend
		}
		child = fn.Some(c)
	}
	childCoin, err := child.UnwrapOrErr(fault.ErrInconsistentSpend)
	if nil != err {
		log.Errorf("coin: %s  no child with puzzle hash: %s", spentId, childHash)
		return fn.None[Record](), err
	}

	launcher, err := coinstate.CoinState(ctx, t.p.Source, nft.LauncherId)
	if nil != err {
		return fn.None[Record](), err
	}
	launcherState, err := launcher.UnwrapOrErr(fault.ErrInconsistentParent)
	if nil != err || !launcherState.IsSpent() {
		log.Errorf("launcher: %s  has no spent state", nft.LauncherId)
		return fn.None[Record](), fault.ErrInconsistentParent
	}

	lineageProof := coin.LineageProof{
		ParentId:        spend.Coin.ParentId,
		InnerPuzzleHash: fn.Some(nft.StateLayer.TreeHash()),
		Amount:          spend.Coin.Amount,
	}
	record, err := t.observe(childCoin, childPuzzle, fn.Some(lineageProof), launcherState.SpentHeight, transition.MetadataChanged)
	if nil != err {
		return fn.None[Record](), err
	}
	return fn.Some(record), nil
}
