// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinstate

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/spendbundle"
)

// Ledger - an in-memory coin set that applies one bundle per block
type Ledger struct {
	sync.RWMutex

	log        *logger.L
	parameters spendbundle.Parameters
	height     uint32
	coins      map[merkle.Digest]coin.CoinState
	spends     map[merkle.Digest]coin.CoinSpend
}

// NewLedger - empty ledger validating bundles with parameters
func NewLedger(log *logger.L, parameters spendbundle.Parameters) *Ledger {
	return &Ledger{
		log:        log,
		parameters: parameters,
		coins:      make(map[merkle.Digest]coin.CoinState),
		spends:     make(map[merkle.Digest]coin.CoinSpend),
	}
}

// Height - height of the last block
func (l *Ledger) Height() uint32 {
	l.RLock()
	defer l.RUnlock()
	return l.height
}

// Farm - create a coin out of nothing in a new block
func (l *Ledger) Farm(c coin.Coin) (coin.CoinState, error) {
	l.Lock()
	defer l.Unlock()

	id := c.Id()
	if _, ok := l.coins[id]; ok {
		return coin.CoinState{}, fault.ErrDuplicateCoin
	}
	l.height += 1
	s := coin.CoinState{Coin: c, CreatedHeight: l.height}
	l.coins[id] = s

	l.log.Infof("farmed coin: %s  height: %d", id, l.height)
	return s, nil
}

// Apply - validate a bundle and commit it as a new block
//
// a coin created and spent by the same bundle is allowed, nothing is
// committed on failure, the returned states are every coin the block
// touched
func (l *Ledger) Apply(ctx context.Context, bundle *spendbundle.SpendBundle) ([]coin.CoinState, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	result, err := spendbundle.Validate(bundle, l.parameters)
	if nil != err {
		l.log.Warnf("reject bundle: %s  error: %s", bundle.Id(), err)
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	created := make(map[merkle.Digest]coin.Coin, len(result.Additions))
	for _, c := range result.Additions {
		id := c.Id()
		if _, ok := l.coins[id]; ok {
			return nil, fault.ErrDuplicateCoin
		}
		created[id] = c
	}
	for _, c := range result.Removals {
		id := c.Id()
		if s, ok := l.coins[id]; ok {
			if s.IsSpent() {
				return nil, fault.ErrDoubleSpend
			}
			continue
		}
		if _, ok := created[id]; !ok {
			return nil, fault.ErrNotFound
		}
	}

	l.height += 1
	height := l.height
	touched := make([]coin.CoinState, 0, len(result.Additions)+len(result.Removals))

	for id, c := range created {
		l.coins[id] = coin.CoinState{Coin: c, CreatedHeight: height}
	}
	for _, s := range bundle.CoinSpends {
		id := s.Coin.Id()
		state := l.coins[id]
		state.SpentHeight = height
		l.coins[id] = state
		l.spends[id] = s
	}
	for _, c := range result.Additions {
		touched = append(touched, l.coins[c.Id()])
	}
	for _, c := range result.Removals {
		touched = append(touched, l.coins[c.Id()])
	}

	l.log.Infof("block: %d  removals: %d  additions: %d  fee: %d", height, len(result.Removals), len(result.Additions), result.Fee)
	return touched, nil
}

// CoinStates - states of the known coins among ids
func (l *Ledger) CoinStates(ctx context.Context, ids []merkle.Digest) ([]coin.CoinState, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	l.RLock()
	defer l.RUnlock()

	result := make([]coin.CoinState, 0, len(ids))
	for _, id := range ids {
		if s, ok := l.coins[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

// PuzzleSolution - the spend of parent if it was spent at height
func (l *Ledger) PuzzleSolution(ctx context.Context, height uint32, parent coin.Coin) (fn.Option[coin.CoinSpend], error) {
	if err := ctx.Err(); nil != err {
		return fn.None[coin.CoinSpend](), err
	}
	l.RLock()
	defer l.RUnlock()

	id := parent.Id()
	s, ok := l.coins[id]
	if !ok || s.SpentHeight != height {
		return fn.None[coin.CoinSpend](), nil
	}
	spend, ok := l.spends[id]
	if !ok {
		return fn.None[coin.CoinSpend](), nil
	}
	return fn.Some(spend), nil
}

// UnspentByPuzzleHash - unspent coins locked by any of the puzzle hashes
func (l *Ledger) UnspentByPuzzleHash(puzzleHashes ...merkle.Digest) []coin.CoinState {
	wanted := make(map[merkle.Digest]struct{}, len(puzzleHashes))
	for _, ph := range puzzleHashes {
		wanted[ph] = struct{}{}
	}

	l.RLock()
	defer l.RUnlock()

	result := make([]coin.CoinState, 0, 8)
	for _, s := range l.coins {
		if s.IsSpent() {
			continue
		}
		if _, ok := wanted[s.Coin.PuzzleHash]; ok {
			result = append(result, s)
		}
	}
	return result
}
