// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinstate

import (
	"context"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/merkle"
)

// Source - coin state queries answered by a node
type Source interface {
	// states of the requested coins, unknown coins are omitted
	CoinStates(ctx context.Context, ids []merkle.Digest) ([]coin.CoinState, error)

	// the spend of a parent coin at the height it was spent
	PuzzleSolution(ctx context.Context, height uint32, parent coin.Coin) (fn.Option[coin.CoinSpend], error)
}

// CoinState - state of a single coin
func CoinState(ctx context.Context, source Source, id merkle.Digest) (fn.Option[coin.CoinState], error) {
	states, err := source.CoinStates(ctx, []merkle.Digest{id})
	if nil != err {
		return fn.None[coin.CoinState](), err
	}
	for _, s := range states {
		if s.Coin.Id() == id {
			return fn.Some(s), nil
		}
	}
	return fn.None[coin.CoinState](), nil
}
