// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package builder

import (
	"context"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/announcement"
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/spendbundle"
	"github.com/bitmark-inc/coinset/tracker"
)

// FeeSource - provides signed bundles paying a fee from standard coins
//
// the first spend of the returned bundle must create a coin
// announcement of message
type FeeSource interface {
	FeeBundle(ctx context.Context, fee uint64, message []byte) (*spendbundle.SpendBundle, error)
}

// Builder - turns asset records and target conditions into spend bundles
type Builder struct {
	log    *logger.L
	driver puzzle.Driver
	fees   FeeSource
}

// New - builder, fees may be nil when no fee will be paid
func New(log *logger.L, driver puzzle.Driver, fees FeeSource) *Builder {
	return &Builder{
		log:    log,
		driver: driver,
		fees:   fees,
	}
}

// Build - unsigned spends of every record plus an optional signed fee bundle
//
// only the first asset spend carries the target conditions, the others
// get an empty condition list
func (b *Builder) Build(ctx context.Context, records []tracker.Record, conditions []condition.Condition, fee uint64) (*spendbundle.SpendBundle, fn.Option[*spendbundle.SpendBundle], error) {
	none := fn.None[*spendbundle.SpendBundle]()

	if 0 == len(records) {
		return nil, none, fault.ErrNoCoinsSelected
	}
	for _, r := range records {
		if r.PendingTransaction {
			return nil, none, fault.ErrAssetPending
		}
		if r.LineageProof.IsNone() {
			b.log.Errorf("launcher: %s  coin: %s  has no lineage proof", r.LauncherId, r.Coin.Id())
			return nil, none, fault.ErrMissingLineageProof
		}
	}

	first := make([]condition.Condition, 0, len(conditions)+1)
	first = append(first, conditions...)

	feeBundle := none
	if 0 != fee {
		if nil == b.fees {
			return nil, none, fault.ErrInsufficientFunds
		}
		firstId := records[0].Coin.Id()
		fb, err := b.fees.FeeBundle(ctx, fee, firstId[:])
		if nil != err {
			return nil, none, err
		}
		if 0 == len(fb.CoinSpends) {
			return nil, none, fault.ErrNoCoinsSelected
		}
		a := announcement.Announcement{
			Origin:  fb.CoinSpends[0].Coin.Id(),
			Message: firstId[:],
		}
		first = append(first, a.CoinAssertion())
		feeBundle = fn.Some(fb)
	}

	spends := make([]coin.CoinSpend, 0, len(records))
	for i, r := range records {
		c := []condition.Condition{}
		if 0 == i {
			c = first
		}
		s, err := b.spend(r, c)
		if nil != err {
			return nil, none, err
		}
		spends = append(spends, s)
	}

	unsigned := spendbundle.New(spends...)
	b.log.Infof("unsigned bundle: %s  spends: %d  fee: %d", unsigned.Id(), len(spends), fee)
	return unsigned, feeBundle, nil
}

func (b *Builder) spend(r tracker.Record, conditions []condition.Condition) (coin.CoinSpend, error) {
	nft, err := b.driver.UncurryNFT(r.FullPuzzle)
	if nil != err {
		return coin.CoinSpend{}, err
	}
	solution := nft.Solution(r.LineageProof.UnsafeFromSome(), r.Coin.Amount, puzzle.StandardSolution(conditions))
	return coin.CoinSpend{
		Coin:         r.Coin,
		PuzzleReveal: r.FullPuzzle,
		Solution:     solution,
	}, nil
}
