// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spendbundle

import (
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/signature"
	"github.com/bitmark-inc/coinset/util"
)

// SpendBundle - coin spends that succeed or fail together
type SpendBundle struct {
	CoinSpends          []coin.CoinSpend
	AggregatedSignature signature.Signature
}

// New - bundle of unsigned spends
func New(spends ...coin.CoinSpend) *SpendBundle {
	return &SpendBundle{
		CoinSpends:          spends,
		AggregatedSignature: signature.Signature{},
	}
}

// Aggregate - concatenate spends in argument order and combine signatures
//
// no bundles gives an empty bundle, the only failure is a malformed signature
func Aggregate(bundles ...*SpendBundle) (*SpendBundle, error) {
	spends := make([]coin.CoinSpend, 0, 4)
	signatures := make([]signature.Signature, 0, len(bundles))
	for _, b := range bundles {
		if nil == b {
			continue
		}
		spends = append(spends, b.CoinSpends...)
		signatures = append(signatures, b.AggregatedSignature)
	}
	sig, err := signature.Aggregate(signatures...)
	if nil != err {
		return nil, err
	}
	return &SpendBundle{CoinSpends: spends, AggregatedSignature: sig}, nil
}

// Removals - the coins spent
func (b *SpendBundle) Removals() []coin.Coin {
	coins := make([]coin.Coin, len(b.CoinSpends))
	for i, s := range b.CoinSpends {
		coins[i] = s.Coin
	}
	return coins
}

// Additions - the coins created, by evaluating every spend
func (b *SpendBundle) Additions(interpreter condition.Interpreter, maximumCost uint64) ([]coin.Coin, error) {
	coins := make([]coin.Coin, 0, len(b.CoinSpends))
	for _, s := range b.CoinSpends {
		conditions, _, err := condition.EvaluateSpend(interpreter, s, maximumCost)
		if nil != err {
			return nil, err
		}
		coins = append(coins, condition.Additions(s.Coin.Id(), conditions)...)
	}
	return coins, nil
}

// Pack - binary form: varint64(count) ‖ spends ‖ signature
func (b *SpendBundle) Pack() []byte {
	buffer := util.ToVarint64(uint64(len(b.CoinSpends)))
	for _, s := range b.CoinSpends {
		buffer = s.AppendPacked(buffer)
	}
	return util.AppendBytes(buffer, b.AggregatedSignature)
}

// Unpack - decode a bundle
func Unpack(buffer []byte) (*SpendBundle, error) {
	count, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrTruncatedRecord
	}
	if count > uint64(len(buffer)) {
		return nil, fault.ErrInvalidCount
	}
	b := &SpendBundle{CoinSpends: make([]coin.CoinSpend, 0, count)}
	for i := uint64(0); i < count; i += 1 {
		s, used, err := coin.UnpackCoinSpend(buffer[n:])
		if nil != err {
			return nil, err
		}
		n += used
		b.CoinSpends = append(b.CoinSpends, s)
	}
	sig, used := util.FromBytes(buffer[n:])
	if 0 == used {
		return nil, fault.ErrTruncatedRecord
	}
	b.AggregatedSignature = sig
	return b, nil
}

// Id - digest of the packed bundle
func (b *SpendBundle) Id() merkle.Digest {
	return merkle.NewDigest(b.Pack())
}
