// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

import (
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
	"github.com/bitmark-inc/coinset/util"
)

// AppendPacked - binary form: parent ‖ puzzle hash ‖ varint64(amount)
func (c Coin) AppendPacked(buffer []byte) []byte {
	buffer = append(buffer, c.ParentId[:]...)
	buffer = append(buffer, c.PuzzleHash[:]...)
	return util.AppendVarint64(buffer, c.Amount)
}

// UnpackCoin - decode a coin, returning the number of bytes consumed
func UnpackCoin(buffer []byte) (Coin, int, error) {
	c := Coin{}
	if len(buffer) < 2*merkle.DigestLength+1 {
		return c, 0, fault.ErrTruncatedRecord
	}
	n := copy(c.ParentId[:], buffer)
	n += copy(c.PuzzleHash[:], buffer[n:])
	amount, used := util.FromVarint64(buffer[n:])
	if 0 == used {
		return c, 0, fault.ErrTruncatedRecord
	}
	c.Amount = amount
	return c, n + used, nil
}

// AppendPacked - binary form: flag ‖ parent ‖ [inner puzzle hash] ‖ varint64(amount)
func (lp LineageProof) AppendPacked(buffer []byte) []byte {
	if lp.IsEve() {
		buffer = append(buffer, 0)
	} else {
		buffer = append(buffer, 1)
	}
	buffer = append(buffer, lp.ParentId[:]...)
	lp.InnerPuzzleHash.WhenSome(func(inner merkle.Digest) {
		buffer = append(buffer, inner[:]...)
	})
	return util.AppendVarint64(buffer, lp.Amount)
}

// UnpackLineageProof - decode a lineage proof
func UnpackLineageProof(buffer []byte) (LineageProof, int, error) {
	lp := LineageProof{}
	if len(buffer) < 1+merkle.DigestLength+1 {
		return lp, 0, fault.ErrTruncatedRecord
	}
	flag := buffer[0]
	n := 1 + copy(lp.ParentId[:], buffer[1:])

	switch flag {
	case 0:
	case 1:
		if len(buffer) < n+merkle.DigestLength+1 {
			return lp, 0, fault.ErrTruncatedRecord
		}
		var inner merkle.Digest
		n += copy(inner[:], buffer[n:])
		lp.InnerPuzzleHash = fn.Some(inner)
	default:
		return lp, 0, fault.ErrUnknownRecordType
	}

	amount, used := util.FromVarint64(buffer[n:])
	if 0 == used {
		return lp, 0, fault.ErrTruncatedRecord
	}
	lp.Amount = amount
	return lp, n + used, nil
}

// AppendPacked - binary form: coin ‖ puzzle reveal ‖ solution
func (s CoinSpend) AppendPacked(buffer []byte) []byte {
	buffer = s.Coin.AppendPacked(buffer)
	buffer = append(buffer, s.PuzzleReveal.Pack()...)
	return append(buffer, s.Solution.Pack()...)
}

// UnpackCoinSpend - decode a coin spend
func UnpackCoinSpend(buffer []byte) (CoinSpend, int, error) {
	c, n, err := UnpackCoin(buffer)
	if nil != err {
		return CoinSpend{}, 0, err
	}
	puzzle, used, err := program.Packed(buffer[n:]).Unpack()
	if nil != err {
		return CoinSpend{}, 0, err
	}
	n += used
	solution, used, err := program.Packed(buffer[n:]).Unpack()
	if nil != err {
		return CoinSpend{}, 0, err
	}
	return CoinSpend{Coin: c, PuzzleReveal: puzzle, Solution: solution}, n + used, nil
}
