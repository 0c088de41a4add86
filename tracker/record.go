// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
	"github.com/bitmark-inc/coinset/util"
)

// Record - the current coin of one tracked NFT
type Record struct {
	LauncherId         merkle.Digest
	Coin               coin.Coin
	LineageProof       fn.Option[coin.LineageProof]
	FullPuzzle         *program.Program
	MintHeight         uint32
	PendingTransaction bool
}

// Packed - binary form of a record
type Packed []byte

// record packing flags
const (
	flagNone    = 0x00
	flagLineage = 0x01
	flagPending = 0x02
)

// Pack - launcher id ‖ coin ‖ flags ‖ [lineage proof] ‖ varint(mint height) ‖ puzzle
func (r Record) Pack() Packed {
	buffer := make([]byte, 0, 256)
	buffer = append(buffer, r.LauncherId[:]...)
	buffer = r.Coin.AppendPacked(buffer)

	flags := byte(flagNone)
	if r.LineageProof.IsSome() {
		flags |= flagLineage
	}
	if r.PendingTransaction {
		flags |= flagPending
	}
	buffer = append(buffer, flags)
	r.LineageProof.WhenSome(func(lp coin.LineageProof) {
		buffer = lp.AppendPacked(buffer)
	})
	buffer = util.AppendVarint64(buffer, uint64(r.MintHeight))
	return append(buffer, r.FullPuzzle.Pack()...)
}

// Unpack - decode a packed record
func (packed Packed) Unpack() (Record, error) {
	r := Record{}
	buffer := []byte(packed)

	if len(buffer) < merkle.DigestLength {
		return r, fault.ErrTruncatedRecord
	}
	n := copy(r.LauncherId[:], buffer)

	c, used, err := coin.UnpackCoin(buffer[n:])
	if nil != err {
		return r, err
	}
	r.Coin = c
	n += used

	if n >= len(buffer) {
		return r, fault.ErrTruncatedRecord
	}
	flags := buffer[n]
	n += 1
	if 0 != flags&^(flagLineage|flagPending) {
		return r, fault.ErrUnknownRecordType
	}
	r.PendingTransaction = 0 != flags&flagPending

	if 0 != flags&flagLineage {
		lp, used, err := coin.UnpackLineageProof(buffer[n:])
		if nil != err {
			return r, err
		}
		r.LineageProof = fn.Some(lp)
		n += used
	}

	height, used := util.FromVarint64(buffer[n:])
	if 0 == used || height > 0xffffffff {
		return r, fault.ErrTruncatedRecord
	}
	r.MintHeight = uint32(height)
	n += used

	p, used, err := program.Packed(buffer[n:]).Unpack()
	if nil != err {
		return r, err
	}
	if n+used != len(buffer) {
		return r, fault.ErrUnknownRecordType
	}
	r.FullPuzzle = p
	return r, nil
}
