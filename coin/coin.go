// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/coinset/merkle"
)

// Coin - an immutable unit of value locked by a puzzle
type Coin struct {
	ParentId   merkle.Digest `json:"parentCoinInfo"`
	PuzzleHash merkle.Digest `json:"puzzleHash"`
	Amount     uint64        `json:"amount"`
}

// Id - sha3-256(parent ‖ puzzle hash ‖ amount as 8 byte big endian)
func (c Coin) Id() merkle.Digest {
	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], c.Amount)
	return merkle.NewDigestFromParts(c.ParentId[:], c.PuzzleHash[:], amount[:])
}

// String - short form for logging
func (c Coin) String() string {
	return fmt.Sprintf("coin(%s amount: %d)", c.Id(), c.Amount)
}

// CoinState - confirmation status of a coin as reported by the ledger
//
// heights of zero mean not yet created or not yet spent
type CoinState struct {
	Coin          Coin   `json:"coin"`
	CreatedHeight uint32 `json:"createdHeight"`
	SpentHeight   uint32 `json:"spentHeight"`
}

// IsSpent - true once a spend has been confirmed
func (s CoinState) IsSpent() bool {
	return 0 != s.SpentHeight
}
