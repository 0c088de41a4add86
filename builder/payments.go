// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package builder

import (
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

// MakePayments - one CreateCoin per amount
//
// memos may be nil, otherwise all three must have the same length
func MakePayments(amounts []uint64, puzzleHashes []merkle.Digest, memos [][][]byte) ([]condition.Condition, error) {
	if len(amounts) != len(puzzleHashes) {
		return nil, fault.ErrLengthMismatch
	}
	if nil != memos && len(memos) != len(amounts) {
		return nil, fault.ErrLengthMismatch
	}

	payments := make([]condition.Condition, 0, len(amounts))
	for i, amount := range amounts {
		cc := condition.CreateCoin{
			PuzzleHash: puzzleHashes[i],
			Amount:     amount,
		}
		if nil != memos {
			cc.Memos = memos[i]
		}
		payments = append(payments, cc)
	}
	return payments, nil
}
