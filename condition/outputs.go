// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/util"
)

// Requirement - a public key and the exact bytes it must sign
type Requirement struct {
	PublicKey []byte
	Message   []byte
}

// Additions - coins created by the spend of a coin
func Additions(parentId merkle.Digest, conditions []Condition) []coin.Coin {
	coins := make([]coin.Coin, 0, 2)
	for _, c := range conditions {
		if cc, ok := c.(CreateCoin); ok {
			coins = append(coins, coin.Coin{
				ParentId:   parentId,
				PuzzleHash: cc.PuzzleHash,
				Amount:     cc.Amount,
			})
		}
	}
	return coins
}

// SignatureRequirements - every AggSigMe of a spend, bound to the coin
// and to the chain's additional data
func SignatureRequirements(coinId merkle.Digest, conditions []Condition, additionalData []byte) []Requirement {
	requirements := make([]Requirement, 0, 1)
	for _, c := range conditions {
		if a, ok := c.(AggSigMe); ok {
			message := make([]byte, 0, len(a.Message)+merkle.DigestLength+len(additionalData))
			message = append(message, a.Message...)
			message = append(message, coinId[:]...)
			message = append(message, additionalData...)
			requirements = append(requirements, Requirement{
				PublicKey: a.PublicKey,
				Message:   message,
			})
		}
	}
	return requirements
}

// ReservedFee - total of all ReserveFee conditions
func ReservedFee(conditions []Condition) (uint64, error) {
	total := uint64(0)
	for _, c := range conditions {
		if f, ok := c.(ReserveFee); ok {
			sum, ok := util.AddAmount(total, f.Amount)
			if !ok {
				return 0, fault.ErrInvalidAmount
			}
			total = sum
		}
	}
	return total, nil
}

// Remarks - remarks carrying the given code
func Remarks(conditions []Condition, code Opcode) []Remark {
	var remarks []Remark
	for _, c := range conditions {
		if r, ok := c.(Remark); ok && code == r.Code {
			remarks = append(remarks, r)
		}
	}
	return remarks
}
