// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spendbundle

import (
	"github.com/bitmark-inc/coinset/announcement"
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/signature"
	"github.com/bitmark-inc/coinset/util"
)

// Parameters - what the local validation boundary needs
type Parameters struct {
	Interpreter    condition.Interpreter
	AdditionalData []byte
	MaximumCost    uint64
}

// Result - effect of a valid bundle
type Result struct {
	Removals  []coin.Coin
	Additions []coin.Coin
	Fee       uint64
	Cost      uint64
}

// Validate - check a bundle the way the ledger would before accepting it:
// revealed puzzles, double spends, coin assertions, announcements,
// value conservation and the aggregate signature
func Validate(b *SpendBundle, parameters Parameters) (*Result, error) {
	result := &Result{
		Removals: b.Removals(),
	}
	coordinator := announcement.NewCoordinator()
	seen := make(map[merkle.Digest]struct{}, len(b.CoinSpends))
	publicKeys := make([][]byte, 0, len(b.CoinSpends))
	messages := make([][]byte, 0, len(b.CoinSpends))

	inputs := uint64(0)
	outputs := uint64(0)
	reserved := uint64(0)
	ok := true

	for _, s := range b.CoinSpends {
		coinId := s.Coin.Id()
		if _, ok := seen[coinId]; ok {
			return nil, fault.ErrDoubleSpend
		}
		seen[coinId] = struct{}{}

		remaining := uint64(0)
		if 0 != parameters.MaximumCost {
			if result.Cost >= parameters.MaximumCost {
				return nil, fault.ErrCostExceeded
			}
			remaining = parameters.MaximumCost - result.Cost
		}
		conditions, cost, err := condition.EvaluateSpend(parameters.Interpreter, s, remaining)
		if nil != err {
			return nil, err
		}
		result.Cost += cost

		if err := checkAssertions(s.Coin, conditions); nil != err {
			return nil, err
		}
		coordinator.Add(coinId, conditions)

		for _, r := range condition.SignatureRequirements(coinId, conditions, parameters.AdditionalData) {
			publicKeys = append(publicKeys, r.PublicKey)
			messages = append(messages, r.Message)
		}

		additions := condition.Additions(coinId, conditions)
		for _, a := range additions {
			if outputs, ok = util.AddAmount(outputs, a.Amount); !ok {
				return nil, fault.ErrValueNotConserved
			}
		}
		result.Additions = append(result.Additions, additions...)
		if inputs, ok = util.AddAmount(inputs, s.Coin.Amount); !ok {
			return nil, fault.ErrValueNotConserved
		}
		fee, err := condition.ReservedFee(conditions)
		if nil != err {
			return nil, err
		}
		if reserved, ok = util.AddAmount(reserved, fee); !ok {
			return nil, fault.ErrInvalidAmount
		}
	}

	if err := coordinator.Validate(); nil != err {
		return nil, err
	}
	if outputs > inputs || inputs-outputs < reserved {
		return nil, fault.ErrValueNotConserved
	}
	result.Fee = inputs - outputs

	if !signature.VerifyAggregate(publicKeys, messages, b.AggregatedSignature) {
		return nil, fault.ErrInvalidSignature
	}
	return result, nil
}

func checkAssertions(c coin.Coin, conditions []condition.Condition) error {
	for _, cond := range conditions {
		switch a := cond.(type) {
		case condition.AssertMyAmount:
			if a.Amount != c.Amount {
				return fault.ErrInvalidAssertion
			}
		case condition.AssertMyParentId:
			if a.Id != c.ParentId {
				return fault.ErrInvalidAssertion
			}
		}
	}
	return nil
}
