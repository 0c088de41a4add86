// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/program"
)

// Interpreter - evaluates a puzzle with a solution to the list of
// conditions it emits and the cost of doing so
//
// evaluation must be deterministic and must fail once the cost would
// exceed maximumCost, a maximumCost of zero means no limit
type Interpreter interface {
	Evaluate(puzzle *program.Program, solution *program.Program, maximumCost uint64) ([]Condition, uint64, error)
}

// EvaluateSpend - check the revealed puzzle then evaluate it
func EvaluateSpend(interpreter Interpreter, spend coin.CoinSpend, maximumCost uint64) ([]Condition, uint64, error) {
	if err := spend.Valid(); nil != err {
		return nil, 0, err
	}
	return interpreter.Evaluate(spend.PuzzleReveal, spend.Solution, maximumCost)
}
