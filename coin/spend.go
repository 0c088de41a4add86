// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin

import (
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/program"
)

// CoinSpend - the revealed puzzle and the solution that consumes a coin
type CoinSpend struct {
	Coin         Coin
	PuzzleReveal *program.Program
	Solution     *program.Program
}

// Valid - the revealed puzzle must hash to the coin's puzzle hash
func (s CoinSpend) Valid() error {
	if nil == s.PuzzleReveal || nil == s.Solution {
		return fault.ErrInvalidSolution
	}
	if s.PuzzleReveal.TreeHash() != s.Coin.PuzzleHash {
		return fault.ErrInvalidPuzzleHash
	}
	return nil
}
