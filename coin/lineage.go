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
)

// LineageProof - what a singleton needs to prove its parent was the
// previous generation of the same singleton
//
// the first generation after the launcher has no inner puzzle hash
type LineageProof struct {
	ParentId        merkle.Digest
	InnerPuzzleHash fn.Option[merkle.Digest]
	Amount          uint64
}

// IsEve - true for the proof of the first generation
func (lp LineageProof) IsEve() bool {
	return lp.InnerPuzzleHash.IsNone()
}

// Program - the lineage proof as it appears in a singleton solution
func (lp LineageProof) Program() *program.Program {
	return fn.ElimOption(lp.InnerPuzzleHash,
		func() *program.Program {
			return program.List(program.Digest(lp.ParentId), program.Uint(lp.Amount))
		},
		func(inner merkle.Digest) *program.Program {
			return program.List(program.Digest(lp.ParentId), program.Digest(inner), program.Uint(lp.Amount))
		},
	)
}

// LineageProofFromProgram - decode a lineage proof from a solution
func LineageProofFromProgram(p *program.Program) (LineageProof, error) {
	items, err := p.Items()
	if nil != err {
		return LineageProof{}, err
	}

	lp := LineageProof{
		InnerPuzzleHash: fn.None[merkle.Digest](),
	}
	switch len(items) {
	case 2:
	case 3:
		inner, err := items[1].AsDigest()
		if nil != err {
			return LineageProof{}, err
		}
		lp.InnerPuzzleHash = fn.Some(inner)
	default:
		return LineageProof{}, fault.ErrInvalidLineageProof
	}

	lp.ParentId, err = items[0].AsDigest()
	if nil != err {
		return LineageProof{}, err
	}
	lp.Amount, err = items[len(items)-1].AsUint64()
	if nil != err {
		return LineageProof{}, err
	}
	return lp, nil
}
