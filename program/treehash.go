// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"github.com/bitmark-inc/coinset/merkle"
)

const (
	atomTag = 0x01
	pairTag = 0x02
)

var nilHash = HashAtom(nil)

// HashAtom - tree hash of an atom
func HashAtom(b []byte) merkle.Digest {
	return merkle.NewDigestFromParts([]byte{atomTag}, b)
}

// HashPair - tree hash of a pair from the hashes of its sides
func HashPair(first merkle.Digest, rest merkle.Digest) merkle.Digest {
	return merkle.NewDigestFromParts([]byte{pairTag}, first[:], rest[:])
}

// TreeHash - the content hash of the program
func (p *Program) TreeHash() merkle.Digest {
	if !p.IsPair() {
		return HashAtom(p.atom)
	}

	// walk the rest chain iteratively so long lists do not recurse deeply
	firsts := make([]merkle.Digest, 0, 4)
	for p.IsPair() {
		firsts = append(firsts, p.first.TreeHash())
		p = p.rest
	}
	h := HashAtom(p.atom)
	for i := len(firsts) - 1; i >= 0; i -= 1 {
		h = HashPair(firsts[i], h)
	}
	return h
}

// ListHash - tree hash of a list whose element hashes are known
func ListHash(itemHashes ...merkle.Digest) merkle.Digest {
	h := nilHash
	for i := len(itemHashes) - 1; i >= 0; i -= 1 {
		h = HashPair(itemHashes[i], h)
	}
	return h
}
