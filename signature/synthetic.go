// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signature

import (
	"math/big"

	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

// order of the BLS12-381 scalar field
var groupOrder, _ = new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// SyntheticOffset - sha3-256(public key ‖ hidden puzzle hash) mod r
func SyntheticOffset(publicKey []byte, hiddenPuzzleHash merkle.Digest) *big.Int {
	d := merkle.NewDigestFromParts(publicKey, hiddenPuzzleHash[:])
	return new(big.Int).Mod(new(big.Int).SetBytes(d[:]), groupOrder)
}

// SyntheticSecretKey - secret key + offset, the key behind a standard
// puzzle's synthetic public key
func SyntheticSecretKey(sk *PrivateKey, hiddenPuzzleHash merkle.Digest) (*PrivateKey, error) {
	raw, err := sk.MarshalBinary()
	if nil != err {
		return nil, err
	}

	s := new(big.Int).SetBytes(raw)
	s.Add(s, SyntheticOffset(PublicKeyBytes(sk), hiddenPuzzleHash))
	s.Mod(s, groupOrder)
	if 0 == s.Sign() {
		return nil, fault.ErrInvalidSecretKey
	}

	synthetic := new(PrivateKey)
	if err := synthetic.UnmarshalBinary(s.FillBytes(make([]byte, len(raw)))); nil != err {
		return nil, err
	}
	return synthetic, nil
}
