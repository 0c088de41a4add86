// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - bech32m text form of puzzle hashes and NFT ids
package address

import (
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/bitmark-inc/coinset/chain"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

// Encode - bech32m string of a digest under a human readable prefix
func Encode(prefix string, d merkle.Digest) (string, error) {
	converted, err := bech32.ConvertBits(d[:], 8, 5, true)
	if nil != err {
		return "", err
	}
	return bech32.EncodeM(prefix, converted)
}

// Decode - prefix and digest of a bech32m string
func Decode(s string) (string, merkle.Digest, error) {
	prefix, data, version, err := bech32.DecodeGeneric(s)
	if nil != err {
		return "", merkle.Digest{}, fault.ErrInvalidAddress
	}
	if bech32.VersionM != version {
		return "", merkle.Digest{}, fault.ErrInvalidAddress
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if nil != err {
		return "", merkle.Digest{}, fault.ErrInvalidAddress
	}
	d := merkle.Digest{}
	err = merkle.DigestFromBytes(&d, converted)
	if nil != err {
		return "", merkle.Digest{}, fault.ErrInvalidAddress
	}
	return prefix, d, nil
}

// DecodeExpecting - digest of a bech32m string that must carry prefix
func DecodeExpecting(prefix string, s string) (merkle.Digest, error) {
	actual, d, err := Decode(s)
	if nil != err {
		return merkle.Digest{}, err
	}
	if actual != prefix {
		return merkle.Digest{}, fault.ErrWrongNetworkForAddress
	}
	return d, nil
}

// FromPuzzleHash - receive address of a puzzle hash on a chain
func FromPuzzleHash(p chain.Parameters, puzzleHash merkle.Digest) (string, error) {
	return Encode(p.AddressPrefix, puzzleHash)
}

// ToPuzzleHash - puzzle hash of a receive address on a chain
func ToPuzzleHash(p chain.Parameters, s string) (merkle.Digest, error) {
	return DecodeExpecting(p.AddressPrefix, s)
}

// NFTId - text identifier of an NFT launcher
func NFTId(p chain.Parameters, launcherId merkle.Digest) (string, error) {
	return Encode(p.NFTPrefix, launcherId)
}

// LauncherId - launcher id of an NFT text identifier
func LauncherId(p chain.Parameters, s string) (merkle.Digest, error) {
	return DecodeExpecting(p.NFTPrefix, s)
}
