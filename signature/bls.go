// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signature

import (
	"bytes"

	"github.com/cloudflare/circl/sign/bls"

	"github.com/bitmark-inc/coinset/fault"
)

// sizes of the serialised forms
const (
	PublicKeySize = 48
	SignatureSize = 96
	SeedSize      = 32
)

// public keys on G1, signatures on G2
type (
	PrivateKey = bls.PrivateKey[bls.G1]
	PublicKey  = bls.PublicKey[bls.G1]
)

// Signature - compressed G2 point, empty means no signature
type Signature []byte

var keyGenSalt = []byte("BLS-SIG-KEYGEN-SALT-")

// GenerateKey - deterministic secret key from a seed of at least SeedSize bytes
func GenerateKey(seed []byte) (*PrivateKey, error) {
	if len(seed) < SeedSize {
		return nil, fault.ErrInvalidSecretKey
	}
	return bls.KeyGen[bls.G1](seed, keyGenSalt, nil)
}

// PublicKeyBytes - serialised public key of a secret key
func PublicKeyBytes(sk *PrivateKey) []byte {
	b, err := sk.PublicKey().MarshalBinary()
	if nil != err {
		return nil
	}
	return b
}

// ParsePublicKey - decode and check a serialised public key
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if PublicKeySize != len(b) {
		return nil, fault.ErrInvalidPublicKey
	}
	pk := new(PublicKey)
	if err := pk.UnmarshalBinary(b); nil != err {
		return nil, fault.ErrInvalidPublicKey
	}
	return pk, nil
}

// Sign - augmented scheme: the signed bytes are public key ‖ message
func Sign(sk *PrivateKey, message []byte) Signature {
	return Signature(bls.Sign(sk, augment(PublicKeyBytes(sk), message)))
}

// Verify - check one augmented signature
func Verify(publicKey []byte, message []byte, sig Signature) bool {
	pk, err := ParsePublicKey(publicKey)
	if nil != err {
		return false
	}
	return bls.Verify(pk, augment(publicKey, message), bls.Signature(sig))
}

// Aggregate - combine signatures, empty signatures are skipped and an
// aggregate of nothing is the empty signature
func Aggregate(signatures ...Signature) (Signature, error) {
	parts := make([]bls.Signature, 0, len(signatures))
	for _, s := range signatures {
		if 0 == len(s) {
			continue
		}
		if SignatureSize != len(s) {
			return nil, fault.ErrInvalidSignature
		}
		parts = append(parts, bls.Signature(s))
	}
	switch len(parts) {
	case 0:
		return Signature{}, nil
	case 1:
		return Signature(bytes.Clone(parts[0])), nil
	}
	aggregate, err := bls.Aggregate(bls.G1{}, parts)
	if nil != err {
		return nil, fault.ErrInvalidSignature
	}
	return Signature(aggregate), nil
}

// VerifyAggregate - check an aggregate against every (key, message) pair
//
// with no pairs only the empty signature is valid
func VerifyAggregate(publicKeys [][]byte, messages [][]byte, sig Signature) bool {
	if len(publicKeys) != len(messages) {
		return false
	}
	if 0 == len(publicKeys) {
		return 0 == len(sig)
	}
	if SignatureSize != len(sig) {
		return false
	}

	keys := make([]*PublicKey, len(publicKeys))
	augmented := make([][]byte, len(messages))
	for i, b := range publicKeys {
		pk, err := ParsePublicKey(b)
		if nil != err {
			return false
		}
		keys[i] = pk
		augmented[i] = augment(b, messages[i])
	}
	return bls.VerifyAggregate(keys, augmented, bls.Signature(sig))
}

func augment(publicKey []byte, message []byte) []byte {
	b := make([]byte, 0, len(publicKey)+len(message))
	b = append(b, publicKey...)
	return append(b, message...)
}
