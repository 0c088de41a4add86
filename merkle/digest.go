// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/coinset/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - type for a digest
//
// bytes are kept in the order the hash function produced them and
// printed in the same order, to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// NewDigestFromParts - digest of the concatenation of all parts
func NewDigestFromParts(parts ...[]byte) Digest {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// String - hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// Bytes - copy of the digest as a slice
func (digest Digest) Bytes() []byte {
	return digest[:]
}

// IsZero - true for the all-zero digest
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if DigestLength != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidDigest
	}
	buffer := make([]byte, DigestLength)
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromHex - parse a hex string with an optional 0x prefix
func DigestFromHex(s string) (Digest, error) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	var d Digest
	err := d.UnmarshalText([]byte(s))
	return d, err
}
