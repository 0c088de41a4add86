// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"encoding/binary"

	"github.com/bitmark-inc/coinset/fault"
)

// integers are stored as minimal big endian two's complement atoms,
// zero is the empty atom

// Int - atom for a signed integer
func Int(value int64) *Program {
	if 0 == value {
		return nilProgram
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(value))
	for len(b) > 1 {
		if 0x00 == b[0] && 0 == b[1]&0x80 {
			b = b[1:]
		} else if 0xff == b[0] && 0 != b[1]&0x80 {
			b = b[1:]
		} else {
			break
		}
	}
	return &Program{atom: b}
}

// Uint - atom for an unsigned integer
func Uint(value uint64) *Program {
	if 0 == value {
		return nilProgram
	}
	b := make([]byte, 9)
	binary.BigEndian.PutUint64(b[1:], value)
	for len(b) > 1 && 0x00 == b[0] && 0 == b[1]&0x80 {
		b = b[1:]
	}
	return &Program{atom: b}
}

// AsInt64 - decode a signed integer atom
func (p *Program) AsInt64() (int64, error) {
	b, err := p.AtomBytes()
	if nil != err {
		return 0, err
	}
	if 0 == len(b) {
		return 0, nil
	}
	if len(b) > 8 {
		return 0, fault.ErrInvalidInteger
	}
	value := int64(0)
	if 0 != b[0]&0x80 {
		value = -1
	}
	for _, c := range b {
		value = value<<8 | int64(c)
	}
	return value, nil
}

// AsUint64 - decode a non-negative integer atom
func (p *Program) AsUint64() (uint64, error) {
	b, err := p.AtomBytes()
	if nil != err {
		return 0, err
	}
	if 0 == len(b) {
		return 0, nil
	}
	if 0 != b[0]&0x80 {
		return 0, fault.ErrInvalidInteger
	}
	for len(b) > 0 && 0 == b[0] {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, fault.ErrInvalidInteger
	}
	value := uint64(0)
	for _, c := range b {
		value = value<<8 | uint64(c)
	}
	return value, nil
}
