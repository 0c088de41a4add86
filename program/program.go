// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"bytes"

	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

// Program - an atom or a pair
//
// values are immutable once constructed
type Program struct {
	atom  []byte
	first *Program
	rest  *Program
}

var nilProgram = &Program{atom: []byte{}}

// Nil - the empty atom, also the empty list
func Nil() *Program {
	return nilProgram
}

// Atom - program holding a copy of the bytes
func Atom(b []byte) *Program {
	if 0 == len(b) {
		return nilProgram
	}
	a := make([]byte, len(b))
	copy(a, b)
	return &Program{atom: a}
}

// String - atom holding the bytes of a string
func String(s string) *Program {
	return Atom([]byte(s))
}

// Digest - atom holding a 32 byte digest
func Digest(d merkle.Digest) *Program {
	return Atom(d[:])
}

// Cons - a pair
func Cons(first *Program, rest *Program) *Program {
	return &Program{first: first, rest: rest}
}

// List - a nil terminated chain of pairs
func List(items ...*Program) *Program {
	result := nilProgram
	for i := len(items) - 1; i >= 0; i -= 1 {
		result = Cons(items[i], result)
	}
	return result
}

// IsPair - true if this is a pair
func (p *Program) IsPair() bool {
	return nil != p.first
}

// IsNil - true for the empty atom
func (p *Program) IsNil() bool {
	return !p.IsPair() && 0 == len(p.atom)
}

// AtomBytes - the bytes of an atom, do not modify the result
func (p *Program) AtomBytes() ([]byte, error) {
	if p.IsPair() {
		return nil, fault.ErrNotAnAtom
	}
	return p.atom, nil
}

// AsDigest - an atom that must be exactly a digest
func (p *Program) AsDigest() (merkle.Digest, error) {
	var d merkle.Digest
	b, err := p.AtomBytes()
	if nil != err {
		return d, err
	}
	err = merkle.DigestFromBytes(&d, b)
	return d, err
}

// First - left side of a pair
func (p *Program) First() (*Program, error) {
	if !p.IsPair() {
		return nil, fault.ErrNotAProgramPair
	}
	return p.first, nil
}

// Rest - right side of a pair
func (p *Program) Rest() (*Program, error) {
	if !p.IsPair() {
		return nil, fault.ErrNotAProgramPair
	}
	return p.rest, nil
}

// Items - elements of a proper list
func (p *Program) Items() ([]*Program, error) {
	items := make([]*Program, 0, 4)
	for p.IsPair() {
		items = append(items, p.first)
		p = p.rest
	}
	if !p.IsNil() {
		return nil, fault.ErrNotProperList
	}
	return items, nil
}

// Equal - structural equality
func (p *Program) Equal(other *Program) bool {
	if p.IsPair() != other.IsPair() {
		return false
	}
	if !p.IsPair() {
		return bytes.Equal(p.atom, other.atom)
	}
	return p.first.Equal(other.first) && p.rest.Equal(other.rest)
}
