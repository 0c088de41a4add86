// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// String - readable s-expression form for logging
func (p *Program) String() string {
	var b strings.Builder
	p.write(&b)
	return b.String()
}

func (p *Program) write(b *strings.Builder) {
	if !p.IsPair() {
		writeAtom(b, p.atom)
		return
	}
	b.WriteByte('(')
	p.first.write(b)
	p = p.rest
	for p.IsPair() {
		b.WriteByte(' ')
		p.first.write(b)
		p = p.rest
	}
	if !p.IsNil() {
		b.WriteString(" . ")
		writeAtom(b, p.atom)
	}
	b.WriteByte(')')
}

func writeAtom(b *strings.Builder, atom []byte) {
	if 0 == len(atom) {
		b.WriteString("()")
		return
	}
	if printable(atom) {
		b.WriteString(strconv.Quote(string(atom)))
		return
	}
	if len(atom) <= 2 {
		v, _ := (&Program{atom: atom}).AsInt64()
		b.WriteString(strconv.FormatInt(v, 10))
		return
	}
	b.WriteString("0x")
	b.WriteString(hex.EncodeToString(atom))
}

func printable(atom []byte) bool {
	if len(atom) < 2 {
		return false
	}
	for _, c := range atom {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
