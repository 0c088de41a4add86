// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/util"
)

// MaximumDepth - nesting limit when unpacking, rest chains do not count
const MaximumDepth = 512

// Packed - binary form of a program
type Packed []byte

// Pack - convert a program to its binary form
func (p *Program) Pack() Packed {
	return appendPacked(make([]byte, 0, 64), p)
}

func appendPacked(buffer []byte, p *Program) []byte {
	for p.IsPair() {
		buffer = append(buffer, pairTag)
		buffer = appendPacked(buffer, p.first)
		p = p.rest
	}
	buffer = append(buffer, atomTag)
	return util.AppendBytes(buffer, p.atom)
}

// Unpack - decode a program, returning the number of bytes consumed
func (packed Packed) Unpack() (*Program, int, error) {
	return unpack(packed, 0)
}

func unpack(buffer []byte, depth int) (*Program, int, error) {
	if depth > MaximumDepth {
		return nil, 0, fault.ErrProgramTooDeep
	}

	// collect the firsts of a rest chain, then build it back to front
	firsts := make([]*Program, 0, 4)
	n := 0
	for {
		if n >= len(buffer) {
			return nil, 0, fault.ErrTruncatedProgram
		}
		tag := buffer[n]
		n += 1

		switch tag {
		case pairTag:
			first, used, err := unpack(buffer[n:], depth+1)
			if nil != err {
				return nil, 0, err
			}
			n += used
			firsts = append(firsts, first)

		case atomTag:
			data, used := util.FromBytes(buffer[n:])
			if 0 == used {
				return nil, 0, fault.ErrTruncatedProgram
			}
			n += used
			result := Atom(data)
			for i := len(firsts) - 1; i >= 0; i -= 1 {
				result = Cons(firsts[i], result)
			}
			return result, n, nil

		default:
			return nil, 0, fault.ErrUnknownRecordType
		}
	}
}
