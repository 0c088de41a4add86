// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package program - the tree values used as puzzles and solutions
//
// A program is either an atom (a byte string, the empty atom is nil)
// or a pair of two programs. Lists are chains of pairs ending in nil.
//
// Tree hash:
//
//	atom: sha3-256(0x01 ‖ bytes)
//	pair: sha3-256(0x02 ‖ hash(first) ‖ hash(rest))
//
// Packed form:
//
//	atom: 0x01 ‖ varint64(length) ‖ bytes
//	pair: 0x02 ‖ packed(first) ‖ packed(rest)
package program
