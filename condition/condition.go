// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
)

// Opcode - first element of a condition list
type Opcode int64

// condition opcodes
const (
	OpRemark                   Opcode = 1
	OpAggSigMe                 Opcode = 50
	OpCreateCoin               Opcode = 51
	OpReserveFee               Opcode = 52
	OpCreateCoinAnnouncement   Opcode = 60
	OpAssertCoinAnnouncement   Opcode = 61
	OpCreatePuzzleAnnouncement Opcode = 62
	OpAssertPuzzleAnnouncement Opcode = 63
	OpAssertMyParentId         Opcode = 71
	OpAssertMyAmount           Opcode = 73

	// carried as remarks and consumed by asset layers
	OpTransferOwnership Opcode = -10
	OpUpdateMetadata    Opcode = -24
)

// Condition - one output of evaluating a puzzle with its solution
type Condition interface {
	Opcode() Opcode
	Program() *program.Program
}

// CreateCoin - create a child coin of the spent coin
type CreateCoin struct {
	PuzzleHash merkle.Digest
	Amount     uint64
	Memos      [][]byte
}

// AggSigMe - require a signature by a key over message ‖ coin id ‖ additional data
type AggSigMe struct {
	PublicKey []byte
	Message   []byte
}

// ReserveFee - require at least this much of the bundle's surplus as fee
type ReserveFee struct {
	Amount uint64
}

// CreateCoinAnnouncement - announce a message from this coin
type CreateCoinAnnouncement struct {
	Message []byte
}

// AssertCoinAnnouncement - require a coin announcement in the same bundle
type AssertCoinAnnouncement struct {
	Id merkle.Digest
}

// CreatePuzzleAnnouncement - announce a message from this coin's puzzle
type CreatePuzzleAnnouncement struct {
	Message []byte
}

// AssertPuzzleAnnouncement - require a puzzle announcement in the same bundle
type AssertPuzzleAnnouncement struct {
	Id merkle.Digest
}

// AssertMyParentId - require the spent coin's parent
type AssertMyParentId struct {
	Id merkle.Digest
}

// AssertMyAmount - require the spent coin's amount
type AssertMyAmount struct {
	Amount uint64
}

// Remark - no ledger effect, asset layers may interpret some codes
type Remark struct {
	Code Opcode
	Data []*program.Program
}

func (CreateCoin) Opcode() Opcode               { return OpCreateCoin }
func (AggSigMe) Opcode() Opcode                 { return OpAggSigMe }
func (ReserveFee) Opcode() Opcode               { return OpReserveFee }
func (CreateCoinAnnouncement) Opcode() Opcode   { return OpCreateCoinAnnouncement }
func (AssertCoinAnnouncement) Opcode() Opcode   { return OpAssertCoinAnnouncement }
func (CreatePuzzleAnnouncement) Opcode() Opcode { return OpCreatePuzzleAnnouncement }
func (AssertPuzzleAnnouncement) Opcode() Opcode { return OpAssertPuzzleAnnouncement }
func (AssertMyParentId) Opcode() Opcode         { return OpAssertMyParentId }
func (AssertMyAmount) Opcode() Opcode           { return OpAssertMyAmount }
func (r Remark) Opcode() Opcode                 { return r.Code }

// Program - condition as a list
func (c CreateCoin) Program() *program.Program {
	if 0 == len(c.Memos) {
		return program.List(program.Int(int64(OpCreateCoin)), program.Digest(c.PuzzleHash), program.Uint(c.Amount))
	}
	memos := make([]*program.Program, len(c.Memos))
	for i, m := range c.Memos {
		memos[i] = program.Atom(m)
	}
	return program.List(program.Int(int64(OpCreateCoin)), program.Digest(c.PuzzleHash), program.Uint(c.Amount), program.List(memos...))
}

func (c AggSigMe) Program() *program.Program {
	return program.List(program.Int(int64(OpAggSigMe)), program.Atom(c.PublicKey), program.Atom(c.Message))
}

func (c ReserveFee) Program() *program.Program {
	return program.List(program.Int(int64(OpReserveFee)), program.Uint(c.Amount))
}

func (c CreateCoinAnnouncement) Program() *program.Program {
	return program.List(program.Int(int64(OpCreateCoinAnnouncement)), program.Atom(c.Message))
}

func (c AssertCoinAnnouncement) Program() *program.Program {
	return program.List(program.Int(int64(OpAssertCoinAnnouncement)), program.Digest(c.Id))
}

func (c CreatePuzzleAnnouncement) Program() *program.Program {
	return program.List(program.Int(int64(OpCreatePuzzleAnnouncement)), program.Atom(c.Message))
}

func (c AssertPuzzleAnnouncement) Program() *program.Program {
	return program.List(program.Int(int64(OpAssertPuzzleAnnouncement)), program.Digest(c.Id))
}

func (c AssertMyParentId) Program() *program.Program {
	return program.List(program.Int(int64(OpAssertMyParentId)), program.Digest(c.Id))
}

func (c AssertMyAmount) Program() *program.Program {
	return program.List(program.Int(int64(OpAssertMyAmount)), program.Uint(c.Amount))
}

func (r Remark) Program() *program.Program {
	return program.Cons(program.Int(int64(r.Code)), program.List(r.Data...))
}

// List - conditions as the list a delegated solution carries
func List(conditions []Condition) *program.Program {
	items := make([]*program.Program, len(conditions))
	for i, c := range conditions {
		items[i] = c.Program()
	}
	return program.List(items...)
}
