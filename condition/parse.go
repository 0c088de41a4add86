// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition

import (
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/program"
)

// Parse - decode a list of conditions
//
// unrecognised opcodes become remarks
func Parse(p *program.Program) ([]Condition, error) {
	items, err := p.Items()
	if nil != err {
		return nil, err
	}
	conditions := make([]Condition, 0, len(items))
	for _, item := range items {
		c, err := parseOne(item)
		if nil != err {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

func parseOne(p *program.Program) (Condition, error) {
	items, err := p.Items()
	if nil != err {
		return nil, err
	}
	if 0 == len(items) {
		return nil, fault.ErrInvalidCondition
	}
	code, err := items[0].AsInt64()
	if nil != err {
		return nil, err
	}
	args := items[1:]

	switch op := Opcode(code); op {

	case OpCreateCoin:
		if len(args) < 2 {
			return nil, fault.ErrInvalidCondition
		}
		c := CreateCoin{}
		if c.PuzzleHash, err = args[0].AsDigest(); nil != err {
			return nil, err
		}
		if c.Amount, err = args[1].AsUint64(); nil != err {
			return nil, err
		}
		if len(args) > 2 {
			memos, err := args[2].Items()
			if nil != err {
				return nil, err
			}
			for _, m := range memos {
				b, err := m.AtomBytes()
				if nil != err {
					return nil, err
				}
				c.Memos = append(c.Memos, append([]byte{}, b...))
			}
		}
		return c, nil

	case OpAggSigMe:
		if 2 != len(args) {
			return nil, fault.ErrInvalidCondition
		}
		pk, err := args[0].AtomBytes()
		if nil != err {
			return nil, err
		}
		message, err := args[1].AtomBytes()
		if nil != err {
			return nil, err
		}
		return AggSigMe{PublicKey: append([]byte{}, pk...), Message: append([]byte{}, message...)}, nil

	case OpReserveFee, OpAssertMyAmount:
		if 1 != len(args) {
			return nil, fault.ErrInvalidCondition
		}
		amount, err := args[0].AsUint64()
		if nil != err {
			return nil, err
		}
		if OpReserveFee == op {
			return ReserveFee{Amount: amount}, nil
		}
		return AssertMyAmount{Amount: amount}, nil

	case OpCreateCoinAnnouncement, OpCreatePuzzleAnnouncement:
		if 1 != len(args) {
			return nil, fault.ErrInvalidCondition
		}
		message, err := args[0].AtomBytes()
		if nil != err {
			return nil, err
		}
		message = append([]byte{}, message...)
		if OpCreateCoinAnnouncement == op {
			return CreateCoinAnnouncement{Message: message}, nil
		}
		return CreatePuzzleAnnouncement{Message: message}, nil

	case OpAssertCoinAnnouncement, OpAssertPuzzleAnnouncement, OpAssertMyParentId:
		if 1 != len(args) {
			return nil, fault.ErrInvalidCondition
		}
		id, err := args[0].AsDigest()
		if nil != err {
			return nil, err
		}
		switch op {
		case OpAssertCoinAnnouncement:
			return AssertCoinAnnouncement{Id: id}, nil
		case OpAssertPuzzleAnnouncement:
			return AssertPuzzleAnnouncement{Id: id}, nil
		default:
			return AssertMyParentId{Id: id}, nil
		}

	default:
		return Remark{Code: op, Data: args}, nil
	}
}
