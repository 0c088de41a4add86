// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
)

func TestParseList(t *testing.T) {
	ph := merkle.NewDigest([]byte("target"))
	id := merkle.NewDigest([]byte("announcement"))

	conditions := []condition.Condition{
		condition.CreateCoin{PuzzleHash: ph, Amount: 1, Memos: [][]byte{ph[:]}},
		condition.AggSigMe{PublicKey: []byte{1, 2, 3}, Message: []byte("message")},
		condition.ReserveFee{Amount: 10},
		condition.CreateCoinAnnouncement{Message: []byte("coin")},
		condition.AssertCoinAnnouncement{Id: id},
		condition.CreatePuzzleAnnouncement{Message: []byte("puzzle")},
		condition.AssertPuzzleAnnouncement{Id: id},
		condition.AssertMyParentId{Id: id},
		condition.AssertMyAmount{Amount: 1},
		condition.Remark{Code: condition.OpUpdateMetadata, Data: []*program.Program{program.String("updater"), program.String("solution")}},
	}

	parsed, err := condition.Parse(condition.List(conditions))
	require.Nil(t, err, "parse")
	require.Equal(t, len(conditions), len(parsed), "count")

	for i := range conditions {
		assert.Equal(t, conditions[i].Opcode(), parsed[i].Opcode(), "%d: opcode", i)
		assert.True(t, conditions[i].Program().Equal(parsed[i].Program()), "%d: program", i)
	}
}

func TestParseUnknownIsRemark(t *testing.T) {
	p := program.List(program.List(program.Int(90), program.String("anything")))
	parsed, err := condition.Parse(p)
	require.Nil(t, err, "parse")
	r, ok := parsed[0].(condition.Remark)
	require.True(t, ok, "not a remark")
	assert.Equal(t, condition.Opcode(90), r.Code, "code")
}

func TestParseInvalid(t *testing.T) {
	_, err := condition.Parse(program.List(program.List()))
	assert.Equal(t, fault.ErrInvalidCondition, err, "empty condition")

	_, err = condition.Parse(program.List(program.List(program.Int(51), program.String("short"), program.Int(1))))
	assert.Equal(t, fault.ErrInvalidDigest, err, "bad puzzle hash")

	_, err = condition.Parse(program.List(program.List(program.Int(73), program.Int(-1))))
	assert.Equal(t, fault.ErrInvalidInteger, err, "negative amount")
}

func TestSignatureRequirements(t *testing.T) {
	coinId := merkle.NewDigest([]byte("coin"))
	additional := []byte("network")
	conditions := []condition.Condition{
		condition.CreateCoin{Amount: 1},
		condition.AggSigMe{PublicKey: []byte("pk"), Message: []byte("m")},
	}

	r := condition.SignatureRequirements(coinId, conditions, additional)
	require.Equal(t, 1, len(r), "count")
	assert.Equal(t, []byte("pk"), r[0].PublicKey, "key")

	expected := append(append([]byte("m"), coinId[:]...), additional...)
	assert.Equal(t, expected, r[0].Message, "message")
}

func TestAdditions(t *testing.T) {
	parent := merkle.NewDigest([]byte("parent"))
	ph := merkle.NewDigest([]byte("child"))
	conditions := []condition.Condition{
		condition.CreateCoin{PuzzleHash: ph, Amount: 1},
		condition.ReserveFee{Amount: 3},
		condition.CreateCoin{PuzzleHash: ph, Amount: 4},
	}

	additions := condition.Additions(parent, conditions)
	require.Equal(t, 2, len(additions), "count")
	assert.Equal(t, parent, additions[0].ParentId, "parent")
	assert.Equal(t, uint64(4), additions[1].Amount, "amount")
	fee, err := condition.ReservedFee(conditions)
	require.Nil(t, err, "fee")
	assert.Equal(t, uint64(3), fee, "fee")
}

func TestReservedFeeOverflow(t *testing.T) {
	conditions := []condition.Condition{
		condition.ReserveFee{Amount: 1 << 63},
		condition.ReserveFee{Amount: 1 << 63},
	}
	_, err := condition.ReservedFee(conditions)
	assert.Equal(t, fault.ErrInvalidAmount, err, "wrapped fee")
}
