// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle

import (
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
)

// evaluation costs
const (
	LayerCost      = 1000
	CreateCoinCost = 1800000
	AggSigCost     = 1200000
	ByteCost       = 12
)

// Evaluator - evaluates the wallet's own puzzle templates natively
//
// any other puzzle fails with fault.ErrUnknownPuzzle
type Evaluator struct {
	updaters Updaters
}

type meter struct {
	cost  uint64
	limit uint64
}

func (m *meter) add(cost uint64) error {
	m.cost += cost
	if 0 != m.limit && m.cost > m.limit {
		return fault.ErrCostExceeded
	}
	return nil
}

// NewEvaluator - evaluator knowing the given metadata updaters
func NewEvaluator(updaters Updaters) *Evaluator {
	if nil == updaters {
		updaters = DefaultUpdaters()
	}
	return &Evaluator{updaters: updaters}
}

// Evaluate - conditions emitted by a puzzle with its solution
func (e *Evaluator) Evaluate(puzzle *program.Program, solution *program.Program, maximumCost uint64) ([]condition.Condition, uint64, error) {
	m := &meter{limit: maximumCost}
	if err := m.add(ByteCost * uint64(len(solution.Pack()))); nil != err {
		return nil, m.cost, err
	}
	conditions, err := e.run(puzzle, solution, m)
	if nil != err {
		return nil, m.cost, err
	}
	for _, c := range conditions {
		switch c.(type) {
		case condition.CreateCoin:
			err = m.add(CreateCoinCost)
		case condition.AggSigMe:
			err = m.add(AggSigCost)
		}
		if nil != err {
			return nil, m.cost, err
		}
	}
	return conditions, m.cost, nil
}

func (e *Evaluator) run(puzzle *program.Program, solution *program.Program, m *meter) ([]condition.Condition, error) {
	if err := m.add(LayerCost); nil != err {
		return nil, err
	}

	template, args, ok := Uncurry(puzzle)
	if !ok {
		return nil, fault.ErrUnknownPuzzle
	}
	items, err := solution.Items()
	if nil != err {
		return nil, fault.ErrInvalidSolution
	}

	switch template {
	case StandardTemplate:
		if 1 != len(args) || 1 != len(items) {
			return nil, fault.ErrInvalidSolution
		}
		return runStandard(args[0], items[0])

	case LauncherTemplate:
		if 0 != len(args) || 3 != len(items) {
			return nil, fault.ErrInvalidSolution
		}
		return runLauncher(solution, items)

	case SingletonTemplate:
		if 2 != len(args) || 3 != len(items) {
			return nil, fault.ErrInvalidSolution
		}
		return e.runSingleton(args, items, m)

	case StateTemplate:
		if 3 != len(args) || 1 != len(items) {
			return nil, fault.ErrInvalidSolution
		}
		return e.runState(args, items[0], m)

	case OwnershipTemplate:
		if 3 != len(args) || 1 != len(items) {
			return nil, fault.ErrInvalidSolution
		}
		return e.runOwnership(args, items[0], m)

	default:
		return nil, fault.ErrUnknownPuzzle
	}
}

// the key signs the tree hash of the delegated conditions
func runStandard(publicKey *program.Program, delegated *program.Program) ([]condition.Condition, error) {
	pk, err := publicKey.AtomBytes()
	if nil != err {
		return nil, err
	}
	conditions, err := condition.Parse(delegated)
	if nil != err {
		return nil, err
	}
	h := delegated.TreeHash()
	return append([]condition.Condition{condition.AggSigMe{PublicKey: pk, Message: h[:]}}, conditions...), nil
}

func runLauncher(solution *program.Program, items []*program.Program) ([]condition.Condition, error) {
	ph, err := items[0].AsDigest()
	if nil != err {
		return nil, err
	}
	amount, err := items[1].AsUint64()
	if nil != err {
		return nil, err
	}
	h := solution.TreeHash()
	return []condition.Condition{
		condition.CreateCoin{PuzzleHash: ph, Amount: amount},
		condition.CreateCoinAnnouncement{Message: h[:]},
	}, nil
}

func (e *Evaluator) runSingleton(args []*program.Program, items []*program.Program, m *meter) ([]condition.Condition, error) {
	launcherId, err := args[0].AsDigest()
	if nil != err {
		return nil, err
	}
	inner := args[1]

	lp, err := coin.LineageProofFromProgram(items[0])
	if nil != err {
		return nil, err
	}
	amount, err := items[1].AsUint64()
	if nil != err {
		return nil, err
	}
	if 0 == amount%2 {
		return nil, fault.ErrInvalidSingletonAmount
	}

	// the parent is either the launcher or an earlier generation
	var parentId merkle.Digest
	if lp.IsEve() {
		if LauncherCoin(lp.ParentId, lp.Amount).Id() != launcherId {
			return nil, fault.ErrInvalidLineageProof
		}
		parentId = launcherId
	} else {
		parent := coin.Coin{
			ParentId:   lp.ParentId,
			PuzzleHash: SingletonPuzzleHash(launcherId, lp.InnerPuzzleHash.UnsafeFromSome()),
			Amount:     lp.Amount,
		}
		parentId = parent.Id()
	}

	innerConditions, err := e.run(inner, items[2], m)
	if nil != err {
		return nil, err
	}

	result := make([]condition.Condition, 0, len(innerConditions)+2)
	result = append(result, condition.AssertMyAmount{Amount: amount}, condition.AssertMyParentId{Id: parentId})
	odd := 0
	for _, c := range innerConditions {
		if cc, ok := c.(condition.CreateCoin); ok && 1 == cc.Amount%2 {
			odd += 1
			if odd > 1 {
				return nil, fault.ErrMultipleSingletonChildren
			}
			cc.PuzzleHash = SingletonPuzzleHash(launcherId, cc.PuzzleHash)
			c = cc
		}
		result = append(result, c)
	}
	return result, nil
}

func (e *Evaluator) runState(args []*program.Program, innerSolution *program.Program, m *meter) ([]condition.Condition, error) {
	metadata := args[0]
	updaterHash, err := args[1].AsDigest()
	if nil != err {
		return nil, err
	}

	conditions, err := e.run(args[2], innerSolution, m)
	if nil != err {
		return nil, err
	}
	metadata, err = e.updaters.Apply(metadata, updaterHash, conditions)
	if nil != err {
		return nil, err
	}

	metadataHash := metadata.TreeHash()
	return wrapOdd(conditions, func(inner merkle.Digest) merkle.Digest {
		return StatePuzzleHash(metadataHash, updaterHash, inner)
	}), nil
}

func (e *Evaluator) runOwnership(args []*program.Program, innerSolution *program.Program, m *meter) ([]condition.Condition, error) {
	launcherId, err := args[0].AsDigest()
	if nil != err {
		return nil, err
	}
	owner, err := args[1].AtomBytes()
	if nil != err {
		return nil, err
	}

	conditions, err := e.run(args[2], innerSolution, m)
	if nil != err {
		return nil, err
	}

	transfer, err := ownershipTransfer(conditions)
	if nil != err {
		return nil, err
	}
	if nil != transfer {
		owner = transfer.owner
		if 0 != len(owner) {
			conditions = append(conditions, OwnershipAnnouncement(transfer.didCoinId, launcherId).PuzzleAssertion())
		}
	}

	return wrapOdd(conditions, func(inner merkle.Digest) merkle.Digest {
		return OwnershipPuzzleHash(launcherId, owner, inner)
	}), nil
}

type transfer struct {
	owner     []byte
	didCoinId merkle.Digest
}

// at most one ownership transfer per spend, an empty owner clears the DID
func ownershipTransfer(conditions []condition.Condition) (*transfer, error) {
	remarks := condition.Remarks(conditions, condition.OpTransferOwnership)
	switch len(remarks) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fault.ErrInvalidOwnershipTransfer
	}

	data := remarks[0].Data
	if 0 == len(data) {
		return nil, fault.ErrInvalidOwnershipTransfer
	}
	owner, err := data[0].AtomBytes()
	if nil != err {
		return nil, fault.ErrInvalidOwnershipTransfer
	}
	t := &transfer{owner: owner}
	if 0 == len(owner) {
		return t, nil
	}
	if 2 != len(data) {
		return nil, fault.ErrInvalidOwnershipTransfer
	}
	if t.didCoinId, err = data[1].AsDigest(); nil != err {
		return nil, fault.ErrInvalidOwnershipTransfer
	}
	return t, nil
}

// replace the puzzle hash of odd outputs by the hash of the wrapped puzzle
func wrapOdd(conditions []condition.Condition, wrap func(merkle.Digest) merkle.Digest) []condition.Condition {
	result := make([]condition.Condition, len(conditions))
	for i, c := range conditions {
		if cc, ok := c.(condition.CreateCoin); ok && 1 == cc.Amount%2 {
			cc.PuzzleHash = wrap(cc.PuzzleHash)
			c = cc
		}
		result[i] = c
	}
	return result
}
