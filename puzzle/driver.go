// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle

import (
	"bytes"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
)

// UncurriedNFT - the layers of an NFT full puzzle
type UncurriedNFT struct {
	LauncherId          merkle.Digest
	Metadata            *program.Program
	MetadataUpdaterHash merkle.Digest
	StateLayer          *program.Program // the singleton's inner puzzle
	InnerPuzzle         *program.Program // the state layer's inner puzzle
	SupportsDid         bool
	OwnerDid            []byte
	P2Puzzle            *program.Program
}

// Transition - what a spend of an NFT changes
type Transition struct {
	Metadata        *program.Program
	MetadataChanged bool
	P2PuzzleHash    merkle.Digest
	OwnerDid        []byte
	OwnerChanged    bool
}

// Driver - recognises and rebuilds asset puzzles
type Driver interface {
	UncurryNFT(puzzle *program.Program) (*UncurriedNFT, error)
	UncurryStandard(puzzle *program.Program) ([]byte, bool)
	NextState(interpreter condition.Interpreter, nft *UncurriedNFT, solution *program.Program) (*Transition, error)
}

// LayerDriver - Driver for the layers in this package
type LayerDriver struct {
	updaters Updaters
}

// NewDriver - driver knowing the given metadata updaters
func NewDriver(updaters Updaters) *LayerDriver {
	if nil == updaters {
		updaters = DefaultUpdaters()
	}
	return &LayerDriver{updaters: updaters}
}

// UncurryNFT - split a full puzzle into its layers
func (d *LayerDriver) UncurryNFT(p *program.Program) (*UncurriedNFT, error) {
	template, args, ok := Uncurry(p)
	if !ok || SingletonTemplate != template || 2 != len(args) {
		return nil, fault.ErrNotNFT
	}
	launcherId, err := args[0].AsDigest()
	if nil != err {
		return nil, fault.ErrNotNFT
	}

	stateLayer := args[1]
	template, stateArgs, ok := Uncurry(stateLayer)
	if !ok || StateTemplate != template || 3 != len(stateArgs) {
		return nil, fault.ErrNotNFT
	}
	updaterHash, err := stateArgs[1].AsDigest()
	if nil != err {
		return nil, fault.ErrNotNFT
	}

	nft := &UncurriedNFT{
		LauncherId:          launcherId,
		Metadata:            stateArgs[0],
		MetadataUpdaterHash: updaterHash,
		StateLayer:          stateLayer,
		InnerPuzzle:         stateArgs[2],
		P2Puzzle:            stateArgs[2],
	}

	template, ownerArgs, ok := Uncurry(nft.InnerPuzzle)
	if ok && OwnershipTemplate == template && 3 == len(ownerArgs) {
		owner, err := ownerArgs[1].AtomBytes()
		if nil != err {
			return nil, fault.ErrNotNFT
		}
		nft.SupportsDid = true
		nft.OwnerDid = owner
		nft.P2Puzzle = ownerArgs[2]
	}
	return nft, nil
}

// UncurryStandard - the synthetic public key of a standard puzzle
func (d *LayerDriver) UncurryStandard(p *program.Program) ([]byte, bool) {
	template, args, ok := Uncurry(p)
	if !ok || StandardTemplate != template || 1 != len(args) {
		return nil, false
	}
	pk, err := args[0].AtomBytes()
	if nil != err {
		return nil, false
	}
	return pk, true
}

// NextState - evaluate the p2 puzzle of a spend to find the next
// generation's p2 puzzle hash, metadata and owner
func (d *LayerDriver) NextState(interpreter condition.Interpreter, nft *UncurriedNFT, solution *program.Program) (*Transition, error) {
	p2Solution, err := nft.P2Solution(solution)
	if nil != err {
		return nil, err
	}
	conditions, _, err := interpreter.Evaluate(nft.P2Puzzle, p2Solution, 0)
	if nil != err {
		return nil, err
	}

	t := &Transition{
		OwnerDid: nft.OwnerDid,
	}

	t.Metadata, err = d.updaters.Apply(nft.Metadata, nft.MetadataUpdaterHash, conditions)
	if nil != err {
		return nil, err
	}
	t.MetadataChanged = t.Metadata.TreeHash() != nft.Metadata.TreeHash()

	if nft.SupportsDid {
		transfer, err := ownershipTransfer(conditions)
		if nil != err {
			return nil, err
		}
		if nil != transfer {
			t.OwnerDid = transfer.owner
			t.OwnerChanged = !bytes.Equal(transfer.owner, nft.OwnerDid)
		}
	}

	found := false
	for _, c := range conditions {
		if cc, ok := c.(condition.CreateCoin); ok && 1 == cc.Amount%2 {
			if found {
				return nil, fault.ErrMultipleSingletonChildren
			}
			found = true
			t.P2PuzzleHash = cc.PuzzleHash
		}
	}
	if !found {
		return nil, fault.ErrInconsistentSpend
	}
	return t, nil
}

// FullPuzzle - rebuild the full puzzle
func (nft *UncurriedNFT) FullPuzzle() *program.Program {
	return SingletonPuzzle(nft.LauncherId, nft.StateLayer)
}

// ChildPuzzle - full puzzle of a later generation with the same
// launcher and updater
func (nft *UncurriedNFT) ChildPuzzle(metadata *program.Program, owner []byte, p2 *program.Program) *program.Program {
	inner := p2
	if nft.SupportsDid {
		inner = OwnershipPuzzle(nft.LauncherId, owner, p2)
	}
	return FullPuzzle(nft.LauncherId, metadata, nft.MetadataUpdaterHash, inner)
}

// Solution - full solution around a p2 solution
func (nft *UncurriedNFT) Solution(lineageProof coin.LineageProof, amount uint64, p2Solution *program.Program) *program.Program {
	inner := p2Solution
	if nft.SupportsDid {
		inner = OwnershipSolution(inner)
	}
	return SingletonSolution(lineageProof, amount, StateSolution(inner))
}

// P2Solution - the p2 solution inside a full solution
func (nft *UncurriedNFT) P2Solution(solution *program.Program) (*program.Program, error) {
	items, err := solution.Items()
	if nil != err || 3 != len(items) {
		return nil, fault.ErrInvalidSolution
	}
	inner, err := firstOf(items[2])
	if nil != err {
		return nil, err
	}
	if nft.SupportsDid {
		return firstOf(inner)
	}
	return inner, nil
}

func firstOf(p *program.Program) (*program.Program, error) {
	items, err := p.Items()
	if nil != err || 1 != len(items) {
		return nil, fault.ErrInvalidSolution
	}
	return items[0], nil
}
