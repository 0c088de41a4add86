// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle

import (
	"github.com/bitmark-inc/coinset/announcement"
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
)

// template identities
var (
	StandardTemplate  = templateHash("p2_delegated_conditions")
	LauncherTemplate  = templateHash("singleton_launcher")
	SingletonTemplate = templateHash("singleton_top_layer")
	StateTemplate     = templateHash("nft_state_layer")
	OwnershipTemplate = templateHash("nft_ownership_layer")
	UpdaterTemplate   = templateHash("nft_metadata_updater_default")
	HiddenTemplate    = templateHash("unspendable_hidden_puzzle")
)

// fixed puzzles and their hashes
var (
	LauncherPuzzleHash      = LauncherPuzzle().TreeHash()
	DefaultUpdaterHash      = DefaultUpdaterPuzzle().TreeHash()
	DefaultHiddenPuzzleHash = Curry(HiddenTemplate).TreeHash()
)

func templateHash(name string) merkle.Digest {
	return merkle.NewDigest([]byte("coinset puzzle template: " + name))
}

// Curry - bind arguments to a template
func Curry(template merkle.Digest, args ...*program.Program) *program.Program {
	items := make([]*program.Program, 0, len(args)+1)
	items = append(items, program.Digest(template))
	return program.List(append(items, args...)...)
}

// CurriedHash - tree hash of a curried puzzle from its argument hashes
func CurriedHash(template merkle.Digest, argHashes ...merkle.Digest) merkle.Digest {
	hashes := make([]merkle.Digest, 0, len(argHashes)+1)
	hashes = append(hashes, program.HashAtom(template[:]))
	return program.ListHash(append(hashes, argHashes...)...)
}

// Uncurry - split a curried puzzle into its template and arguments
func Uncurry(p *program.Program) (merkle.Digest, []*program.Program, bool) {
	items, err := p.Items()
	if nil != err || 0 == len(items) {
		return merkle.Digest{}, nil, false
	}
	template, err := items[0].AsDigest()
	if nil != err {
		return merkle.Digest{}, nil, false
	}
	return template, items[1:], true
}

// StandardPuzzle - p2 puzzle spendable with the key behind a synthetic public key
func StandardPuzzle(syntheticPublicKey []byte) *program.Program {
	return Curry(StandardTemplate, program.Atom(syntheticPublicKey))
}

// StandardSolution - delegate the coin's output to a list of conditions
func StandardSolution(conditions []condition.Condition) *program.Program {
	return program.List(condition.List(conditions))
}

// LauncherPuzzle - creates the first generation of a singleton
func LauncherPuzzle() *program.Program {
	return Curry(LauncherTemplate)
}

// LauncherSolution - eve full puzzle hash, amount and extra key values
func LauncherSolution(eveFullPuzzleHash merkle.Digest, amount uint64, keyValues *program.Program) *program.Program {
	if nil == keyValues {
		keyValues = program.Nil()
	}
	return program.List(program.Digest(eveFullPuzzleHash), program.Uint(amount), keyValues)
}

// LauncherAnnouncement - the coin announcement a launcher spend makes
func LauncherAnnouncement(launcherId merkle.Digest, solution *program.Program) announcement.Announcement {
	h := solution.TreeHash()
	return announcement.Announcement{Origin: launcherId, Message: h[:]}
}

// LauncherCoin - the launcher created by a parent coin
func LauncherCoin(parentId merkle.Digest, amount uint64) coin.Coin {
	return coin.Coin{ParentId: parentId, PuzzleHash: LauncherPuzzleHash, Amount: amount}
}

// SingletonPuzzle - the outer singleton layer
func SingletonPuzzle(launcherId merkle.Digest, inner *program.Program) *program.Program {
	return Curry(SingletonTemplate, program.Digest(launcherId), inner)
}

// SingletonPuzzleHash - hash of a singleton layer from its inner puzzle hash
func SingletonPuzzleHash(launcherId merkle.Digest, innerPuzzleHash merkle.Digest) merkle.Digest {
	return CurriedHash(SingletonTemplate, program.HashAtom(launcherId[:]), innerPuzzleHash)
}

// SingletonSolution - lineage proof, coin amount and inner solution
func SingletonSolution(lineageProof coin.LineageProof, amount uint64, innerSolution *program.Program) *program.Program {
	return program.List(lineageProof.Program(), program.Uint(amount), innerSolution)
}

// StatePuzzle - the NFT state layer holding metadata
func StatePuzzle(metadata *program.Program, updaterHash merkle.Digest, inner *program.Program) *program.Program {
	return Curry(StateTemplate, metadata, program.Digest(updaterHash), inner)
}

// StatePuzzleHash - hash of a state layer from its parts
func StatePuzzleHash(metadataHash merkle.Digest, updaterHash merkle.Digest, innerPuzzleHash merkle.Digest) merkle.Digest {
	return CurriedHash(StateTemplate, metadataHash, program.HashAtom(updaterHash[:]), innerPuzzleHash)
}

// StateSolution - wrap the inner solution
func StateSolution(innerSolution *program.Program) *program.Program {
	return program.List(innerSolution)
}

// OwnershipPuzzle - the layer recording the owning DID, empty for none
func OwnershipPuzzle(launcherId merkle.Digest, owner []byte, inner *program.Program) *program.Program {
	return Curry(OwnershipTemplate, program.Digest(launcherId), program.Atom(owner), inner)
}

// OwnershipPuzzleHash - hash of an ownership layer from its parts
func OwnershipPuzzleHash(launcherId merkle.Digest, owner []byte, innerPuzzleHash merkle.Digest) merkle.Digest {
	return CurriedHash(OwnershipTemplate, program.HashAtom(launcherId[:]), program.HashAtom(owner), innerPuzzleHash)
}

// OwnershipSolution - wrap the inner solution
func OwnershipSolution(innerSolution *program.Program) *program.Program {
	return program.List(innerSolution)
}

// OwnershipAnnouncement - the puzzle announcement a DID coin makes to
// approve taking ownership of an NFT
func OwnershipAnnouncement(didCoinId merkle.Digest, launcherId merkle.Digest) announcement.Announcement {
	return announcement.Announcement{Origin: didCoinId, Message: launcherId[:]}
}

// TransferOwnership - remark moving an NFT to a DID approved by the DID coin
func TransferOwnership(newOwner []byte, didCoinId merkle.Digest) condition.Remark {
	return condition.Remark{
		Code: condition.OpTransferOwnership,
		Data: []*program.Program{program.Atom(newOwner), program.Digest(didCoinId)},
	}
}

// FullPuzzle - singleton(state(inner))
func FullPuzzle(launcherId merkle.Digest, metadata *program.Program, updaterHash merkle.Digest, inner *program.Program) *program.Program {
	return SingletonPuzzle(launcherId, StatePuzzle(metadata, updaterHash, inner))
}
