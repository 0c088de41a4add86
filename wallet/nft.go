// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"context"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/builder"
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/spendbundle"
	"github.com/bitmark-inc/coinset/tracker"
)

// NFTWallet - mints, transfers and updates the NFTs of a manager
type NFTWallet struct {
	log     *logger.L
	manager *Manager
	tracker *tracker.Tracker
	builder *builder.Builder
}

// MintParameters - what a new NFT looks like
type MintParameters struct {
	Metadata *program.Program
	Target   fn.Option[merkle.Digest] // first owner's p2 puzzle hash, default a new local key
	DID      fn.Option[merkle.Digest] // owning identity, must be registered
	Fee      uint64
}

// Tracker - the tracked NFT records
func (w *NFTWallet) Tracker() *tracker.Tracker {
	return w.tracker
}

// Records - every tracked NFT
func (w *NFTWallet) Records() []tracker.Record {
	return w.tracker.Records()
}

// ByLauncher - an NFT by its launcher id
func (w *NFTWallet) ByLauncher(launcherId merkle.Digest) fn.Option[tracker.Record] {
	return w.tracker.ByLauncher(launcherId)
}

// ByCoinId - an NFT by the id of its current coin
func (w *NFTWallet) ByCoinId(coinId merkle.Digest) fn.Option[tracker.Record] {
	return w.tracker.ByCoinId(coinId)
}

// GenerateNewNFT - mint and submit a new NFT, returning its launcher id
//
// one bundle spends standard coins to create the launcher, spends the
// launcher to create the eve coin and spends the eve coin to its first
// owner; the funding spend asserts the launcher's announcement
func (w *NFTWallet) GenerateNewNFT(ctx context.Context, mp MintParameters) (merkle.Digest, TransactionRecord, error) {
	m := w.manager
	log := w.log

	if nil == mp.Metadata {
		return merkle.Digest{}, TransactionRecord{}, fault.ErrMissingParameters
	}

	m.Lock()
	defer m.Unlock()

	d, err := m.p.Keys.NewDerivation()
	if nil != err {
		return merkle.Digest{}, TransactionRecord{}, err
	}
	target := mp.Target.UnwrapOr(d.PuzzleHash)

	coins, err := m.balance.SelectCoins(ctx, 1+mp.Fee)
	if nil != err {
		return merkle.Digest{}, TransactionRecord{}, err
	}
	fail := func(err error) (merkle.Digest, TransactionRecord, error) {
		m.balance.Release(coins)
		return merkle.Digest{}, TransactionRecord{}, err
	}

	origin := coins[0]
	launcher := puzzle.LauncherCoin(origin.Id(), 1)
	launcherId := launcher.Id()

	p2 := puzzle.StandardPuzzle(d.SyntheticPublicKey)
	evePuzzle := puzzle.FullPuzzle(launcherId, mp.Metadata, puzzle.DefaultUpdaterHash, puzzle.OwnershipPuzzle(launcherId, nil, p2))
	eve := coin.Coin{ParentId: launcherId, PuzzleHash: evePuzzle.TreeHash(), Amount: 1}
	launcherSolution := puzzle.LauncherSolution(eve.PuzzleHash, 1, nil)

	funding, err := m.balance.Spends(
		coins,
		[]condition.Condition{condition.CreateCoin{PuzzleHash: puzzle.LauncherPuzzleHash, Amount: 1}},
		mp.Fee,
		[]condition.Condition{puzzle.LauncherAnnouncement(launcherId, launcherSolution).CoinAssertion()},
	)
	if nil != err {
		return fail(err)
	}

	eveConditions := []condition.Condition{
		condition.CreateCoin{PuzzleHash: target, Amount: 1, Memos: [][]byte{target[:]}},
	}
	parts := make([]*spendbundle.SpendBundle, 1, 2)
	if mp.DID.IsSome() {
		didId := mp.DID.UnsafeFromSome()
		approval, didCoinId, err := w.GetDIDApprovalInfo([]merkle.Digest{launcherId}, didId)
		if nil != err {
			return fail(err)
		}
		eveConditions = append(eveConditions, puzzle.TransferOwnership(didId[:], didCoinId))
		parts = append(parts, approval)
	}

	layers, err := m.driver.UncurryNFT(evePuzzle)
	if nil != err {
		return fail(err)
	}
	spends := append(funding,
		coin.CoinSpend{
			Coin:         launcher,
			PuzzleReveal: puzzle.LauncherPuzzle(),
			Solution:     launcherSolution,
		},
		coin.CoinSpend{
			Coin:         eve,
			PuzzleReveal: evePuzzle,
			Solution:     layers.Solution(coin.LineageProof{ParentId: origin.Id(), Amount: 1}, 1, puzzle.StandardSolution(eveConditions)),
		},
	)

	signed, err := m.signer.Sign(spendbundle.New(spends...), nil)
	if nil != err {
		return fail(err)
	}
	parts[0] = signed
	bundle, err := spendbundle.Aggregate(parts...)
	if nil != err {
		return fail(err)
	}

	log.Infof("mint launcher: %s  target: %s", launcherId, target)
	record := newTransaction(MintTag, mp.Fee, []merkle.Digest{launcherId}, bundle)
	if err := m.PushTransaction(ctx, record); nil != err {
		return merkle.Digest{}, record, err
	}
	return launcherId, record, nil
}

// TransferNFT - send an NFT to another p2 puzzle hash, clearing any owner
func (w *NFTWallet) TransferNFT(ctx context.Context, launcherId merkle.Digest, target merkle.Digest, fee uint64) (TransactionRecord, error) {
	m := w.manager
	m.Lock()
	defer m.Unlock()

	layers, err := w.layers(launcherId)
	if nil != err {
		return TransactionRecord{}, err
	}
	conditions := []condition.Condition{
		condition.CreateCoin{PuzzleHash: target, Amount: 1, Memos: [][]byte{target[:]}},
	}
	if layers.SupportsDid && 0 != len(layers.OwnerDid) {
		conditions = append(conditions, puzzle.TransferOwnership(nil, merkle.Digest{}))
	}
	return w.submit(ctx, TransferTag, []merkle.Digest{launcherId}, conditions, fee)
}

// UpdateMetadata - add a URI under one of the metadata URI keys
func (w *NFTWallet) UpdateMetadata(ctx context.Context, launcherId merkle.Digest, key string, uri string, fee uint64) (TransactionRecord, error) {
	m := w.manager
	m.Lock()
	defer m.Unlock()

	layers, err := w.layers(launcherId)
	if nil != err {
		return TransactionRecord{}, err
	}
	p2Hash := layers.P2Puzzle.TreeHash()
	conditions := []condition.Condition{
		condition.CreateCoin{PuzzleHash: p2Hash, Amount: 1, Memos: [][]byte{p2Hash[:]}},
		puzzle.UpdateMetadata(key, uri),
	}
	return w.submit(ctx, MetadataUpdateTag, []merkle.Digest{launcherId}, conditions, fee)
}

// SetDID - make an identity the owner of an NFT, None clears the owner
func (w *NFTWallet) SetDID(ctx context.Context, launcherId merkle.Digest, didId fn.Option[merkle.Digest], fee uint64) (TransactionRecord, error) {
	m := w.manager
	m.Lock()
	defer m.Unlock()

	layers, err := w.layers(launcherId)
	if nil != err {
		return TransactionRecord{}, err
	}
	if !layers.SupportsDid {
		return TransactionRecord{}, fault.ErrInvalidOwnershipTransfer
	}

	p2Hash := layers.P2Puzzle.TreeHash()
	conditions := []condition.Condition{
		condition.CreateCoin{PuzzleHash: p2Hash, Amount: 1, Memos: [][]byte{p2Hash[:]}},
	}
	extra := []*spendbundle.SpendBundle{}
	if didId.IsSome() {
		id := didId.UnsafeFromSome()
		approval, didCoinId, err := w.GetDIDApprovalInfo([]merkle.Digest{launcherId}, id)
		if nil != err {
			return TransactionRecord{}, err
		}
		conditions = append(conditions, puzzle.TransferOwnership(id[:], didCoinId))
		extra = append(extra, approval)
	} else {
		conditions = append(conditions, puzzle.TransferOwnership(nil, merkle.Digest{}))
	}
	return w.submit(ctx, OwnerUpdateTag, []merkle.Digest{launcherId}, conditions, fee, extra...)
}

// GenerateSignedTransaction - signed bundle spending NFTs with
// conditions on the first, paying fee
//
// the NFTs are marked pending, the bundle is not submitted
func (w *NFTWallet) GenerateSignedTransaction(ctx context.Context, launcherIds []merkle.Digest, conditions []condition.Condition, fee uint64) (TransactionRecord, error) {
	m := w.manager
	m.Lock()
	defer m.Unlock()

	bundle, err := w.generate(ctx, launcherIds, conditions, fee, nil)
	if nil != err {
		return TransactionRecord{}, err
	}
	return newTransaction(FeeOnlyTag, fee, launcherIds, bundle), nil
}

// GetDIDApprovalInfo - signed spend of an identity approving ownership
// of the launchers, and the id of the identity coin it spends
func (w *NFTWallet) GetDIDApprovalInfo(launcherIds []merkle.Digest, didId merkle.Digest) (*spendbundle.SpendBundle, merkle.Digest, error) {
	m := w.manager

	identity := m.DID(didId)
	if identity.IsNone() {
		return nil, merkle.Digest{}, fault.ErrNoAuthority
	}
	messages, didCoinId := identity.UnsafeFromSome().ApprovalMessages(launcherIds)
	spend := identity.UnsafeFromSome().CreateMessageSpend(nil, messages)

	signed, err := m.signer.Sign(spendbundle.New(spend), nil)
	if nil != err {
		return nil, merkle.Digest{}, err
	}
	return signed, didCoinId, nil
}

func (w *NFTWallet) layers(launcherId merkle.Digest) (*puzzle.UncurriedNFT, error) {
	r, err := w.tracker.ByLauncher(launcherId).UnwrapOrErr(fault.ErrNotFound)
	if nil != err {
		return nil, err
	}
	return w.manager.driver.UncurryNFT(r.FullPuzzle)
}

// generate then push, must hold the build lock
func (w *NFTWallet) submit(ctx context.Context, tag TagType, launcherIds []merkle.Digest, conditions []condition.Condition, fee uint64, extra ...*spendbundle.SpendBundle) (TransactionRecord, error) {
	bundle, err := w.generate(ctx, launcherIds, conditions, fee, extra)
	if nil != err {
		return TransactionRecord{}, err
	}
	record := newTransaction(tag, fee, launcherIds, bundle)
	return record, w.manager.PushTransaction(ctx, record)
}

// build, sign and aggregate, must hold the build lock
func (w *NFTWallet) generate(ctx context.Context, launcherIds []merkle.Digest, conditions []condition.Condition, fee uint64, extra []*spendbundle.SpendBundle) (*spendbundle.SpendBundle, error) {
	m := w.manager

	records := make([]tracker.Record, 0, len(launcherIds))
	coinIds := make([]merkle.Digest, 0, len(launcherIds))
	for _, id := range launcherIds {
		r, err := w.tracker.ByLauncher(id).UnwrapOrErr(fault.ErrNotFound)
		if nil != err {
			return nil, err
		}
		records = append(records, r)
		coinIds = append(coinIds, r.Coin.Id())
	}

	unsigned, feeBundle, err := w.builder.Build(ctx, records, conditions, fee)
	if nil != err {
		return nil, err
	}
	release := func() {
		feeBundle.WhenSome(func(b *spendbundle.SpendBundle) {
			m.balance.Release(b.Removals())
		})
	}

	signed, err := m.signer.Sign(unsigned, nil)
	if nil != err {
		release()
		return nil, err
	}

	parts := make([]*spendbundle.SpendBundle, 0, 2+len(extra))
	parts = append(parts, signed)
	feeBundle.WhenSome(func(b *spendbundle.SpendBundle) {
		parts = append(parts, b)
	})
	parts = append(parts, extra...)

	bundle, err := spendbundle.Aggregate(parts...)
	if nil != err {
		release()
		return nil, err
	}
	if err := w.tracker.MarkPending(coinIds); nil != err {
		release()
		return nil, err
	}
	return bundle, nil
}
