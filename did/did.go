// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package did

import (
	"bytes"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
	"github.com/bitmark-inc/coinset/puzzle"
)

// Record - current coin of a decentralised identity singleton
type Record struct {
	LauncherId   merkle.Digest
	Coin         coin.Coin
	LineageProof coin.LineageProof
	InnerPuzzle  *program.Program
}

// FullPuzzle - singleton around the inner puzzle
func (r Record) FullPuzzle() *program.Program {
	return puzzle.SingletonPuzzle(r.LauncherId, r.InnerPuzzle)
}

// Launch - launcher spend creating an identity from a coin with id
// originId, which must create the launcher coin of amount
//
// returns the launcher spend and the record of the eve coin
func Launch(originId merkle.Digest, inner *program.Program, amount uint64) (coin.CoinSpend, Record) {
	launcher := puzzle.LauncherCoin(originId, amount)
	launcherId := launcher.Id()
	full := puzzle.SingletonPuzzle(launcherId, inner)

	spend := coin.CoinSpend{
		Coin:         launcher,
		PuzzleReveal: puzzle.LauncherPuzzle(),
		Solution:     puzzle.LauncherSolution(full.TreeHash(), amount, nil),
	}
	r := Record{
		LauncherId:   launcherId,
		Coin:         coin.Coin{ParentId: launcherId, PuzzleHash: full.TreeHash(), Amount: amount},
		LineageProof: coin.LineageProof{ParentId: originId, Amount: amount},
		InnerPuzzle:  inner,
	}
	return spend, r
}

// Wallet - one identity held by this wallet
type Wallet struct {
	sync.RWMutex

	log    *logger.L
	record Record
}

// New - wallet for an identity record
func New(log *logger.L, r Record) *Wallet {
	return &Wallet{
		log:    log,
		record: r,
	}
}

// Id - the identity, the singleton's launcher id
func (w *Wallet) Id() merkle.Digest {
	return w.record.LauncherId
}

// Record - current record
func (w *Wallet) Record() Record {
	w.RLock()
	defer w.RUnlock()
	return w.record
}

// HasAuthority - true if owner is this identity
func (w *Wallet) HasAuthority(owner []byte) bool {
	return bytes.Equal(owner, w.record.LauncherId[:])
}

// CreateMessageSpend - unsigned spend of the current coin recreating
// the singleton and making the given announcements
func (w *Wallet) CreateMessageSpend(coinMessages [][]byte, puzzleMessages [][]byte) coin.CoinSpend {
	w.RLock()
	defer w.RUnlock()

	r := w.record
	conditions := make([]condition.Condition, 0, 1+len(coinMessages)+len(puzzleMessages))
	conditions = append(conditions, condition.CreateCoin{PuzzleHash: r.InnerPuzzle.TreeHash(), Amount: r.Coin.Amount})
	for _, m := range coinMessages {
		conditions = append(conditions, condition.CreateCoinAnnouncement{Message: m})
	}
	for _, m := range puzzleMessages {
		conditions = append(conditions, condition.CreatePuzzleAnnouncement{Message: m})
	}

	w.log.Debugf("identity: %s  coin: %s  announcements: %d", r.LauncherId, r.Coin.Id(), len(coinMessages)+len(puzzleMessages))
	return coin.CoinSpend{
		Coin:         r.Coin,
		PuzzleReveal: r.FullPuzzle(),
		Solution:     puzzle.SingletonSolution(r.LineageProof, r.Coin.Amount, puzzle.StandardSolution(conditions)),
	}
}

// Advance - move to the child of a confirmed spend of the current coin
func (w *Wallet) Advance(spend coin.CoinSpend) (Record, error) {
	w.Lock()
	defer w.Unlock()

	r := w.record
	if spend.Coin.Id() != r.Coin.Id() {
		return r, fault.ErrNotFound
	}
	r.LineageProof = coin.LineageProof{
		ParentId:        r.Coin.ParentId,
		InnerPuzzleHash: fn.Some(r.InnerPuzzle.TreeHash()),
		Amount:          r.Coin.Amount,
	}
	r.Coin = coin.Coin{
		ParentId:   spend.Coin.Id(),
		PuzzleHash: r.Coin.PuzzleHash,
		Amount:     r.Coin.Amount,
	}
	w.record = r

	w.log.Infof("identity: %s  coin: %s", r.LauncherId, r.Coin.Id())
	return r, nil
}

// ApprovalMessages - puzzle announcements approving ownership of
// the given launchers, and the coin id that makes them
func (w *Wallet) ApprovalMessages(launcherIds []merkle.Digest) ([][]byte, merkle.Digest) {
	w.RLock()
	defer w.RUnlock()

	messages := make([][]byte, 0, len(launcherIds))
	for _, id := range launcherIds {
		a := puzzle.OwnershipAnnouncement(w.record.Coin.Id(), id)
		messages = append(messages, a.Message)
	}
	return messages, w.record.Coin.Id()
}
