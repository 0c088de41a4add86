// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"bytes"
	"context"
	"math"
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/coinset/announcement"
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/spendbundle"
	"github.com/bitmark-inc/coinset/util"
)

// Coins - unspent coins locked by some puzzle hashes
type Coins interface {
	UnspentByPuzzleHash(puzzleHashes ...merkle.Digest) []coin.CoinState
}

// Keys - the wallet's standard derivations
type Keys interface {
	DerivationForPuzzleHash(puzzleHash merkle.Digest) (keystore.DerivationRecord, bool)
	PuzzleHashes() []merkle.Digest
}

// Signer - signs a bundle finding the key holders itself
type Signer interface {
	Sign(bundle *spendbundle.SpendBundle, puzzleHashes []merkle.Digest) (*spendbundle.SpendBundle, error)
}

// Wallet - the standard coins of one key store
//
// selected coins stay reserved until released or seen spent so two
// transactions never select the same coin
type Wallet struct {
	sync.Mutex

	log      *logger.L
	coins    Coins
	keys     Keys
	signer   Signer
	reserved map[merkle.Digest]struct{}
}

// New - wallet over the unspent coins of keys
func New(log *logger.L, coins Coins, keys Keys, signer Signer) *Wallet {
	return &Wallet{
		log:      log,
		coins:    coins,
		keys:     keys,
		signer:   signer,
		reserved: make(map[merkle.Digest]struct{}),
	}
}

// Balance - total of the unreserved unspent coins
func (w *Wallet) Balance() uint64 {
	w.Lock()
	defer w.Unlock()

	total := uint64(0)
	for _, c := range w.available() {
		total += c.Amount
	}
	return total
}

// SelectCoins - reserve unspent coins covering at least amount
//
// largest coins are taken first
func (w *Wallet) SelectCoins(ctx context.Context, amount uint64) ([]coin.Coin, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	if 0 == amount {
		return nil, fault.ErrInvalidAmount
	}

	w.Lock()
	defer w.Unlock()

	available := w.available()
	sort.Slice(available, func(i, j int) bool {
		if available[i].Amount != available[j].Amount {
			return available[i].Amount > available[j].Amount
		}
		a := available[i].Id()
		b := available[j].Id()
		return bytes.Compare(a[:], b[:]) < 0
	})

	selected := make([]coin.Coin, 0, 4)
	total := uint64(0)
	for _, c := range available {
		if total >= amount {
			break
		}
		selected = append(selected, c)
		sum, ok := util.AddAmount(total, c.Amount)
		if !ok {
			sum = math.MaxUint64
		}
		total = sum
	}
	if total < amount {
		w.log.Warnf("select: %d  available: %d", amount, total)
		return nil, fault.ErrInsufficientFunds
	}

	for _, c := range selected {
		w.reserved[c.Id()] = struct{}{}
	}
	w.log.Debugf("select: %d  coins: %d  total: %d", amount, len(selected), total)
	return selected, nil
}

// Release - return coins to the pool after a failed transaction
func (w *Wallet) Release(coins []coin.Coin) {
	w.Lock()
	defer w.Unlock()

	for _, c := range coins {
		delete(w.reserved, c.Id())
	}
}

// unspent and unreserved coins, must hold the lock
//
// reservations of coins no longer unspent are dropped
func (w *Wallet) available() []coin.Coin {
	states := w.coins.UnspentByPuzzleHash(w.keys.PuzzleHashes()...)

	unspent := make(map[merkle.Digest]struct{}, len(states))
	available := make([]coin.Coin, 0, len(states))
	for _, s := range states {
		id := s.Coin.Id()
		unspent[id] = struct{}{}
		if _, ok := w.reserved[id]; !ok {
			available = append(available, s.Coin)
		}
	}
	for id := range w.reserved {
		if _, ok := unspent[id]; !ok {
			delete(w.reserved, id)
		}
	}
	return available
}

// Spends - unsigned spends of coins making payments and paying fee
//
// the change goes back to the first coin's puzzle hash, extra
// conditions are added to the first spend and every other spend
// asserts an announcement of the first so the spends cannot be split
func (w *Wallet) Spends(coins []coin.Coin, payments []condition.Condition, fee uint64, extra []condition.Condition) ([]coin.CoinSpend, error) {
	if 0 == len(coins) {
		return nil, fault.ErrNoCoinsSelected
	}

	total := uint64(0)
	for _, c := range coins {
		sum, ok := util.AddAmount(total, c.Amount)
		if !ok {
			return nil, fault.ErrInvalidAmount
		}
		total = sum
	}
	spent, err := paymentTotal(payments, fee)
	if nil != err {
		return nil, err
	}
	if spent > total {
		return nil, fault.ErrInsufficientFunds
	}

	first := coins[0]
	firstConditions := make([]condition.Condition, 0, len(payments)+len(extra)+3)
	firstConditions = append(firstConditions, payments...)
	if change := total - spent; 0 != change {
		firstConditions = append(firstConditions, condition.CreateCoin{PuzzleHash: first.PuzzleHash, Amount: change})
	}
	if 0 != fee {
		firstConditions = append(firstConditions, condition.ReserveFee{Amount: fee})
	}
	firstConditions = append(firstConditions, extra...)

	var link announcement.Announcement
	if len(coins) > 1 {
		message := linkMessage(coins)
		link = announcement.Announcement{Origin: first.Id(), Message: message}
		firstConditions = append(firstConditions, condition.CreateCoinAnnouncement{Message: message})
	}

	spends := make([]coin.CoinSpend, 0, len(coins))
	for i, c := range coins {
		d, ok := w.keys.DerivationForPuzzleHash(c.PuzzleHash)
		if !ok {
			return nil, fault.ErrUnsignableSpend
		}
		conditions := []condition.Condition{link.CoinAssertion()}
		if 0 == i {
			conditions = firstConditions
		}
		spends = append(spends, coin.CoinSpend{
			Coin:         c,
			PuzzleReveal: puzzle.StandardPuzzle(d.SyntheticPublicKey),
			Solution:     puzzle.StandardSolution(conditions),
		})
	}
	return spends, nil
}

// GenerateSignedTransaction - select coins and sign a transaction
// making payments and paying fee
func (w *Wallet) GenerateSignedTransaction(ctx context.Context, payments []condition.Condition, fee uint64, extra []condition.Condition) (*spendbundle.SpendBundle, error) {
	amount, err := paymentTotal(payments, fee)
	if nil != err {
		return nil, err
	}

	coins, err := w.SelectCoins(ctx, amount)
	if nil != err {
		return nil, err
	}

	spends, err := w.Spends(coins, payments, fee, extra)
	if nil != err {
		w.Release(coins)
		return nil, err
	}
	signed, err := w.signer.Sign(spendbundle.New(spends...), nil)
	if nil != err {
		w.Release(coins)
		return nil, err
	}

	w.log.Infof("transaction: %s  coins: %d  fee: %d", signed.Id(), len(coins), fee)
	return signed, nil
}

// FeeBundle - a signed bundle paying fee whose first spend announces message
func (w *Wallet) FeeBundle(ctx context.Context, fee uint64, message []byte) (*spendbundle.SpendBundle, error) {
	extra := []condition.Condition{condition.CreateCoinAnnouncement{Message: message}}
	return w.GenerateSignedTransaction(ctx, nil, fee, extra)
}

func linkMessage(coins []coin.Coin) []byte {
	parts := make([][]byte, 0, len(coins))
	for _, c := range coins {
		id := c.Id()
		parts = append(parts, id[:])
	}
	d := merkle.NewDigestFromParts(parts...)
	return d[:]
}

// fee plus every created coin
func paymentTotal(payments []condition.Condition, fee uint64) (uint64, error) {
	total := fee
	for _, p := range payments {
		cc, ok := p.(condition.CreateCoin)
		if !ok {
			continue
		}
		if total, ok = util.AddAmount(total, cc.Amount); !ok {
			return 0, fault.ErrInvalidAmount
		}
	}
	return total, nil
}
