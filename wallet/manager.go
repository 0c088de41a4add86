// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/balance"
	"github.com/bitmark-inc/coinset/builder"
	"github.com/bitmark-inc/coinset/chain"
	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/coinstate"
	"github.com/bitmark-inc/coinset/did"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/messagebus"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/registry"
	"github.com/bitmark-inc/coinset/signer"
	"github.com/bitmark-inc/coinset/spendbundle"
	"github.com/bitmark-inc/coinset/storage"
	"github.com/bitmark-inc/coinset/tracker"
)

// Parameters - collaborators of a manager
//
// Assets, Transactions and Bus may be nil
type Parameters struct {
	Chain        chain.Parameters
	Keys         *keystore.Store
	Source       coinstate.Source
	Coins        balance.Coins
	Submitter    Submitter
	Assets       storage.Handle
	Transactions storage.Handle
	Bus          *messagebus.BroadcastQueue
}

// Manager - the wallets of one key store
//
// the embedded mutex is the build lock, held from coin selection until
// a bundle has been emitted so concurrent builds never select the same
// coins
type Manager struct {
	sync.Mutex

	log          *logger.L
	p            Parameters
	interpreter  *puzzle.Evaluator
	driver       *puzzle.LayerDriver
	signer       *signer.Signer
	balance      *balance.Wallet
	registry     *registry.Registry
	transactions storage.Handle
}

// NewManager - manager with its standard wallet registered
func NewManager(log *logger.L, parameters Parameters) (*Manager, error) {
	if nil == parameters.Keys || nil == parameters.Source || nil == parameters.Coins || nil == parameters.Submitter {
		return nil, fault.ErrMissingParameters
	}

	interpreter := puzzle.NewEvaluator(nil)
	driver := puzzle.NewDriver(nil)
	s := signer.New(log, parameters.Keys, interpreter, driver, parameters.Chain.AdditionalData, parameters.Chain.MaximumCost)

	m := &Manager{
		log:          log,
		p:            parameters,
		interpreter:  interpreter,
		driver:       driver,
		signer:       s,
		balance:      balance.New(log, parameters.Coins, parameters.Keys, s),
		registry:     registry.New(),
		transactions: parameters.Transactions,
	}
	if err := m.registry.Register(registry.Standard, merkle.Digest{}, m.balance); nil != err {
		return nil, err
	}
	return m, nil
}

// Balance - the standard coin wallet
func (m *Manager) Balance() *balance.Wallet {
	return m.balance
}

// Registry - all registered wallets
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// NewNFTWallet - create and register the NFT wallet, only one may exist
func (m *Manager) NewNFTWallet() (*NFTWallet, error) {
	var persister tracker.Persister
	if nil != m.p.Assets {
		persister = tracker.NewPoolPersister(m.p.Assets)
	}

	t, err := tracker.New(m.log, tracker.Parameters{
		Source:      m.p.Source,
		Interpreter: m.interpreter,
		Driver:      m.driver,
		Keys:        m.p.Keys,
		Authorities: m.registry,
		Persister:   persister,
		Bus:         m.p.Bus,
	})
	if nil != err {
		return nil, err
	}

	w := &NFTWallet{
		log:     m.log,
		manager: m,
		tracker: t,
		builder: builder.New(m.log, m.driver, m.balance),
	}
	if err := m.registry.Register(registry.NFT, merkle.Digest{}, w); nil != err {
		return nil, err
	}
	return w, nil
}

// AddDID - register an identity held by this wallet
func (m *Manager) AddDID(r did.Record) (*did.Wallet, error) {
	w := did.New(m.log, r)
	if err := m.registry.Register(registry.DID, r.LauncherId, w); nil != err {
		return nil, err
	}
	m.log.Infof("identity: %s  registered", r.LauncherId)
	return w, nil
}

// DID - a registered identity
func (m *Manager) DID(id merkle.Digest) fn.Option[*did.Wallet] {
	return registry.Lookup[*did.Wallet](m.registry, registry.DID, id)
}

func (m *Manager) nftWallet() fn.Option[*NFTWallet] {
	return registry.Lookup[*NFTWallet](m.registry, registry.NFT, merkle.Digest{})
}

// CoinStatesUpdated - process coin state notifications
//
// a new odd coin may be an NFT arriving, a spent tracked coin may be an
// NFT leaving, a spent identity coin advances that identity
func (m *Manager) CoinStatesUpdated(ctx context.Context, states []coin.CoinState) error {
	nfts := m.nftWallet()

	for _, s := range states {
		if s.IsSpent() {
			if err := m.identitySpent(ctx, s); nil != err {
				return err
			}
		}
		if nfts.IsNone() {
			continue
		}
		t := nfts.UnsafeFromSome().tracker

		switch {
		case s.IsSpent() && t.ByCoinId(s.Coin.Id()).IsSome():
			spend, err := m.p.Source.PuzzleSolution(ctx, s.SpentHeight, s.Coin)
			if nil != err {
				return err
			}
			if spend.IsNone() {
				return fault.ErrInconsistentParent
			}
			if _, err := t.ResolveIncomingSpend(ctx, spend.UnsafeFromSome()); nil != err {
				return err
			}

		case !s.IsSpent() && 1 == s.Coin.Amount%2:
			_, err := t.CoinAdded(ctx, s.Coin, s.CreatedHeight)
			if fault.ErrNotNFT == err {
				m.log.Debugf("coin: %s  parent is not an NFT", s.Coin.Id())
				continue
			}
			if nil != err {
				return err
			}
		}
	}
	return nil
}

func (m *Manager) identitySpent(ctx context.Context, s coin.CoinState) error {
	for _, k := range m.registry.Keys(registry.DID) {
		w := m.DID(k.Id)
		if w.IsNone() {
			continue
		}
		identity := w.UnsafeFromSome()
		if identity.Record().Coin.Id() != s.Coin.Id() {
			continue
		}
		spend, err := m.p.Source.PuzzleSolution(ctx, s.SpentHeight, s.Coin)
		if nil != err {
			return err
		}
		if spend.IsNone() {
			return fault.ErrInconsistentParent
		}
		_, err = identity.Advance(spend.UnsafeFromSome())
		return err
	}
	return nil
}

// newTransaction - record of a bundle created now
func newTransaction(tag TagType, fee uint64, launcherIds []merkle.Digest, bundle *spendbundle.SpendBundle) TransactionRecord {
	return TransactionRecord{
		Type:        tag,
		Fee:         fee,
		Created:     uint64(time.Now().Unix()),
		LauncherIds: launcherIds,
		Bundle:      bundle,
	}
}

// PushTransaction - store a transaction record and submit its bundle
//
// on failure the stored record is removed, the bundle's coins are
// released and its assets are no longer pending
func (m *Manager) PushTransaction(ctx context.Context, record TransactionRecord) error {
	id := record.Id()

	err := m.submit(ctx, id, record)
	if nil == err {
		m.log.Infof("pushed transaction: %s  spends: %d", id, len(record.Bundle.CoinSpends))
		return nil
	}

	m.log.Errorf("push transaction: %s  error: %s", id, err)
	if nil != m.transactions {
		if e := m.transactions.Delete(id[:]); nil != e {
			m.log.Errorf("transaction: %s  delete record error: %s", id, e)
		}
	}
	removals := record.Bundle.Removals()
	m.balance.Release(removals)
	m.nftWallet().WhenSome(func(w *NFTWallet) {
		for _, c := range removals {
			if e := w.tracker.UpdateCoinStatus(c.Id(), false); nil != e && fault.ErrNotFound != e {
				m.log.Errorf("coin: %s  clear pending error: %s", c.Id(), e)
			}
		}
	})
	return err
}

func (m *Manager) submit(ctx context.Context, id merkle.Digest, record TransactionRecord) error {
	if nil != m.transactions {
		if err := m.transactions.Put(id[:], record.Pack()); nil != err {
			return err
		}
	}
	return m.p.Submitter.PushTransaction(ctx, record)
}

// Transactions - every stored transaction record
func (m *Manager) Transactions() ([]TransactionRecord, error) {
	records := []TransactionRecord{}
	if nil == m.transactions {
		return records, nil
	}
	err := m.transactions.NewFetchCursor().Map(func(key []byte, value []byte) error {
		r, err := PackedTransaction(value).Unpack()
		if nil != err {
			return err
		}
		records = append(records, r)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return records, nil
}
