// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"bytes"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/coinstate"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/messagebus"
	"github.com/bitmark-inc/coinset/program"
	"github.com/bitmark-inc/coinset/puzzle"
)

// notifications sent on the message bus, parameters: launcher id, coin id
const (
	NotifyCoinAdded       = "asset_coin_added"
	NotifyCoinRemoved     = "asset_coin_removed"
	NotifyMetadataUpdated = "asset_metadata_updated"
)

// Derivations - standard puzzle hashes this wallet holds keys for
type Derivations interface {
	DerivationForPuzzleHash(puzzleHash merkle.Digest) (keystore.DerivationRecord, bool)
}

// Authorities - decentralised identities able to act for this wallet
type Authorities interface {
	HasAuthority(owner []byte) bool
}

// Parameters - collaborators of a tracker
//
// Authorities, Persister and Bus may be nil
type Parameters struct {
	Source      coinstate.Source
	Interpreter condition.Interpreter
	Driver      puzzle.Driver
	Keys        Derivations
	Authorities Authorities
	Persister   Persister
	Bus         *messagebus.BroadcastQueue
}

type snapshot struct {
	byLauncher map[merkle.Digest]Record
	byCoin     map[merkle.Digest]merkle.Digest
}

func (s *snapshot) clone() *snapshot {
	n := &snapshot{
		byLauncher: make(map[merkle.Digest]Record, len(s.byLauncher)+1),
		byCoin:     make(map[merkle.Digest]merkle.Digest, len(s.byCoin)+1),
	}
	for k, v := range s.byLauncher {
		n.byLauncher[k] = v
	}
	for k, v := range s.byCoin {
		n.byCoin[k] = v
	}
	return n
}

func (s *snapshot) put(r Record) {
	if old, ok := s.byLauncher[r.LauncherId]; ok {
		delete(s.byCoin, old.Coin.Id())
	}
	s.byLauncher[r.LauncherId] = r
	s.byCoin[r.Coin.Id()] = r.LauncherId
}

func (s *snapshot) records() []Record {
	records := make([]Record, 0, len(s.byLauncher))
	for _, r := range s.byLauncher {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].MintHeight != records[j].MintHeight {
			return records[i].MintHeight < records[j].MintHeight
		}
		return bytes.Compare(records[i].LauncherId[:], records[j].LauncherId[:]) < 0
	})
	return records
}

// Tracker - the NFT records of one wallet
type Tracker struct {
	sync.Mutex

	log     *logger.L
	p       Parameters
	current atomic.Pointer[snapshot]
}

// New - tracker holding whatever the persister has stored
func New(log *logger.L, parameters Parameters) (*Tracker, error) {
	t := &Tracker{
		log: log,
		p:   parameters,
	}
	s := &snapshot{
		byLauncher: make(map[merkle.Digest]Record),
		byCoin:     make(map[merkle.Digest]merkle.Digest),
	}
	if nil != parameters.Persister {
		records, err := parameters.Persister.Load()
		if nil != err {
			log.Errorf("load records error: %s", err)
			return nil, err
		}
		for _, r := range records {
			s.put(r)
		}
		log.Infof("loaded records: %d", len(records))
	}
	t.current.Store(s)
	return t, nil
}

// Records - every tracked record, oldest mint first
func (t *Tracker) Records() []Record {
	return t.current.Load().records()
}

// ByLauncher - record of a launcher id
func (t *Tracker) ByLauncher(launcherId merkle.Digest) fn.Option[Record] {
	r, ok := t.current.Load().byLauncher[launcherId]
	if !ok {
		return fn.None[Record]()
	}
	return fn.Some(r)
}

// ByCoinId - record whose current coin has the given id
func (t *Tracker) ByCoinId(coinId merkle.Digest) fn.Option[Record] {
	s := t.current.Load()
	launcherId, ok := s.byCoin[coinId]
	if !ok {
		return fn.None[Record]()
	}
	return fn.Some(s.byLauncher[launcherId])
}

// Observe - track a coin of an NFT, replacing the record for its launcher
//
// observing the same coin again is harmless, a different coin for a
// tracked launcher is accepted when it is the tracked coin's child or
// has the same amount and puzzle hash
func (t *Tracker) Observe(c coin.Coin, fullPuzzle *program.Program, lineageProof fn.Option[coin.LineageProof], mintHeight uint32) (Record, error) {
	return t.observe(c, fullPuzzle, lineageProof, mintHeight, false)
}

func (t *Tracker) observe(c coin.Coin, fullPuzzle *program.Program, lineageProof fn.Option[coin.LineageProof], mintHeight uint32, metadataChanged bool) (Record, error) {
	log := t.log

	if fullPuzzle.TreeHash() != c.PuzzleHash {
		return Record{}, fault.ErrInvalidPuzzleHash
	}
	nft, err := t.p.Driver.UncurryNFT(fullPuzzle)
	if nil != err {
		return Record{}, err
	}

	record := Record{
		LauncherId:   nft.LauncherId,
		Coin:         c,
		LineageProof: lineageProof,
		FullPuzzle:   fullPuzzle,
		MintHeight:   mintHeight,
	}
	coinId := c.Id()

	t.Lock()
	defer t.Unlock()

	current := t.current.Load()
	if existing, ok := current.byLauncher[nft.LauncherId]; ok {
		existingId := existing.Coin.Id()
		switch {
		case existingId == coinId:
			record.PendingTransaction = existing.PendingTransaction
		case existingId == c.ParentId:
		case existing.Coin.Amount == c.Amount && existing.Coin.PuzzleHash == c.PuzzleHash:
		default:
			log.Warnf("launcher: %s  tracked coin: %s  rejected coin: %s", nft.LauncherId, existingId, coinId)
			return Record{}, fault.ErrDuplicateCoin
		}
	}

	next := current.clone()
	next.put(record)
	if err := t.commit(next); nil != err {
		return Record{}, err
	}

	log.Infof("launcher: %s  coin: %s  mint height: %d", nft.LauncherId, coinId, mintHeight)
	t.notify(NotifyCoinAdded, record)
	if metadataChanged {
		t.notify(NotifyMetadataUpdated, record)
	}
	return record, nil
}

// Remove - stop tracking a coin, untracked coins are ignored
func (t *Tracker) Remove(c coin.Coin) error {
	coinId := c.Id()

	t.Lock()
	defer t.Unlock()

	current := t.current.Load()
	launcherId, ok := current.byCoin[coinId]
	if !ok {
		return nil
	}
	record := current.byLauncher[launcherId]

	next := current.clone()
	delete(next.byLauncher, launcherId)
	delete(next.byCoin, coinId)
	if err := t.commit(next); nil != err {
		return err
	}

	t.log.Infof("launcher: %s  removed coin: %s", launcherId, coinId)
	t.notify(NotifyCoinRemoved, record)
	return nil
}

// UpdateCoinStatus - set or clear the pending transaction flag of a coin
func (t *Tracker) UpdateCoinStatus(coinId merkle.Digest, pending bool) error {
	t.Lock()
	defer t.Unlock()

	current := t.current.Load()
	launcherId, ok := current.byCoin[coinId]
	if !ok {
		return fault.ErrNotFound
	}
	record := current.byLauncher[launcherId]
	if record.PendingTransaction == pending {
		return nil
	}
	record.PendingTransaction = pending

	next := current.clone()
	next.put(record)
	return t.commit(next)
}

// MarkPending - flag every record as pending, or none if any already is
func (t *Tracker) MarkPending(coinIds []merkle.Digest) error {
	t.Lock()
	defer t.Unlock()

	current := t.current.Load()
	next := current.clone()
	for _, id := range coinIds {
		launcherId, ok := current.byCoin[id]
		if !ok {
			return fault.ErrNotFound
		}
		record := next.byLauncher[launcherId]
		if record.PendingTransaction {
			return fault.ErrAssetPending
		}
		record.PendingTransaction = true
		next.put(record)
	}
	return t.commit(next)
}

// persist then publish, must hold the lock
func (t *Tracker) commit(next *snapshot) error {
	if nil != t.p.Persister {
		if err := t.p.Persister.Save(next.records()); nil != err {
			t.log.Errorf("save records error: %s", err)
			return err
		}
	}
	t.current.Store(next)
	return nil
}

func (t *Tracker) notify(command string, r Record) {
	if nil == t.p.Bus {
		return
	}
	coinId := r.Coin.Id()
	t.p.Bus.Send(command, r.LauncherId.Bytes(), coinId.Bytes())
}
