// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keystore

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/signature"
)

// KeyPair - a public key and the secret key behind it
type KeyPair struct {
	PublicKey []byte
	SecretKey *signature.PrivateKey
}

// DerivationRecord - one derived key and the standard puzzle it locks
type DerivationRecord struct {
	Index              uint32
	PublicKey          []byte
	SyntheticPublicKey []byte
	PuzzleHash         merkle.Digest
}

type entry struct {
	record    DerivationRecord
	secret    *signature.PrivateKey
	synthetic *signature.PrivateKey
}

// Store - keys derived from one seed, indexed by standard puzzle hash
type Store struct {
	sync.RWMutex

	log          *logger.L
	seed         []byte
	hidden       merkle.Digest
	next         uint32
	byPuzzleHash map[merkle.Digest]*entry
}

// New - empty store for a seed of at least signature.SeedSize bytes
func New(log *logger.L, seed []byte) (*Store, error) {
	if len(seed) < signature.SeedSize {
		return nil, fault.ErrInvalidSecretKey
	}
	return &Store{
		log:          log,
		seed:         append([]byte{}, seed...),
		hidden:       puzzle.DefaultHiddenPuzzleHash,
		byPuzzleHash: make(map[merkle.Digest]*entry),
	}, nil
}

// NewDerivation - derive the next unused key
func (s *Store) NewDerivation() (DerivationRecord, error) {
	s.Lock()
	defer s.Unlock()

	e, err := s.derive(s.next)
	if nil != err {
		return DerivationRecord{}, err
	}
	s.next += 1
	s.byPuzzleHash[e.record.PuzzleHash] = e

	s.log.Debugf("derivation: %d  puzzle hash: %s", e.record.Index, e.record.PuzzleHash)
	return e.record, nil
}

// DeriveUpTo - make sure keys 0..count-1 exist
func (s *Store) DeriveUpTo(count uint32) error {
	for {
		s.RLock()
		done := s.next >= count
		s.RUnlock()
		if done {
			return nil
		}
		if _, err := s.NewDerivation(); nil != err {
			return err
		}
	}
}

func (s *Store) derive(index uint32) (*entry, error) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], index)
	ikm := merkle.NewDigestFromParts(s.seed, n[:])

	sk, err := signature.GenerateKey(ikm[:])
	if nil != err {
		return nil, err
	}
	synthetic, err := signature.SyntheticSecretKey(sk, s.hidden)
	if nil != err {
		return nil, err
	}

	syntheticPublicKey := signature.PublicKeyBytes(synthetic)
	return &entry{
		record: DerivationRecord{
			Index:              index,
			PublicKey:          signature.PublicKeyBytes(sk),
			SyntheticPublicKey: syntheticPublicKey,
			PuzzleHash:         puzzle.StandardPuzzle(syntheticPublicKey).TreeHash(),
		},
		secret:    sk,
		synthetic: synthetic,
	}, nil
}

// DerivationForPuzzleHash - derivation whose standard puzzle has this hash
func (s *Store) DerivationForPuzzleHash(puzzleHash merkle.Digest) (DerivationRecord, bool) {
	s.RLock()
	defer s.RUnlock()

	e, ok := s.byPuzzleHash[puzzleHash]
	if !ok {
		return DerivationRecord{}, false
	}
	return e.record, true
}

// KeysForPuzzleHash - the raw and synthetic key pairs for a puzzle hash
func (s *Store) KeysForPuzzleHash(puzzleHash merkle.Digest) ([]KeyPair, bool) {
	s.RLock()
	defer s.RUnlock()

	e, ok := s.byPuzzleHash[puzzleHash]
	if !ok {
		return nil, false
	}
	return []KeyPair{
		{PublicKey: e.record.PublicKey, SecretKey: e.secret},
		{PublicKey: e.record.SyntheticPublicKey, SecretKey: e.synthetic},
	}, true
}

// PuzzleHashes - all derived puzzle hashes in derivation order
func (s *Store) PuzzleHashes() []merkle.Digest {
	s.RLock()
	defer s.RUnlock()

	hashes := make([]merkle.Digest, s.next)
	for ph, e := range s.byPuzzleHash {
		hashes[e.record.Index] = ph
	}
	return hashes
}
