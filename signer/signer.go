// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"bytes"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/signature"
	"github.com/bitmark-inc/coinset/spendbundle"
)

// KeyLookup - key pairs able to spend a puzzle hash
type KeyLookup interface {
	KeysForPuzzleHash(puzzleHash merkle.Digest) ([]keystore.KeyPair, bool)
}

// Signer - produces the aggregate signature for a bundle's spends
type Signer struct {
	log            *logger.L
	keys           KeyLookup
	interpreter    condition.Interpreter
	driver         puzzle.Driver
	additionalData []byte
	maximumCost    uint64
}

// New - create a signer
func New(log *logger.L, keys KeyLookup, interpreter condition.Interpreter, driver puzzle.Driver, additionalData []byte, maximumCost uint64) *Signer {
	return &Signer{
		log:            log,
		keys:           keys,
		interpreter:    interpreter,
		driver:         driver,
		additionalData: additionalData,
		maximumCost:    maximumCost,
	}
}

// Sign - sign every signature obligation of every spend and fold the
// result into the bundle's existing aggregate signature
//
// puzzleHashes names the key holders to use, when empty each spend's
// key holder is found from its puzzle: the p2 puzzle of an NFT, the
// inner puzzle of a plain singleton or the puzzle itself for a
// standard coin
func (s *Signer) Sign(bundle *spendbundle.SpendBundle, puzzleHashes []merkle.Digest) (*spendbundle.SpendBundle, error) {
	signatures := make([]signature.Signature, 0, len(bundle.CoinSpends)+1)
	signatures = append(signatures, bundle.AggregatedSignature)

	for _, spend := range bundle.CoinSpends {
		sigs, err := s.signSpend(spend, puzzleHashes)
		if nil != err {
			return nil, err
		}
		signatures = append(signatures, sigs...)
	}

	aggregate, err := signature.Aggregate(signatures...)
	if nil != err {
		return nil, err
	}
	return &spendbundle.SpendBundle{
		CoinSpends:          bundle.CoinSpends,
		AggregatedSignature: aggregate,
	}, nil
}

func (s *Signer) signSpend(spend coin.CoinSpend, explicit []merkle.Digest) ([]signature.Signature, error) {
	log := s.log
	coinId := spend.Coin.Id()

	conditions, _, err := condition.EvaluateSpend(s.interpreter, spend, s.maximumCost)
	if nil != err {
		log.Errorf("evaluate coin: %s  error: %s", coinId, err)
		return nil, err
	}
	requirements := condition.SignatureRequirements(coinId, conditions, s.additionalData)
	if 0 == len(requirements) {
		return nil, nil
	}

	hashes := explicit
	if 0 == len(hashes) {
		hashes = s.keyHolders(spend)
	}

	pairs := make([]keystore.KeyPair, 0, 2*len(hashes))
	for _, ph := range hashes {
		found, ok := s.keys.KeysForPuzzleHash(ph)
		if !ok {
			log.Warnf("no keys for puzzle hash: %s", ph)
			continue
		}
		pairs = append(pairs, found...)
	}

	sigs := make([]signature.Signature, 0, len(requirements))
	for _, r := range requirements {
		sk := secretFor(pairs, r.PublicKey)
		if nil == sk {
			log.Errorf("coin: %s  no secret key for public key: %x", coinId, r.PublicKey)
			return nil, fault.ErrUnsignableSpend
		}
		sigs = append(sigs, signature.Sign(sk, r.Message))
	}
	log.Debugf("coin: %s  signatures: %d", coinId, len(sigs))
	return sigs, nil
}

func (s *Signer) keyHolders(spend coin.CoinSpend) []merkle.Digest {
	if nft, err := s.driver.UncurryNFT(spend.PuzzleReveal); nil == err {
		return []merkle.Digest{nft.P2Puzzle.TreeHash()}
	}
	if _, ok := s.driver.UncurryStandard(spend.PuzzleReveal); ok {
		return []merkle.Digest{spend.Coin.PuzzleHash}
	}
	// a plain singleton around a standard puzzle, e.g. a DID
	template, args, ok := puzzle.Uncurry(spend.PuzzleReveal)
	if ok && puzzle.SingletonTemplate == template && 2 == len(args) {
		if _, ok := s.driver.UncurryStandard(args[1]); ok {
			return []merkle.Digest{args[1].TreeHash()}
		}
	}
	return nil
}

func secretFor(pairs []keystore.KeyPair, publicKey []byte) *signature.PrivateKey {
	for _, p := range pairs {
		if bytes.Equal(p.PublicKey, publicKey) {
			return p.SecretKey
		}
	}
	return nil
}
