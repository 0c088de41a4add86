// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keystore_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/fixtures"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/puzzle"
	"github.com/bitmark-inc/coinset/signature"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestDerivation(t *testing.T) {
	seed := fixtures.Seed(9)
	s, err := keystore.New(logger.New(fixtures.LogCategory), seed)
	require.Nil(t, err, "new")

	r0, err := s.NewDerivation()
	require.Nil(t, err, "first")
	r1, err := s.NewDerivation()
	require.Nil(t, err, "second")
	assert.NotEqual(t, r0.PuzzleHash, r1.PuzzleHash, "same puzzle hash")
	assert.Equal(t, puzzle.StandardPuzzle(r1.SyntheticPublicKey).TreeHash(), r1.PuzzleHash, "puzzle hash")

	found, ok := s.DerivationForPuzzleHash(r1.PuzzleHash)
	assert.True(t, ok, "lookup")
	assert.Equal(t, uint32(1), found.Index, "index")

	pairs, ok := s.KeysForPuzzleHash(r0.PuzzleHash)
	require.True(t, ok, "keys")
	require.Equal(t, 2, len(pairs), "pairs")
	for i, p := range pairs {
		assert.Equal(t, p.PublicKey, signature.PublicKeyBytes(p.SecretKey), "%d: pair mismatch", i)
	}

	_, ok = s.KeysForPuzzleHash(merkle.NewDigest([]byte("stranger")))
	assert.False(t, ok, "unknown puzzle hash")

	// same seed derives the same keys
	again, _ := keystore.New(logger.New(fixtures.LogCategory), seed)
	require.Nil(t, again.DeriveUpTo(2), "derive")
	assert.Equal(t, s.PuzzleHashes(), again.PuzzleHashes(), "not deterministic")
}

func TestShortSeed(t *testing.T) {
	_, err := keystore.New(logger.New(fixtures.LogCategory), []byte("short"))
	assert.Equal(t, fault.ErrInvalidSecretKey, err, "short seed")
}
