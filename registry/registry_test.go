// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/did"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/fixtures"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
	"github.com/bitmark-inc/coinset/registry"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type named string

func TestRegisterLookup(t *testing.T) {
	r := registry.New()
	id := merkle.NewDigest([]byte("wallet"))

	err := r.Register(registry.NFT, id, named("nft wallet"))
	require.Nil(t, err, "register")

	err = r.Register(registry.NFT, id, named("again"))
	assert.Equal(t, fault.ErrAlreadyRegistered, err, "duplicate")

	w := registry.Lookup[named](r, registry.NFT, id)
	require.True(t, w.IsSome(), "lookup")
	assert.Equal(t, named("nft wallet"), w.UnsafeFromSome(), "wallet")

	assert.True(t, registry.Lookup[named](r, registry.DID, id).IsNone(), "wrong type")
	assert.True(t, registry.Lookup[int](r, registry.NFT, id).IsNone(), "wrong go type")
	assert.True(t, registry.Lookup[named](r, registry.NFT, merkle.Digest{}).IsNone(), "wrong id")

	r.Unregister(registry.NFT, id)
	assert.True(t, registry.Lookup[named](r, registry.NFT, id).IsNone(), "unregistered")
	assert.Equal(t, 0, len(r.Keys(registry.NFT)), "keys")
}

func TestAuthority(t *testing.T) {
	r := registry.New()
	log := logger.New(fixtures.LogCategory)

	identity := did.New(log, did.Record{
		LauncherId:  merkle.NewDigest([]byte("identity")),
		InnerPuzzle: program.Nil(),
	})
	id := identity.Id()

	assert.False(t, r.HasAuthority(id[:]), "empty registry")

	// an identity registered under the wrong type does not count
	require.Nil(t, r.Register(registry.NFT, id, identity), "register as nft")
	assert.False(t, r.HasAuthority(id[:]), "wrong type")

	require.Nil(t, r.Register(registry.DID, id, identity), "register")
	assert.True(t, r.HasAuthority(id[:]), "registered identity")
	assert.False(t, r.HasAuthority([]byte("other")), "other owner")

	keys := r.Keys(registry.DID)
	require.Equal(t, 1, len(keys), "keys")
	assert.Equal(t, registry.Key{Type: registry.DID, Id: id}, keys[0], "key")
	assert.Equal(t, "did", keys[0].Type.String(), "type name")
}
