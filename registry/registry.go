// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"sort"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

// Type - kind of asset a registered wallet manages
type Type int

// asset types
const (
	Standard Type = iota
	NFT
	DID
)

func (t Type) String() string {
	switch t {
	case Standard:
		return "standard"
	case NFT:
		return "nft"
	case DID:
		return "did"
	default:
		return "unknown"
	}
}

// Key - registry key, id is zero for a singleton wallet of its type
type Key struct {
	Type Type
	Id   merkle.Digest
}

// Authority - a wallet able to approve ownership for an owner id
type Authority interface {
	HasAuthority(owner []byte) bool
}

// Registry - wallets by asset type and id
type Registry struct {
	sync.RWMutex

	wallets map[Key]interface{}
}

// New - empty registry
func New() *Registry {
	return &Registry{
		wallets: make(map[Key]interface{}),
	}
}

// Register - add a wallet, a key can only be registered once
func (r *Registry) Register(t Type, id merkle.Digest, wallet interface{}) error {
	r.Lock()
	defer r.Unlock()

	k := Key{Type: t, Id: id}
	if _, ok := r.wallets[k]; ok {
		return fault.ErrAlreadyRegistered
	}
	r.wallets[k] = wallet
	return nil
}

// Unregister - remove a wallet, unknown keys are ignored
func (r *Registry) Unregister(t Type, id merkle.Digest) {
	r.Lock()
	delete(r.wallets, Key{Type: t, Id: id})
	r.Unlock()
}

// Lookup - the wallet of a key if it has type W
func Lookup[W any](r *Registry, t Type, id merkle.Digest) fn.Option[W] {
	r.RLock()
	defer r.RUnlock()

	w, ok := r.wallets[Key{Type: t, Id: id}].(W)
	if !ok {
		return fn.None[W]()
	}
	return fn.Some(w)
}

// Keys - registered keys of one type in id order
func (r *Registry) Keys(t Type) []Key {
	r.RLock()
	defer r.RUnlock()

	keys := make([]Key, 0, len(r.wallets))
	for k := range r.wallets {
		if t == k.Type {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Id.String() < keys[j].Id.String()
	})
	return keys
}

// HasAuthority - true if any registered DID wallet approves for owner
func (r *Registry) HasAuthority(owner []byte) bool {
	r.RLock()
	defer r.RUnlock()

	for k, w := range r.wallets {
		if DID != k.Type {
			continue
		}
		if a, ok := w.(Authority); ok && a.HasAuthority(owner) {
			return true
		}
	}
	return false
}
