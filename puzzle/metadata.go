// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle

import (
	"bytes"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/program"
)

// metadata keys
const (
	KeyDataURIs     = "u"
	KeyDataHash     = "h"
	KeyMetadataURIs = "mu"
	KeyMetadataHash = "mh"
	KeyLicenseURIs  = "lu"
	KeyLicenseHash  = "lh"
	KeyEditionNo    = "sn"
	KeyEditionTotal = "st"
)

// Field - one metadata entry
type Field struct {
	Key   string
	Value *program.Program
}

// UpdaterFunc - computes new metadata from the old and an updater solution
type UpdaterFunc func(metadata *program.Program, solution *program.Program) (*program.Program, error)

// Updaters - metadata updaters by the tree hash of their puzzle
type Updaters map[merkle.Digest]UpdaterFunc

// DefaultUpdaters - only the default updater
func DefaultUpdaters() Updaters {
	return Updaters{DefaultUpdaterHash: DefaultUpdater}
}

// Apply - run every metadata update remark through its updater
func (u Updaters) Apply(metadata *program.Program, updaterHash merkle.Digest, conditions []condition.Condition) (*program.Program, error) {
	for _, r := range condition.Remarks(conditions, condition.OpUpdateMetadata) {
		if 2 != len(r.Data) {
			return nil, fault.ErrInvalidMetadataUpdate
		}
		if r.Data[0].TreeHash() != updaterHash {
			return nil, fault.ErrInvalidMetadataUpdate
		}
		f, ok := u[updaterHash]
		if !ok {
			return nil, fault.ErrUnknownMetadataUpdater
		}
		updated, err := f(metadata, r.Data[1])
		if nil != err {
			return nil, err
		}
		metadata = updated
	}
	return metadata, nil
}

// NewMetadata - metadata list of (key . value) pairs
func NewMetadata(fields ...Field) *program.Program {
	pairs := make([]*program.Program, len(fields))
	for i, f := range fields {
		pairs[i] = program.Cons(program.String(f.Key), f.Value)
	}
	return program.List(pairs...)
}

// URIs - a list of strings
func URIs(uris ...string) *program.Program {
	items := make([]*program.Program, len(uris))
	for i, u := range uris {
		items[i] = program.String(u)
	}
	return program.List(items...)
}

// MetadataValue - value stored under a key
func MetadataValue(metadata *program.Program, key string) fn.Option[*program.Program] {
	pairs, err := metadata.Items()
	if nil != err {
		return fn.None[*program.Program]()
	}
	for _, pair := range pairs {
		k, err := pair.First()
		if nil != err {
			continue
		}
		if b, err := k.AtomBytes(); nil == err && string(b) == key {
			v, _ := pair.Rest()
			return fn.Some(v)
		}
	}
	return fn.None[*program.Program]()
}

// MetadataURIs - strings stored under a key
func MetadataURIs(metadata *program.Program, key string) []string {
	v := MetadataValue(metadata, key)
	if v.IsNone() {
		return nil
	}
	items, err := v.UnsafeFromSome().Items()
	if nil != err {
		return nil
	}
	uris := make([]string, 0, len(items))
	for _, item := range items {
		if b, err := item.AtomBytes(); nil == err {
			uris = append(uris, string(b))
		}
	}
	return uris
}

// DefaultUpdaterPuzzle - the puzzle revealed to use the default updater
func DefaultUpdaterPuzzle() *program.Program {
	return Curry(UpdaterTemplate)
}

// UpdateMetadata - remark adding a URI through the default updater
func UpdateMetadata(key string, uri string) condition.Remark {
	return condition.Remark{
		Code: condition.OpUpdateMetadata,
		Data: []*program.Program{DefaultUpdaterPuzzle(), program.Cons(program.String(key), program.String(uri))},
	}
}

// DefaultUpdater - solution (key . uri) prepends the URI to the list
// under key, only the URI keys may be changed
func DefaultUpdater(metadata *program.Program, solution *program.Program) (*program.Program, error) {
	k, err := solution.First()
	if nil != err {
		return nil, fault.ErrInvalidMetadataUpdate
	}
	v, _ := solution.Rest()
	key, err := k.AtomBytes()
	if nil != err {
		return nil, fault.ErrInvalidMetadataUpdate
	}
	if _, err := v.AtomBytes(); nil != err {
		return nil, fault.ErrInvalidMetadataUpdate
	}

	switch string(key) {
	case KeyDataURIs, KeyMetadataURIs, KeyLicenseURIs:
	default:
		return metadata, nil
	}

	pairs, err := metadata.Items()
	if nil != err {
		return nil, fault.ErrInvalidMetadataUpdate
	}
	for i, pair := range pairs {
		pk, err := pair.First()
		if nil != err {
			continue
		}
		if b, err := pk.AtomBytes(); nil == err && bytes.Equal(b, key) {
			list, _ := pair.Rest()
			pairs[i] = program.Cons(pk, program.Cons(v, list))
			return program.List(pairs...), nil
		}
	}
	pairs = append(pairs, program.Cons(k, program.List(v)))
	return program.List(pairs...), nil
}
