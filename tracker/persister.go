// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tracker

import (
	"github.com/bitmark-inc/coinset/storage"
)

// Persister - durable copy of the whole record set
type Persister interface {
	Save(records []Record) error
	Load() ([]Record, error)
}

// PoolPersister - records kept in a storage pool keyed by launcher id
type PoolPersister struct {
	pool storage.Handle
}

// NewPoolPersister - persist to pool
func NewPoolPersister(pool storage.Handle) *PoolPersister {
	return &PoolPersister{pool: pool}
}

// Save - replace the pool contents with records
func (p *PoolPersister) Save(records []Record) error {
	elements := make([]storage.Element, 0, len(records))
	for _, r := range records {
		elements = append(elements, storage.Element{
			Key:   append([]byte{}, r.LauncherId[:]...),
			Value: r.Pack(),
		})
	}
	return p.pool.Replace(elements)
}

// Load - every stored record
func (p *PoolPersister) Load() ([]Record, error) {
	records := make([]Record, 0, 16)
	err := p.pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		r, err := Packed(value).Unpack()
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
