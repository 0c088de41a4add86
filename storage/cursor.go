// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/coinset/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.each(func(key []byte, value []byte) bool {
		results = append(results, Element{Key: key, Value: value})
		return len(results) < count
	})
	if nil != err {
		return nil, err
	}

	// the smallest key after the last one is that key with a zero byte appended
	if n := len(results); n > 0 {
		cursor.maxRange.Start = append(cursor.pool.prefixKey(results[n-1].Key), 0x00)
	}
	return results, nil
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	var err error
	iterErr := cursor.each(func(key []byte, value []byte) bool {
		err = f(key, value)
		return nil == err
	})
	if nil != err {
		return err
	}
	return iterErr
}

// calls f with copies of each key and value until f returns false
func (cursor *FetchCursor) each(f func(key []byte, value []byte) bool) error {
	d := cursor.pool.database
	d.RLock()
	defer d.RUnlock()
	if nil == d.db {
		return fault.ErrDatabaseIsNotSet
	}

	iter := d.db.NewIterator(&cursor.maxRange, nil)
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		if !f(dataKey, dataValue) {
			break
		}
	}
	iter.Release()
	return iter.Error()
}
