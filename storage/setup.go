// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Assets       *PoolHandle `prefix:"N"`
	Transactions *PoolHandle `prefix:"T"`
	Derivations  *PoolHandle `prefix:"K"`
	TestData     *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - an open store and its pools
type Database struct {
	sync.RWMutex
	Pools

	log *logger.L
	db  *leveldb.DB
}

// Open - open up the database and set up its pools
func Open(log *logger.L, name string, readOnly bool) (*Database, error) {
	db, version, err := getDB(name, readOnly)
	if nil != err {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			log.Critical("database is not initialised")
			return nil, fmt.Errorf("database: %q is not initialised", name)
		}
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	}

	d := &Database{
		log: log,
		db:  db,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pools)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pools).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			database: d,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	log.Infof("opened: %q  version: %d  read only: %t", name, currentDBVersion, readOnly)

	ok = true // prevent db close
	return d, nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()
	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
