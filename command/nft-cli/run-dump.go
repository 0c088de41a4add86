// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/coinset/storage"
)

func runDump(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.String("pool")
	if "" == name {
		return ErrMissingArgument
	}
	count := c.Int("count")
	if count <= 0 {
		return ErrMissingArgument
	}

	db, err := m.open(storage.ReadOnly)
	if nil != err {
		return err
	}

	pool, tag, err := poolByName(&db.Pools, name)
	if nil != err {
		return err
	}

	elements, err := pool.NewFetchCursor().Fetch(count)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "pool: %s  prefix: %s  records: %d\n", name, tag, len(elements))
	for _, e := range elements {
		fmt.Fprintf(m.w, "%x → %x\n", e.Key, e.Value)
	}
	return nil
}

// a pool and its prefix tag by case-insensitive field name
func poolByName(pools *storage.Pools, name string) (*storage.PoolHandle, string, error) {

	// this will be a struct type
	poolType := reflect.TypeOf(*pools)
	poolValue := reflect.ValueOf(pools).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		if !strings.EqualFold(fieldInfo.Name, name) {
			continue
		}
		pool, ok := poolValue.Field(i).Interface().(*storage.PoolHandle)
		if !ok {
			break
		}
		return pool, fieldInfo.Tag.Get("prefix"), nil
	}
	return nil, "", ErrUnknownPool
}
