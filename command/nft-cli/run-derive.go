// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/coinset/address"
	"github.com/bitmark-inc/coinset/keystore"
	"github.com/bitmark-inc/coinset/storage"
)

type derivationItem struct {
	Index      uint32 `json:"index"`
	PuzzleHash string `json:"puzzleHash"`
	Address    string `json:"address"`
}

// derive keys 0..count-1 and store their puzzle hashes by index
func runDerive(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if "" == m.config.Wallet.Seed {
		return ErrMissingSeed
	}
	seed, err := hex.DecodeString(m.config.Wallet.Seed)
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		count = m.config.Wallet.Derivations
	}

	keys, err := keystore.New(m.log, seed)
	if nil != err {
		return err
	}

	db, err := m.open(storage.ReadWrite)
	if nil != err {
		return err
	}

	items := make([]derivationItem, 0, count)
	for i := 0; i < count; i += 1 {
		d, err := keys.NewDerivation()
		if nil != err {
			return err
		}
		a, err := address.FromPuzzleHash(m.chain, d.PuzzleHash)
		if nil != err {
			return err
		}

		key := make([]byte, 4)
		binary.BigEndian.PutUint32(key, d.Index)
		if err := db.Derivations.Put(key, d.PuzzleHash[:]); nil != err {
			return err
		}

		items = append(items, derivationItem{
			Index:      d.Index,
			PuzzleHash: d.PuzzleHash.String(),
			Address:    a,
		})
	}
	m.log.Infof("derived: %d", len(items))

	return printJson(m.w, items)
}
