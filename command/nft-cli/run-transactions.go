// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/coinset/storage"
	"github.com/bitmark-inc/coinset/wallet"
)

type transactionItem struct {
	Id        string    `json:"id"`
	Type      string    `json:"type"`
	Fee       uint64    `json:"fee"`
	Created   time.Time `json:"created"`
	Launchers []string  `json:"launchers"`
	Spends    int       `json:"spends"`
}

func runTransactions(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	db, err := m.open(storage.ReadOnly)
	if nil != err {
		return err
	}

	items := make([]transactionItem, 0, 16)
	err = db.Transactions.NewFetchCursor().Map(func(key []byte, value []byte) error {
		r, err := wallet.PackedTransaction(value).Unpack()
		if nil != err {
			return err
		}
		launchers := make([]string, 0, len(r.LauncherIds))
		for _, id := range r.LauncherIds {
			launchers = append(launchers, id.String())
		}
		items = append(items, transactionItem{
			Id:        r.Id().String(),
			Type:      r.Type.String(),
			Fee:       r.Fee,
			Created:   time.Unix(int64(r.Created), 0).UTC(),
			Launchers: launchers,
			Spends:    len(r.Bundle.CoinSpends),
		})
		return nil
	})
	if nil != err {
		return err
	}

	return printJson(m.w, items)
}
