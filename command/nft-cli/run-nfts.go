// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/coinset/address"
	"github.com/bitmark-inc/coinset/storage"
	"github.com/bitmark-inc/coinset/tracker"
)

type nftItem struct {
	NFTId      string `json:"nftId"`
	LauncherId string `json:"launcherId"`
	CoinId     string `json:"coinId"`
	Amount     uint64 `json:"amount"`
	MintHeight uint32 `json:"mintHeight"`
	Pending    bool   `json:"pending"`
}

func runNFTs(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	db, err := m.open(storage.ReadOnly)
	if nil != err {
		return err
	}

	records, err := tracker.NewPoolPersister(db.Assets).Load()
	if nil != err {
		return err
	}

	items := make([]nftItem, 0, len(records))
	for _, r := range records {
		id, err := address.NFTId(m.chain, r.LauncherId)
		if nil != err {
			return err
		}
		items = append(items, nftItem{
			NFTId:      id,
			LauncherId: r.LauncherId.String(),
			CoinId:     r.Coin.Id().String(),
			Amount:     r.Coin.Amount,
			MintHeight: r.MintHeight,
			Pending:    r.PendingTransaction,
		})
	}

	return printJson(m.w, items)
}
