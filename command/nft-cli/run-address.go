// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/coinset/address"
	"github.com/bitmark-inc/coinset/merkle"
)

type addressItem struct {
	Address string `json:"address"`
	Prefix  string `json:"prefix"`
	Hex     string `json:"hex"`
}

func runEncode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s := c.Args().First()
	if "" == s {
		return ErrMissingArgument
	}
	d, err := merkle.DigestFromHex(s)
	if nil != err {
		return err
	}

	prefix := m.chain.AddressPrefix
	if c.Bool("nft") {
		prefix = m.chain.NFTPrefix
	}
	a, err := address.Encode(prefix, d)
	if nil != err {
		return err
	}

	return printJson(m.w, addressItem{
		Address: a,
		Prefix:  prefix,
		Hex:     d.String(),
	})
}

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s := c.Args().First()
	if "" == s {
		return ErrMissingArgument
	}
	prefix, d, err := address.Decode(s)
	if nil != err {
		return err
	}

	return printJson(m.w, addressItem{
		Address: s,
		Prefix:  prefix,
		Hex:     d.String(),
	})
}
