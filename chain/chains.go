// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"encoding/hex"
	"strings"

	"github.com/bitmark-inc/coinset/fault"
)

// names of all chains
const (
	Mainnet = "mainnet"
	Testnet = "testnet10"
	Local   = "local"
)

// Parameters - constants that differ between chains
type Parameters struct {
	Name           string
	AddressPrefix  string
	NFTPrefix      string
	AdditionalData []byte
	MaximumCost    uint64
	DefaultPort    uint16
}

// maximum cost of a block's spends
const maximumBlockCost = 11_000_000_000

var parameters = map[string]Parameters{
	Mainnet: {
		Name:           Mainnet,
		AddressPrefix:  "xch",
		NFTPrefix:      "nft",
		AdditionalData: mustDecode("ccd5bb71183532bff220ba46c268991a3ff07eb358e8255a65c30a2dce0e5fbb"),
		MaximumCost:    maximumBlockCost,
		DefaultPort:    8444,
	},
	Testnet: {
		Name:           Testnet,
		AddressPrefix:  "txch",
		NFTPrefix:      "nft",
		AdditionalData: mustDecode("ae83525ba8d1dd3f09b277de18ca3e43fc0af20d20c4b3e92ef2a48bd291ccb2"),
		MaximumCost:    maximumBlockCost,
		DefaultPort:    58444,
	},
	Local: {
		Name:           Local,
		AddressPrefix:  "txch",
		NFTPrefix:      "nft",
		AdditionalData: []byte("coinset local network"),
		MaximumCost:    maximumBlockCost,
		DefaultPort:    58444,
	},
}

// Valid - validate a chain name
func Valid(name string) bool {
	_, ok := parameters[strings.ToLower(name)]
	return ok
}

// IsTestnet - any chain that is not the main network
func IsTestnet(name string) bool {
	return Mainnet != strings.ToLower(name)
}

// Get - parameters of a named chain
func Get(name string) (Parameters, error) {
	p, ok := parameters[strings.ToLower(name)]
	if !ok {
		return Parameters{}, fault.ErrInvalidChain
	}
	p.AdditionalData = append([]byte{}, p.AdditionalData...)
	return p, nil
}

func mustDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if nil != err {
		panic(err)
	}
	return b
}
