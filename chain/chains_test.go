// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/chain"
	"github.com/bitmark-inc/coinset/fault"
)

func TestValid(t *testing.T) {
	for _, name := range []string{chain.Mainnet, chain.Testnet, chain.Local, "MainNet"} {
		assert.True(t, chain.Valid(name), "chain: %s", name)
	}
	assert.False(t, chain.Valid("bitmark"), "unknown chain")
}

func TestParameters(t *testing.T) {
	m, err := chain.Get(chain.Mainnet)
	require.Nil(t, err, "mainnet")
	assert.Equal(t, "xch", m.AddressPrefix, "prefix")
	assert.Equal(t, uint16(8444), m.DefaultPort, "port")
	assert.Equal(t, 32, len(m.AdditionalData), "additional data")
	assert.False(t, chain.IsTestnet(chain.Mainnet), "mainnet is test")

	tn, err := chain.Get(chain.Testnet)
	require.Nil(t, err, "testnet")
	assert.Equal(t, "txch", tn.AddressPrefix, "prefix")
	assert.Equal(t, uint16(58444), tn.DefaultPort, "port")
	assert.True(t, chain.IsTestnet(chain.Testnet), "testnet is not test")

	// callers cannot alter the shared constants
	tn.AdditionalData[0] ^= 0xff
	again, _ := chain.Get(chain.Testnet)
	assert.NotEqual(t, tn.AdditionalData, again.AdditionalData, "shared data modified")

	_, err = chain.Get("nope")
	assert.Equal(t, fault.ErrInvalidChain, err, "unknown chain")
}
