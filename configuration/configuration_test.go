// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/configuration"
	"github.com/bitmark-inc/coinset/fault"
)

const sample = `
local M = {}

M.data_directory = "."
M.chain = "testnet10"

M.wallet = {
    fee = 100,
    derivations = 4,
    full_node_peers = {
        { host = "node.example.com", port = 1234 },
    },
    options = {
        colour = "blue",
    },
}

M.probe = {
    enabled = true,
    url = "https://pool.example.com/pool_info",
    ips = { "188.114.97.3", "188.114.96.3" },
}

M.logging = {
    size = 2048,
    levels = {
        tracker = "debug",
    },
}

return M
`

func write(t *testing.T, text string) string {
	name := filepath.Join(t.TempDir(), "coinset.conf")
	require.Nil(t, os.WriteFile(name, []byte(text), 0o600), "write")
	return name
}

func TestGet(t *testing.T) {
	name := write(t, sample)
	dir := filepath.Dir(name)

	c, err := configuration.Get(name, nil)
	require.Nil(t, err, "get")

	assert.Equal(t, "testnet10", c.Chain, "chain")
	assert.Equal(t, filepath.Join(dir, "data", "testnet10.leveldb"), c.Database.Name, "database")
	assert.Equal(t, filepath.Join(dir, "log", "coinset.log"), c.Logging.File, "log file")
	assert.Equal(t, 2048, c.Logging.Size, "log size")
	assert.Equal(t, "debug", c.Logging.Levels["tracker"], "tracker level")
	assert.Equal(t, "critical", c.Logging.Levels[logger.DefaultTag], "default level")

	assert.Equal(t, uint64(100), c.Wallet.Fee, "fee")
	assert.Equal(t, 4, c.Wallet.Derivations, "derivations")
	assert.Equal(t, 3, c.Wallet.TargetPeerCount, "peer count")
	assert.Equal(t, "blue", c.Wallet.Options["colour"], "option")
	assert.Equal(t, 1234, c.NodePort(), "node port")
	assert.Equal(t, filepath.Join(dir, "ssl/full_node/public_full_node.crt"), c.Wallet.TrustedPeers["trusted_node_1"], "trusted cert")

	assert.True(t, c.Probe.Enabled, "probe")
	assert.Equal(t, []string{"188.114.97.3", "188.114.96.3"}, c.Probe.IPs, "probe ips")
	assert.Equal(t, 5, c.Probe.Attempts, "probe attempts")
}

func TestEnvironmentOverrides(t *testing.T) {
	name := write(t, sample)

	c, err := configuration.Get(name, []string{
		"COINSET_CHAIN=MAINNET",
		"COINSET_LOG_LEVEL=WARNING",
		"COINSET_NODE_HOST=10.0.0.1",
		"COINSET_PEER_COUNT=7",
		"COINSET_TRUSTED_NODE_ID=mine",
		"COINSET_TRUSTED_NODE_CRT=/etc/node.crt",
		"COINSET_WALLET_FEE=5",
		"COINSET_WALLET_AUTOMATIC=true",
		"UNRELATED=1",
	})
	require.Nil(t, err, "get")

	assert.Equal(t, "mainnet", c.Chain, "chain")
	assert.Equal(t, "warning", c.Logging.Levels[logger.DefaultTag], "log level")
	assert.Equal(t, []configuration.NodeType{{Host: "10.0.0.1", Port: 8444}}, c.Wallet.FullNodePeers, "node")
	assert.Equal(t, 7, c.Wallet.TargetPeerCount, "peer count")
	assert.Equal(t, "/etc/node.crt", c.Wallet.TrustedPeers["mine"], "trusted cert")
	assert.Equal(t, uint64(5), c.Wallet.Fee, "fee")
	assert.Equal(t, "true", c.Wallet.Options["automatic"], "option")
}

func TestTestnetDefaultPort(t *testing.T) {
	c := &configuration.Configuration{Chain: "testnet10"}
	err := configuration.ApplyEnvironment(c, []string{"COINSET_NODE_HOST=node"})
	require.Nil(t, err, "apply")
	assert.Equal(t, 58444, c.NodePort(), "port")
}

func TestEnvironmentErrors(t *testing.T) {
	for _, environ := range [][]string{
		{"COINSET_NODE_HOST=node", "COINSET_NODE_PORT=abc"},
		{"COINSET_PEER_COUNT=many"},
		{"COINSET_WALLET_FEE=-1"},
		{"COINSET_WALLET_FULL_NODE_PEERS=x"},
	} {
		err := configuration.ApplyEnvironment(&configuration.Configuration{}, environ)
		assert.NotNil(t, err, "accepted: %v", environ)
	}
}

func TestBadConfiguration(t *testing.T) {
	_, err := configuration.Get(write(t, `return { chain = "bitmark" }`), nil)
	assert.NotNil(t, err, "unknown chain accepted")

	_, err = configuration.Get(write(t, `x = 1`), nil)
	assert.Equal(t, fault.ErrNoConfigurationTable, err, "no table")
}
