// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/coinset/chain"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the configuration file

	defaultLevelDBDirectory = "data"
	defaultDatabaseSuffix   = ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "coinset.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultPeerCount     = 3
	defaultDerivations   = 10
	defaultTrustedNodeId = "trusted_node_1"
	defaultTrustedCert   = "ssl/full_node/public_full_node.crt"

	defaultProbeAttempts = 5
	defaultProbeInterval = 60 // seconds
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		"config":          "info",
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the wallet store
type DatabaseType struct {
	Directory string `gluamapper:"directory"`
	Name      string `gluamapper:"name"`
}

// NodeType - a full node to connect to
type NodeType struct {
	Host string `gluamapper:"host"`
	Port int    `gluamapper:"port"`
}

// WalletType - wallet behaviour
type WalletType struct {
	Seed            string            `gluamapper:"seed"`
	Fee             uint64            `gluamapper:"fee"`
	Derivations     int               `gluamapper:"derivations"`
	TargetPeerCount int               `gluamapper:"target_peer_count"`
	FullNodePeers   []NodeType        `gluamapper:"full_node_peers"`
	TrustedPeers    map[string]string `gluamapper:"trusted_peers"`
	Options         map[string]string `gluamapper:"options"`
}

// ProbeType - reachability testing of pinned pool addresses
type ProbeType struct {
	Enabled  bool     `gluamapper:"enabled"`
	URL      string   `gluamapper:"url"`
	IPs      []string `gluamapper:"ips"`
	Attempts int      `gluamapper:"attempts"`
	Interval int      `gluamapper:"interval"`
}

// Configuration - everything read from the configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory"`
	Chain         string               `gluamapper:"chain"`
	Database      DatabaseType         `gluamapper:"database"`
	Wallet        WalletType           `gluamapper:"wallet"`
	Probe         ProbeType            `gluamapper:"probe"`
	Logging       logger.Configuration `gluamapper:"logging"`
}

// Get - read decode and verify the configuration
//
// environ is a list of KEY=value strings, normally os.Environ()
func Get(configurationFileName string, environ []string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Chain:         chain.Mainnet,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
		},

		Wallet: WalletType{
			Derivations:     defaultDerivations,
			TargetPeerCount: defaultPeerCount,
			TrustedPeers:    make(map[string]string),
			Options:         make(map[string]string),
		},

		Probe: ProbeType{
			Attempts: defaultProbeAttempts,
			Interval: defaultProbeInterval,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    make(LoglevelMap, len(defaultLogLevels)),
		},
	}

	for tag, level := range defaultLogLevels {
		options.Logging.Levels[tag] = level
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if err := ApplyEnvironment(options, environ); nil != err {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	if "" == options.Database.Name {
		options.Database.Name = options.Chain + defaultDatabaseSuffix
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for id := range options.Wallet.TrustedPeers {
		crt := options.Wallet.TrustedPeers[id]
		options.Wallet.TrustedPeers[id] = ensureAbsolute(options.DataDirectory, crt)
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names i.e. must not contain path seperator
	// then add the correct directory prefix, file item is first and corresponding directory is second
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, &options.Logging.Directory},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			*f[0] = ensureAbsolute(*f[1], *f[0])
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	return options, nil
}

// NodePort - configured port of the first full node, or the chain default
func (c *Configuration) NodePort() int {
	if 0 != len(c.Wallet.FullNodePeers) && 0 != c.Wallet.FullNodePeers[0].Port {
		return c.Wallet.FullNodePeers[0].Port
	}
	p, err := chain.Get(c.Chain)
	if nil != err {
		return 0
	}
	return int(p.DefaultPort)
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
