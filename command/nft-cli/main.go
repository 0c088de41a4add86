// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/coinset/chain"
	"github.com/bitmark-inc/coinset/configuration"
	"github.com/bitmark-inc/coinset/storage"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	chain   chain.Parameters
	logging bool
	verbose bool
	db      *storage.Database
	log     *logger.L
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := newApp(os.Stdout, os.Stderr, true)
	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}

// the command line application, logging is only started when the
// flag is set
func newApp(w io.Writer, e io.Writer, logging bool) *cli.App {

	app := cli.NewApp()
	app.Name = "nft-cli"
	app.Usage = "inspect and maintain an NFT wallet store"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "coinset.conf",
			Usage: " configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "nfts",
			Usage:  "list tracked NFTs",
			Action: runNFTs,
		},
		{
			Name:   "transactions",
			Usage:  "list submitted transactions",
			Action: runTransactions,
		},
		{
			Name:      "encode",
			Usage:     "address of a hex puzzle hash or launcher id",
			ArgsUsage: "HEX\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "nft, n",
					Usage: " encode a launcher id as an NFT id",
				},
			},
			Action: runEncode,
		},
		{
			Name:      "decode",
			Usage:     "prefix and hex digest of an address or NFT id",
			ArgsUsage: "ADDRESS",
			Action:    runDecode,
		},
		{
			Name:      "derive",
			Usage:     "derive receive addresses from the configured seed and store them",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " number of keys `COUNT` [configured derivations]",
				},
			},
			Action: runDerive,
		},
		{
			Name:      "lookup",
			Usage:     "IPv4 addresses of a host from the system name servers",
			ArgsUsage: "HOST",
			Action:    runLookup,
		},
		{
			Name:   "probe",
			Usage:  "find a configured pool address that reaches the probe URL",
			Action: runProbe,
		},
		{
			Name:      "dump",
			Usage:     "hex dump of a storage pool",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "pool, p",
					Value: "",
					Usage: "*pool `NAME`, one of the storage pools",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 100,
					Usage: " maximum records `COUNT`",
				},
			},
			Action: runDump,
		},
		{
			Name:  "version",
			Usage: "display nft-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "" == command {
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.Get(file, os.Environ())
		if nil != err {
			return err
		}
		parameters, err := chain.Get(config.Chain)
		if nil != err {
			return err
		}

		if logging {
			if err := logger.Initialise(config.Logging); nil != err {
				return err
			}
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  config,
			chain:   parameters,
			logging: logging,
			verbose: verbose,
			log:     logger.New("main"),
			e:       e,
			w:       c.App.Writer,
		}
		return nil
	}

	// release the store and the log
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if nil != m.db {
			m.db.Close()
			m.db = nil
		}
		if m.logging {
			logger.Finalise()
		}
		return nil
	}

	return app
}

// open the wallet store once per run
func (m *metadata) open(readOnly bool) (*storage.Database, error) {
	if nil != m.db {
		return m.db, nil
	}
	if m.verbose {
		fmt.Fprintf(m.e, "database: %s\n", m.config.Database.Name)
	}
	db, err := storage.Open(m.log, m.config.Database.Name, readOnly)
	if nil != err {
		return nil, err
	}
	m.db = db
	return db, nil
}
