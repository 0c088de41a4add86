// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"net"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/urfave/cli"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/coinset/network"
)

const (
	lookupTimeout = 10 * time.Second
	probeRate     = time.Second
)

type probeItem struct {
	URL string `json:"url"`
	IP  string `json:"ip"`
}

func runLookup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	host := c.Args().First()
	if "" == host {
		return ErrMissingArgument
	}

	resolver := network.NewResolver(m.log, network.SystemServers(m.log), fn.None[net.IP]())

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	ips, err := resolver.Lookup(ctx, host)
	if nil != err {
		return err
	}

	result := make([]string, 0, len(ips))
	for _, ip := range ips {
		result = append(result, ip.String())
	}
	return printJson(m.w, result)
}

// probe each configured address in turn
func runProbe(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	probe := m.config.Probe

	if !probe.Enabled {
		return ErrProbeDisabled
	}

	resolver := network.NewResolver(m.log, network.SystemServers(m.log), fn.None[net.IP]())
	limiter := rate.NewLimiter(rate.Every(probeRate), 1)
	prober, err := network.NewProber(m.log, resolver, probe.URL, probe.IPs, probe.Attempts, limiter)
	if nil != err {
		return err
	}

	timeout := time.Duration(probe.Interval) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ip, err := prober.Probe(ctx)
	if nil != err {
		return err
	}
	return printJson(m.w, probeItem{
		URL: probe.URL,
		IP:  ip.String(),
	})
}
