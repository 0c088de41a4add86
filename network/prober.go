// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/coinset/fault"
)

const (
	requestTimeout = 15 * time.Second
)

// Prober - find an address from which a URL is consistently reachable
type Prober struct {
	log      *logger.L
	resolver *Resolver
	url      string
	ips      []net.IP
	attempts int
	limiter  *rate.Limiter
}

// NewProber - probe url through each of ips, attempts times each
func NewProber(log *logger.L, resolver *Resolver, url string, ips []string, attempts int, limiter *rate.Limiter) (*Prober, error) {
	if attempts <= 0 {
		return nil, fault.ErrInvalidCount
	}
	parsed := make([]net.IP, 0, len(ips))
	for _, s := range ips {
		ip := net.ParseIP(s)
		if nil == ip {
			return nil, fault.ErrInvalidIPAddress
		}
		parsed = append(parsed, ip)
	}
	return &Prober{
		log:      log,
		resolver: resolver,
		url:      url,
		ips:      parsed,
		attempts: attempts,
		limiter:  limiter,
	}, nil
}

// Probe - the first address for which every attempt succeeds
func (p *Prober) Probe(ctx context.Context) (net.IP, error) {
	for _, ip := range p.ips {
		err := p.try(ctx, ip)
		if nil == err {
			return ip, nil
		}
		if nil != ctx.Err() {
			return nil, ctx.Err()
		}
		p.log.Errorf("probe: %s  via: %s  error: %s", p.url, ip, err)
	}
	return nil, fault.ErrNoReachableIP
}

// Run - probe every interval until ctx is done, passing each working
// address to found
func (p *Prober) Run(ctx context.Context, interval time.Duration, found func(net.IP)) {
	for {
		ip, err := p.Probe(ctx)
		if nil == err {
			p.log.Infof("probe result: %s", ip)
			found(ip)
		} else {
			p.log.Warnf("probe error: %s", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func (p *Prober) try(ctx context.Context, ip net.IP) error {
	client := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DialContext:       p.resolver.Pinned(ip).DialContext,
			DisableKeepAlives: true,
		},
	}

	for i := 0; i < p.attempts; i += 1 {
		if err := p.limiter.Wait(ctx); nil != err {
			return err
		}
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
		if nil != err {
			return err
		}
		response, err := client.Do(request)
		if nil != err {
			return err
		}
		_, _ = io.Copy(io.Discard, response.Body)
		response.Body.Close()
		if response.StatusCode < 200 || response.StatusCode > 299 {
			return fmt.Errorf("status: %s", response.Status)
		}
	}
	return nil
}
