// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"context"
	"net"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/miekg/dns"

	"github.com/bitmark-inc/coinset/fault"
)

const (
	resolvConf     = "/etc/resolv.conf"
	maximumServers = 3
	dialTimeout    = 10 * time.Second
)

// Resolver - host name lookup with an optional pinned address
type Resolver struct {
	log     *logger.L
	servers []string
	pinned  fn.Option[net.IP]
	client  *dns.Client
	dialer  *net.Dialer
}

// SystemServers - name servers from resolv.conf as host:port
func SystemServers(log *logger.L) []string {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if nil != err {
		log.Warnf("reading %s error: %s", resolvConf, err)
		return nil
	}

	servers := conf.Servers
	// limit the nameservers to lookup
	// https://www.freebsd.org/cgi/man.cgi?resolv.conf
	if len(servers) > maximumServers {
		servers = servers[:maximumServers]
	}
	result := make([]string, 0, len(servers))
	for _, s := range servers {
		result = append(result, net.JoinHostPort(s, conf.Port))
	}
	return result
}

// NewResolver - resolver asking servers unless pinned is set
func NewResolver(log *logger.L, servers []string, pinned fn.Option[net.IP]) *Resolver {
	return &Resolver{
		log:     log,
		servers: servers,
		pinned:  pinned,
		client:  &dns.Client{},
		dialer:  &net.Dialer{Timeout: dialTimeout},
	}
}

// Pinned - resolver that answers every lookup with ip
func (r *Resolver) Pinned(ip net.IP) *Resolver {
	return NewResolver(r.log, r.servers, fn.Some(ip))
}

// Lookup - IPv4 addresses of host
func (r *Resolver) Lookup(ctx context.Context, host string) ([]net.IP, error) {
	if r.pinned.IsSome() {
		return []net.IP{r.pinned.UnsafeFromSome()}, nil
	}
	if ip := net.ParseIP(host); nil != ip {
		return []net.IP{ip}, nil
	}

	msg := dns.Msg{}
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)

	for _, server := range r.servers {
		reply, _, err := r.client.ExchangeContext(ctx, &msg, server)
		if nil != err {
			r.log.Debugf("exchange with dns server %q error: %s", server, err)
			continue
		}
		if dns.RcodeSuccess != reply.Rcode {
			r.log.Debugf("dns server %q: %q rcode: %s", server, host, dns.RcodeToString[reply.Rcode])
			continue
		}

		ips := make([]net.IP, 0, len(reply.Answer))
		for _, rr := range reply.Answer {
			if a, ok := rr.(*dns.A); ok {
				ips = append(ips, a.A)
			}
		}
		if 0 != len(ips) {
			return ips, nil
		}
	}
	return nil, fault.ErrNotFound
}

// DialContext - connect to host:port using the resolved address
//
// suitable for http.Transport.DialContext
func (r *Resolver) DialContext(ctx context.Context, network string, address string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(address)
	if nil != err {
		return nil, err
	}
	ips, err := r.Lookup(ctx, host)
	if nil != err {
		return nil, err
	}

	var lastErr error
	for _, ip := range ips {
		conn, err := r.dialer.DialContext(ctx, network, net.JoinHostPort(ip.String(), port))
		if nil == err {
			return conn, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
