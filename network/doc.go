// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package network - name resolution and reachability of pool servers
//
// a Resolver either answers every lookup with one pinned IP or asks
// DNS, a Prober finds which of a set of pinned IPs can currently reach
// a URL and hands it back to the caller
package network
