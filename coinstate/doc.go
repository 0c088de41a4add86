// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coinstate - access to the ledger's view of coins
//
// a Source answers coin state and historical spend queries, Cache
// keeps the immutable (spent) answers and Ledger is an in-memory
// ledger that accepts spend bundles and serves as a Source
package coinstate
