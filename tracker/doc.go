// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tracker - follow NFT singletons from generation to generation
//
// one Record is kept per launcher id, holding the current coin of the
// singleton with the lineage proof needed to spend it.  An observed
// spend of a tracked coin is resolved into the record of its child, or
// into nothing when the asset has left this wallet.
//
// Reads are served from an immutable snapshot, mutations are
// serialised and replace the snapshot, and every mutation is written
// through to the Persister as the whole record set.
package tracker
