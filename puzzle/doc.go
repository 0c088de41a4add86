// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package puzzle - the puzzle templates used by the wallet
//
// A curried puzzle is the list (template-hash arg1 arg2 ...), so its
// tree hash can be computed from the hashes of its arguments alone.
//
// An NFT coin is locked by nested layers:
//
//	singleton(launcher id,
//	  state(metadata, updater hash,
//	    [ownership(launcher id, owner did,]
//	      p2 puzzle[)]))
//
// the p2 puzzle is normally the standard puzzle of a synthetic key.
package puzzle
