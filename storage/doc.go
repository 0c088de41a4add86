// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk wallet store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. coin id      = 32 byte SHA3-256 coin identifier
// 4. launcher id  = coin id of the singleton launcher
// 5. bundle id    = SHA3-256 of the packed spend bundle
//
// Assets:
//
//   N ++ launcher id           - tracked NFT record
//                                data: packed tracker record
//
// Transactions:
//
//   T ++ bundle id             - submitted transactions
//                                data: packed transaction record
//
// Derivations:
//
//   K ++ index(uint32)         - derived standard puzzle hashes
//                                data: puzzle hash
//
// Testing:
//   Z ++ key                   - testing data
package storage
