// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.
//
// after the file is read COINSET_ environment variables override the
// node, peer and wallet settings
package configuration
