// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/coinset/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingArgument = fault.InvalidError("missing argument")
	ErrMissingSeed     = fault.NotFoundError("wallet seed is not configured")
	ErrProbeDisabled   = fault.InvalidError("probe is not enabled")
	ErrUnknownPool     = fault.NotFoundError("storage pool not found")
)
