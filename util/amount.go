// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math/bits"
)

// AddAmount - sum of two amounts, false if it does not fit in 64 bits
func AddAmount(total uint64, amount uint64) (uint64, bool) {
	sum, carry := bits.Add64(total, amount, 0)
	return sum, 0 == carry
}
