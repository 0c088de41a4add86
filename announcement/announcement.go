// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package announcement

import (
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/merkle"
)

// Announcement - a message published by a coin during its spend
//
// the origin is the id of the coin whose spend creates it
type Announcement struct {
	Origin  merkle.Digest
	Message []byte
}

// Id - sha3-256(origin ‖ message)
func (a Announcement) Id() merkle.Digest {
	return merkle.NewDigestFromParts(a.Origin[:], a.Message)
}

// CoinAssertion - condition requiring this as a coin announcement
func (a Announcement) CoinAssertion() condition.AssertCoinAnnouncement {
	return condition.AssertCoinAnnouncement{Id: a.Id()}
}

// PuzzleAssertion - condition requiring this as a puzzle announcement
func (a Announcement) PuzzleAssertion() condition.AssertPuzzleAnnouncement {
	return condition.AssertPuzzleAnnouncement{Id: a.Id()}
}
