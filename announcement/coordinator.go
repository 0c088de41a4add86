// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package announcement

import (
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

// Coordinator - matches announcement assertions against creations
// within one bundle
//
// coin and puzzle announcements are separate namespaces, an assertion
// is only satisfied by a creation of its own kind
type Coordinator struct {
	coinCreated    map[merkle.Digest]struct{}
	puzzleCreated  map[merkle.Digest]struct{}
	coinAsserted   []assertion
	puzzleAsserted []assertion
}

type assertion struct {
	id merkle.Digest
	by merkle.Digest
}

// Missing - an assertion that no spend satisfied
type Missing struct {
	Id     merkle.Digest
	CoinId merkle.Digest
	Puzzle bool
}

// NewCoordinator - empty coordinator for one bundle
func NewCoordinator() *Coordinator {
	return &Coordinator{
		coinCreated:   make(map[merkle.Digest]struct{}),
		puzzleCreated: make(map[merkle.Digest]struct{}),
	}
}

// Add - record the announcements created and asserted by one spend
func (c *Coordinator) Add(coinId merkle.Digest, conditions []condition.Condition) {
	for _, cond := range conditions {
		switch a := cond.(type) {
		case condition.CreateCoinAnnouncement:
			c.coinCreated[Announcement{Origin: coinId, Message: a.Message}.Id()] = struct{}{}
		case condition.CreatePuzzleAnnouncement:
			c.puzzleCreated[Announcement{Origin: coinId, Message: a.Message}.Id()] = struct{}{}
		case condition.AssertCoinAnnouncement:
			c.coinAsserted = append(c.coinAsserted, assertion{id: a.Id, by: coinId})
		case condition.AssertPuzzleAnnouncement:
			c.puzzleAsserted = append(c.puzzleAsserted, assertion{id: a.Id, by: coinId})
		}
	}
}

// Missing - all unsatisfied assertions in the order they were added
func (c *Coordinator) Missing() []Missing {
	var missing []Missing
	for _, a := range c.coinAsserted {
		if _, ok := c.coinCreated[a.id]; !ok {
			missing = append(missing, Missing{Id: a.id, CoinId: a.by})
		}
	}
	for _, a := range c.puzzleAsserted {
		if _, ok := c.puzzleCreated[a.id]; !ok {
			missing = append(missing, Missing{Id: a.id, CoinId: a.by, Puzzle: true})
		}
	}
	return missing
}

// Validate - fail if any assertion is unsatisfied
func (c *Coordinator) Validate() error {
	if 0 != len(c.Missing()) {
		return fault.ErrAnnouncementNotFound
	}
	return nil
}
