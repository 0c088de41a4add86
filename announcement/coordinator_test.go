// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package announcement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/bitmark-inc/coinset/announcement"
	"github.com/bitmark-inc/coinset/condition"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

// a creation in one spend and the matching assertion in another pass
// together and fail if either is removed
func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		creator := merkle.NewDigest(rapid.SliceOfN(rapid.Byte(), 1, 16).Draw(t, "creator"))
		asserter := merkle.NewDigest(rapid.SliceOfN(rapid.Byte(), 1, 16).Draw(t, "asserter"))
		message := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "message")
		puzzle := rapid.Bool().Draw(t, "puzzle")

		a := announcement.Announcement{Origin: creator, Message: message}
		var create, assertion condition.Condition
		if puzzle {
			create = condition.CreatePuzzleAnnouncement{Message: message}
			assertion = a.PuzzleAssertion()
		} else {
			create = condition.CreateCoinAnnouncement{Message: message}
			assertion = a.CoinAssertion()
		}

		both := announcement.NewCoordinator()
		both.Add(creator, []condition.Condition{create})
		both.Add(asserter, []condition.Condition{assertion})
		if nil != both.Validate() {
			t.Fatalf("matched pair rejected")
		}

		onlyAssert := announcement.NewCoordinator()
		onlyAssert.Add(asserter, []condition.Condition{assertion})
		if fault.ErrAnnouncementNotFound != onlyAssert.Validate() {
			t.Fatalf("assertion without creation accepted")
		}

		onlyCreate := announcement.NewCoordinator()
		onlyCreate.Add(creator, []condition.Condition{create})
		if nil != onlyCreate.Validate() {
			t.Fatalf("creation alone rejected")
		}
	})
}

func TestNamespaces(t *testing.T) {
	origin := merkle.NewDigest([]byte("did coin"))
	a := announcement.Announcement{Origin: origin, Message: []byte("launcher")}

	c := announcement.NewCoordinator()
	c.Add(origin, []condition.Condition{condition.CreateCoinAnnouncement{Message: a.Message}})
	c.Add(merkle.NewDigest([]byte("nft coin")), []condition.Condition{a.PuzzleAssertion()})

	missing := c.Missing()
	assert.Equal(t, 1, len(missing), "count")
	assert.True(t, missing[0].Puzzle, "kind")
	assert.Equal(t, a.Id(), missing[0].Id, "id")
}

func TestOriginMatters(t *testing.T) {
	c := announcement.NewCoordinator()
	c.Add(merkle.NewDigest([]byte("one")), []condition.Condition{condition.CreateCoinAnnouncement{Message: []byte("m")}})

	other := announcement.Announcement{Origin: merkle.NewDigest([]byte("two")), Message: []byte("m")}
	c.Add(merkle.NewDigest([]byte("three")), []condition.Condition{other.CoinAssertion()})
	assert.Equal(t, fault.ErrAnnouncementNotFound, c.Validate(), "origin ignored")
}
