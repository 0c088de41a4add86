// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/coinset/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		assert.Equal(t, item.encoded, util.ToVarint64(item.value), "%d: encode %x", i, item.value)

		// trailing data must be left alone
		b := append(append([]byte{}, item.encoded...), 0xff, 0x97)
		value, count := util.FromVarint64(b)
		assert.Equal(t, item.value, value, "%d: decode", i)
		assert.Equal(t, len(item.encoded), count, "%d: count", i)
	}
}

func TestVarint64Truncated(t *testing.T) {
	for i, b := range [][]byte{{}, {0x80}, {0xff, 0xff, 0xff}} {
		value, count := util.FromVarint64(b)
		assert.Equal(t, uint64(0), value, "%d: value", i)
		assert.Equal(t, 0, count, "%d: count", i)
	}
}

func TestBytes(t *testing.T) {
	buffer := util.AppendBytes(nil, []byte("memo"))
	buffer = util.AppendBytes(buffer, nil)

	data, n := util.FromBytes(buffer)
	assert.Equal(t, []byte("memo"), data, "first")
	assert.Equal(t, 5, n, "first length")

	data, m := util.FromBytes(buffer[n:])
	assert.Equal(t, []byte{}, data, "empty")
	assert.Equal(t, 1, m, "empty length")

	data, n = util.FromBytes([]byte{0x05, 'a'})
	assert.Nil(t, data, "truncated")
	assert.Equal(t, 0, n, "truncated length")
}
