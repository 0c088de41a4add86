// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
)

func TestScanFmt(t *testing.T) {
	stringDigest := "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"

	var d merkle.Digest
	n, err := fmt.Sscan(stringDigest, &d)
	require.Nil(t, err, "hex to digest")
	assert.Equal(t, 1, n, "scan count")

	assert.Equal(t, merkle.NewDigest([]byte{}), d, "empty input digest")
	assert.Equal(t, stringDigest, fmt.Sprintf("%s", d), "string")
	assert.Equal(t, "<SHA3-256:"+stringDigest+">", fmt.Sprintf("%#v", d), "go string")
}

func TestParts(t *testing.T) {
	whole := merkle.NewDigest([]byte("parent-puzzle-amount"))
	parts := merkle.NewDigestFromParts([]byte("parent-"), []byte("puzzle-"), []byte("amount"))
	assert.Equal(t, whole, parts, "concatenation differs")
	assert.False(t, whole.IsZero(), "zero digest")
	assert.True(t, merkle.Digest{}.IsZero(), "non-zero digest")
}

func TestJSON(t *testing.T) {
	d := merkle.NewDigest([]byte("launcher"))

	buffer, err := json.Marshal(struct{ Id merkle.Digest }{d})
	require.Nil(t, err, "marshal")

	var decoded struct{ Id merkle.Digest }
	err = json.Unmarshal(buffer, &decoded)
	require.Nil(t, err, "unmarshal")
	assert.Equal(t, d, decoded.Id, "round trip")
}

func TestFromHex(t *testing.T) {
	d := merkle.NewDigest([]byte("coin"))

	p, err := merkle.DigestFromHex("0x" + d.String())
	assert.Nil(t, err, "prefixed hex")
	assert.Equal(t, d, p, "prefixed value")

	_, err = merkle.DigestFromHex("abcd")
	assert.Equal(t, fault.ErrInvalidDigest, err, "short hex")

	var b merkle.Digest
	err = merkle.DigestFromBytes(&b, d[:31])
	assert.Equal(t, fault.ErrInvalidDigest, err, "short bytes")
}
