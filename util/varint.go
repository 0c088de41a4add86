// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// AppendVarint64 - append the Varint64 encoding of a value
//
// the first eight bytes hold seven bits each with the top bit as a
// continuation flag, a ninth byte (if needed) holds the last eight bits
func AppendVarint64(buffer []byte, value uint64) []byte {
	for i := 1; i < Varint64MaximumBytes; i += 1 {
		if value < 0x80 {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value)|0x80)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// FromVarint64 - decode a Varint64 from the start of a buffer
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)
	for i, b := range buffer {
		if i == Varint64MaximumBytes-1 {
			return result | uint64(b)<<(7*uint(i)), i + 1
		}
		result |= uint64(b&0x7f) << (7 * uint(i))
		if 0 == b&0x80 {
			return result, i + 1
		}
	}
	return 0, 0
}

// AppendBytes - append a Varint64 length followed by the bytes
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// FromBytes - decode a length prefixed byte string
//
// returns nil, 0 if buffer is truncated
func FromBytes(buffer []byte) ([]byte, int) {
	length, n := FromVarint64(buffer)
	if 0 == n || uint64(len(buffer)-n) < length {
		return nil, 0
	}
	end := n + int(length)
	data := make([]byte, length)
	copy(data, buffer[n:end])
	return data, end
}
