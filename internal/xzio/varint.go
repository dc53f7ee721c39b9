// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xzio

import (
	"fmt"
	"io"
)

// maxVarintBytes is the maximum number of bytes a variable-length integer
// may occupy: 9 groups of 7 bits cover values of up to 63 bits.
const maxVarintBytes = 9

// ReadVarint reads one variable-length integer: each byte contributes its
// low 7 bits, least-significant group first, with the high bit of a byte
// signaling that another byte follows. An encoding is malformed if it runs
// past nine bytes, or if a non-leading terminating byte is zero (such a
// byte never narrows the value, so it can never appear in the canonical
// encoding of anything).
func ReadVarint(r io.ByteReader) (uint64, error) {
	var value uint64
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: variable-length integer: %v", ErrTruncated, err)
		}
		value |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			if i > 0 && b == 0 {
				return 0, fmt.Errorf("%w: non-canonical terminating byte", ErrMalformedInteger)
			}
			return value, nil
		}
	}
	return 0, fmt.Errorf("%w: exceeds %d bytes", ErrMalformedInteger, maxVarintBytes)
}
