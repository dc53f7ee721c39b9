// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xzio

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"
	"hash/crc64"
)

// CheckType identifies the integrity check attached to each xz block, as
// carried in the low nibble of the stream header/footer flags byte.
type CheckType byte

// Recognized check types. Values up to 0x0f are reserved by the container
// format; anything above that is not well-formed.
const (
	CheckNone   CheckType = 0x00
	CheckCRC32  CheckType = 0x01
	CheckCRC64  CheckType = 0x04
	CheckSHA256 CheckType = 0x0a
)

// Size returns the number of bytes the check digest occupies in a block
// footer's check field.
func (c CheckType) Size() int {
	switch c {
	case CheckNone:
		return 0
	case CheckCRC32:
		return 4
	case CheckCRC64:
		return 8
	case CheckSHA256:
		return 32
	default:
		return 0
	}
}

// WellFormed reports whether c fits the four-bit check-type field, that is,
// whether it is one of the values up to 0x0f the container format reserves.
func (c CheckType) WellFormed() bool {
	return c <= 0x0f
}

// Digest accumulates a block's decompressed bytes under a given CheckType
// and produces the running digest to compare against the block's recorded
// check value. It replaces a virtual-interface hierarchy of checksum
// objects with a single concrete type switching on CheckType, since Go has
// no use for a dynamic-dispatch base class here.
type Digest struct {
	typ CheckType
	h   hash.Hash
}

var crc64Table = crc64.MakeTable(crc64.ECMA)

// NewDigest returns a Digest for typ, or ErrUnsupportedCheck if typ is
// well-formed but this implementation cannot verify it (SHA-256), or if typ
// is not a recognized check type at all.
func NewDigest(typ CheckType) (*Digest, error) {
	switch typ {
	case CheckNone:
		return &Digest{typ: typ}, nil
	case CheckCRC32:
		return &Digest{typ: typ, h: crc32.NewIEEE()}, nil
	case CheckCRC64:
		return &Digest{typ: typ, h: crc64.New(crc64Table)}, nil
	default:
		return nil, fmt.Errorf("%w: check type 0x%02x", ErrUnsupportedCheck, byte(typ))
	}
}

// Write feeds decompressed bytes into the digest.
func (d *Digest) Write(p []byte) {
	if d.h != nil {
		d.h.Write(p)
	}
}

// Sum returns the current digest value, in the same byte order the xz
// format stores it in (both CRC variants are little-endian, unlike the
// big-endian convention hash.Hash32/hash.Hash64 use for Sum).
func (d *Digest) Sum() []byte {
	switch h := d.h.(type) {
	case nil:
		return nil
	case hash.Hash32:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, h.Sum32())
		return buf
	case hash.Hash64:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, h.Sum64())
		return buf
	default:
		return d.h.Sum(nil)
	}
}
