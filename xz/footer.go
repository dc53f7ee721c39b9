// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xz

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/MaxWipfli/xz/internal/xzio"
)

var streamFooterMagic = [2]byte{'Y', 'Z'}

// streamFooter is the 12-byte construct that closes every xz stream: a
// CRC32 over the two fields that follow it, the backward size (the index's
// length in 4-byte units, minus one), the same two flag bytes the stream
// header carries, and two magic bytes.
type streamFooter struct {
	check        xzio.CheckType
	backwardSize uint64 // index size in bytes, decoded from the stored field
}

func parseStreamFooter(buf []byte) (streamFooter, error) {
	if len(buf) != 12 {
		panic("xz: parseStreamFooter requires exactly 12 bytes")
	}
	if buf[10] != streamFooterMagic[0] || buf[11] != streamFooterMagic[1] {
		return streamFooter{}, ErrBadMagic
	}
	check, err := verifyStreamFlags(buf[8], buf[9])
	if err != nil {
		return streamFooter{}, err
	}
	want := crc32.ChecksumIEEE(buf[4:10])
	if binary.LittleEndian.Uint32(buf[0:4]) != want {
		return streamFooter{}, fmt.Errorf("%w: stream footer", ErrBadCRC)
	}
	backwardSize := (uint64(binary.LittleEndian.Uint32(buf[4:8])) + 1) * 4
	return streamFooter{check: check, backwardSize: backwardSize}, nil
}
