// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xz

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/MaxWipfli/xz/internal/xzio"
)

var streamHeaderMagic = [6]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// streamHeader is the 12-byte construct that opens every xz stream: six
// magic bytes, one reserved byte, one flags byte carrying the check type,
// and a CRC32 over the two flag bytes.
type streamHeader struct {
	check xzio.CheckType
}

func readStreamHeader(r io.Reader) (streamHeader, error) {
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return streamHeader{}, fmt.Errorf("%w: stream header: %v", xzio.ErrTruncated, err)
	}
	return parseStreamHeader(buf[:])
}

func parseStreamHeader(buf []byte) (streamHeader, error) {
	if len(buf) != 12 {
		panic("xz: parseStreamHeader requires exactly 12 bytes")
	}
	for i := range streamHeaderMagic {
		if buf[i] != streamHeaderMagic[i] {
			return streamHeader{}, ErrBadMagic
		}
	}
	if buf[6] != 0x00 {
		return streamHeader{}, fmt.Errorf("%w: stream header reserved byte", ErrBadReservedFlag)
	}
	check, err := verifyStreamFlags(buf[6], buf[7])
	if err != nil {
		return streamHeader{}, err
	}
	want := crc32.ChecksumIEEE(buf[6:8])
	if binary.LittleEndian.Uint32(buf[8:12]) != want {
		return streamHeader{}, fmt.Errorf("%w: stream header", ErrBadCRC)
	}
	return streamHeader{check: check}, nil
}

// verifyStreamFlags checks the two-byte flags field shared by the stream
// header and footer: the first byte must be all zero, and the second
// byte's high nibble must be zero, leaving only a well-formed check type in
// the low nibble.
func verifyStreamFlags(first, second byte) (xzio.CheckType, error) {
	if first != 0x00 {
		return 0, fmt.Errorf("%w: stream flags first byte", ErrBadReservedFlag)
	}
	if second&0xf0 != 0 {
		return 0, fmt.Errorf("%w: stream flags high nibble", ErrBadReservedFlag)
	}
	return xzio.CheckType(second), nil
}
