// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xz

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"testing"

	"github.com/MaxWipfli/xz/internal/xzio"
)

func validStreamHeader(check xzio.CheckType) []byte {
	buf := make([]byte, 12)
	copy(buf, streamHeaderMagic[:])
	buf[6] = 0x00
	buf[7] = byte(check)
	binary.LittleEndian.PutUint32(buf[8:], crc32.ChecksumIEEE(buf[6:8]))
	return buf
}

func TestParseStreamHeaderValid(t *testing.T) {
	buf := validStreamHeader(xzio.CheckCRC32)
	hdr, err := parseStreamHeader(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hdr.check != xzio.CheckCRC32 {
		t.Fatalf("check = %v, want CheckCRC32", hdr.check)
	}
}

func TestParseStreamHeaderBadMagic(t *testing.T) {
	buf := validStreamHeader(xzio.CheckNone)
	buf[0] = 0x00
	if _, err := parseStreamHeader(buf); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestParseStreamHeaderBadReserved(t *testing.T) {
	buf := validStreamHeader(xzio.CheckNone)
	buf[6] = 0x01
	if _, err := parseStreamHeader(buf); !errors.Is(err, ErrBadReservedFlag) {
		t.Fatalf("err = %v, want ErrBadReservedFlag", err)
	}
}

func TestParseStreamHeaderHighNibbleSet(t *testing.T) {
	buf := validStreamHeader(xzio.CheckNone)
	buf[7] = 0x10
	binary.LittleEndian.PutUint32(buf[8:], crc32.ChecksumIEEE(buf[6:8]))
	if _, err := parseStreamHeader(buf); !errors.Is(err, ErrBadReservedFlag) {
		t.Fatalf("err = %v, want ErrBadReservedFlag", err)
	}
}

func TestParseStreamHeaderBadCRC(t *testing.T) {
	buf := validStreamHeader(xzio.CheckCRC64)
	buf[8] ^= 0xff
	if _, err := parseStreamHeader(buf); !errors.Is(err, ErrBadCRC) {
		t.Fatalf("err = %v, want ErrBadCRC", err)
	}
}
