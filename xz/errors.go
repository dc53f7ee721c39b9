// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

// Package xz decodes the xz container format: a stream header and footer
// framing one or more independently checksummed blocks, each holding data
// compressed with a single LZMA2 filter, followed by an index recording
// every block's sizes. The Reader verifies the index's padding and CRC32 and
// its length against the stream footer; it does not compare the index
// records with the blocks it decoded.
package xz

import "errors"

var (
	// ErrBadMagic indicates a stream header or footer did not start with
	// its required magic bytes.
	ErrBadMagic = errors.New("xz: bad magic bytes")

	// ErrBadReservedFlag indicates a reserved bit was set where the format
	// requires it to be zero, or a flags byte encoded a check-type nibble
	// the container format does not reserve at all.
	ErrBadReservedFlag = errors.New("xz: reserved flag bit set")

	// ErrUnsupportedFilter indicates a block's filter chain was not
	// exactly one LZMA2 filter with a single-byte properties field.
	ErrUnsupportedFilter = errors.New("xz: unsupported filter chain")

	// ErrBadCRC indicates a CRC32 embedded in stream framing did not match
	// the bytes it covers.
	ErrBadCRC = errors.New("xz: crc32 mismatch")

	// ErrBadPadding indicates a padding region contained a non-zero byte.
	ErrBadPadding = errors.New("xz: non-zero padding byte")

	// ErrBadChecksum indicates a block's decompressed content did not
	// match its recorded integrity check.
	ErrBadChecksum = errors.New("xz: block content failed its integrity check")

	// ErrStreamFooterMismatch indicates the stream footer's flags did not
	// match the stream header's.
	ErrStreamFooterMismatch = errors.New("xz: stream footer flags do not match stream header")
)
