// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/MaxWipfli/xz/internal/xzio"
)

// lzma2FilterID is the only filter ID this decoder accepts in a block's
// filter chain.
const lzma2FilterID = 0x21

// errIndexIndicator is returned internally by readBlockHeader when the
// leading size byte is 0x00, which means what follows is the stream's
// index rather than another block.
var errIndexIndicator = errors.New("xz: index indicator")

// blockHeader holds the fields of a parsed block header that the rest of
// the block's decode needs.
type blockHeader struct {
	compressedSize   *uint64
	uncompressedSize *uint64
	lzma2Properties  byte
}

// readBlockHeader reads one block header (or detects the index indicator)
// from r. The header's declared length is read upfront, so its full bytes
// can be buffered and parsed from a plain slice instead of threading a
// live reader through each field.
func readBlockHeader(r io.Reader) (*blockHeader, error) {
	var sizeByte [1]byte
	if _, err := io.ReadFull(r, sizeByte[:]); err != nil {
		return nil, fmt.Errorf("%w: block header size: %v", xzio.ErrTruncated, err)
	}
	if sizeByte[0] == 0x00 {
		return nil, errIndexIndicator
	}

	headerLen := (int(sizeByte[0]) + 1) * 4
	full := make([]byte, headerLen)
	full[0] = sizeByte[0]
	if _, err := io.ReadFull(r, full[1:]); err != nil {
		return nil, fmt.Errorf("%w: block header body: %v", xzio.ErrTruncated, err)
	}

	want := crc32.ChecksumIEEE(full[:headerLen-4])
	if binary.LittleEndian.Uint32(full[headerLen-4:]) != want {
		return nil, fmt.Errorf("%w: block header", ErrBadCRC)
	}

	return parseBlockHeaderFields(full[1 : headerLen-4])
}

func parseBlockHeaderFields(body []byte) (*blockHeader, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: block header too short for flags byte", ErrBadPadding)
	}
	flags := body[0]
	if flags&0x3c != 0 {
		return nil, fmt.Errorf("%w: block flags reserved bits", ErrBadReservedFlag)
	}

	br := bytes.NewReader(body[1:])
	bh := &blockHeader{}
	if flags&0x40 != 0 {
		v, err := xzio.ReadVarint(br)
		if err != nil {
			return nil, err
		}
		bh.compressedSize = &v
	}
	if flags&0x80 != 0 {
		v, err := xzio.ReadVarint(br)
		if err != nil {
			return nil, err
		}
		bh.uncompressedSize = &v
	}

	numFilters := int(flags&0x03) + 1
	if numFilters != 1 {
		return nil, fmt.Errorf("%w: %d filters in chain, only a single LZMA2 filter is supported", ErrUnsupportedFilter, numFilters)
	}
	filterID, err := xzio.ReadVarint(br)
	if err != nil {
		return nil, err
	}
	if filterID != lzma2FilterID {
		return nil, fmt.Errorf("%w: filter id 0x%x", ErrUnsupportedFilter, filterID)
	}
	propsLen, err := xzio.ReadVarint(br)
	if err != nil {
		return nil, err
	}
	if propsLen != 1 {
		return nil, fmt.Errorf("%w: lzma2 filter properties length %d, want 1", ErrUnsupportedFilter, propsLen)
	}
	propsByte, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: lzma2 filter properties: %v", xzio.ErrTruncated, err)
	}
	bh.lzma2Properties = propsByte

	remainder := make([]byte, br.Len())
	if _, err := io.ReadFull(br, remainder); err != nil {
		return nil, fmt.Errorf("%w: block header padding: %v", xzio.ErrTruncated, err)
	}
	for _, b := range remainder {
		if b != 0 {
			return nil, fmt.Errorf("%w: block header padding", ErrBadPadding)
		}
	}

	return bh, nil
}

// lzma2DictSize decodes an LZMA2 filter properties byte into the filter's
// dictionary (window) size, per the classic LZMA2 encoding: byte 40 means
// the maximum possible size, and every other value 0-39 packs a 2-or-3
// mantissa with a shift amount.
func lzma2DictSize(b byte) (uint32, error) {
	if b > 40 {
		return 0, fmt.Errorf("%w: lzma2 dictionary size byte %d", ErrUnsupportedFilter, b)
	}
	if b == 40 {
		return 0xffffffff, nil
	}
	mantissa := uint32(2 | (uint32(b) & 1))
	return mantissa << (uint32(b)/2 + 11), nil
}
