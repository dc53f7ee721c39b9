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

// indexRecord mirrors one block's entry in the stream index: its
// compressed size excluding padding ("unpadded size") and its
// uncompressed size, both as recorded by the encoder rather than
// recomputed from the blocks themselves.
type indexRecord struct {
	unpaddedSize     uint64
	uncompressedSize uint64
}

// readIndex reads the index that follows the last block: a record count,
// that many pairs of sizes, zero padding to a 4-byte boundary, and a
// CRC32 over everything from the already-consumed index indicator byte
// through the padding.
func readIndex(r io.Reader) ([]indexRecord, error) {
	hasher := crc32.NewIEEE()
	hasher.Write([]byte{0x00}) // the index indicator byte, read by the caller
	tee := io.TeeReader(r, hasher)
	cr := xzio.NewCountedReader(tee)

	numRecords, err := xzio.ReadVarint(cr)
	if err != nil {
		return nil, err
	}
	records := make([]indexRecord, 0, numRecords)
	for i := uint64(0); i < numRecords; i++ {
		unpadded, err := xzio.ReadVarint(cr)
		if err != nil {
			return nil, err
		}
		uncompressed, err := xzio.ReadVarint(cr)
		if err != nil {
			return nil, err
		}
		records = append(records, indexRecord{unpaddedSize: unpadded, uncompressedSize: uncompressed})
	}

	consumed := 1 + cr.Count()
	padding := int((4 - consumed%4) % 4)
	padBuf := make([]byte, padding)
	if _, err := io.ReadFull(tee, padBuf); err != nil {
		return nil, fmt.Errorf("%w: index padding: %v", xzio.ErrTruncated, err)
	}
	for _, b := range padBuf {
		if b != 0 {
			return nil, fmt.Errorf("%w: index padding", ErrBadPadding)
		}
	}

	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: index crc32: %v", xzio.ErrTruncated, err)
	}
	if binary.LittleEndian.Uint32(crcBuf[:]) != hasher.Sum32() {
		return nil, fmt.Errorf("%w: index", ErrBadCRC)
	}

	return records, nil
}
