// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package lzma2

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/MaxWipfli/xz/internal/xzio"
	"github.com/MaxWipfli/xz/lzma"
)

// Reader decodes an LZMA2 chunk stream into its uncompressed bytes. It
// implements io.Reader, parsing one chunk at a time from src and draining
// the shared dictionary into the caller's buffer as bytes become available.
//
// A chunk's declared uncompressed size (up to 2 MiB for an LZMA-coded chunk,
// 64 KiB for an uncompressed one) can exceed the dictionary's window size,
// so a chunk is never decoded in one piece: uncompressed and rc/remaining
// hold whatever work is still in progress on the current chunk, resumed a
// little at a time as the caller drains the dictionary between calls.
type Reader struct {
	src      io.Reader
	dec      *lzma.Decoder
	propsSet bool
	eof      bool

	uncompressed []byte             // unconsumed bytes of an in-progress uncompressed chunk
	rc           *lzma.RangeDecoder // in-progress LZMA chunk's range decoder, nil when none active
	remaining    uint32             // bytes rc still owes toward the current chunk's declared size
}

// NewReader returns a Reader that decodes chunks read from src into a
// dictionary of the given window size.
func NewReader(src io.Reader, dictSize uint32) *Reader {
	return &Reader{src: src, dec: lzma.NewDecoder(dictSize)}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if n := r.dec.Dictionary().Drain(p); n > 0 {
			return n, nil
		}
		switch {
		case len(r.uncompressed) > 0:
			if err := r.resumeUncompressed(); err != nil {
				return 0, err
			}
		case r.rc != nil:
			if err := r.resumeLZMA(); err != nil {
				return 0, err
			}
		case r.eof:
			return 0, io.EOF
		default:
			if err := r.advance(); err != nil {
				return 0, err
			}
		}
	}
}

func wrapTruncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: lzma2: %v", xzio.ErrTruncated, err)
	}
	return err
}

func readBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wrapTruncated(err)
	}
	return buf, nil
}

// advance parses a single chunk's control byte and header fields, and
// leaves the chunk's payload as in-progress work (uncompressed, or rc plus
// remaining) for resumeUncompressed/resumeLZMA to drain incrementally. It
// never decodes payload bytes itself.
func (r *Reader) advance() error {
	ctrl, err := readBytes(r.src, 1)
	if err != nil {
		return err
	}
	switch {
	case ctrl[0] == 0x00:
		r.eof = true
		return nil
	case ctrl[0] == 0x01:
		r.dec.Dictionary().Reset()
		return r.beginUncompressedChunk()
	case ctrl[0] == 0x02:
		return r.beginUncompressedChunk()
	case ctrl[0] < 0x80:
		return fmt.Errorf("%w: 0x%02x", ErrBadControlByte, ctrl[0])
	default:
		return r.beginLZMAChunk(ctrl[0])
	}
}

func (r *Reader) beginUncompressedChunk() error {
	szBuf, err := readBytes(r.src, 2)
	if err != nil {
		return err
	}
	size := int(binary.BigEndian.Uint16(szBuf)) + 1
	data, err := readBytes(r.src, size)
	if err != nil {
		return err
	}
	r.uncompressed = data
	return nil
}

// resumeUncompressed stages as many bytes of the in-progress uncompressed
// chunk as the dictionary has room for, leaving the rest for the next call.
func (r *Reader) resumeUncompressed() error {
	dict := r.dec.Dictionary()
	n := 0
	for n < len(r.uncompressed) && dict.Available() > 0 {
		if err := dict.PutByte(r.uncompressed[n]); err != nil {
			return err
		}
		n++
	}
	r.uncompressed = r.uncompressed[n:]
	return nil
}

func (r *Reader) beginLZMAChunk(ctrl byte) error {
	sizeBuf, err := readBytes(r.src, 4)
	if err != nil {
		return err
	}
	uncompressedSize := (uint32(ctrl&0x1f)<<16 | uint32(binary.BigEndian.Uint16(sizeBuf[0:2]))) + 1
	compressedSize := uint32(binary.BigEndian.Uint16(sizeBuf[2:4])) + 1

	resetLevel := (ctrl >> 5) & 0x03
	if resetLevel >= 1 {
		r.dec.ResetState()
	}
	if resetLevel >= 2 {
		propByte, err := readBytes(r.src, 1)
		if err != nil {
			return err
		}
		props, err := lzma.ParseProperties(propByte[0])
		if err != nil {
			return err
		}
		r.dec.SetProperties(props)
		r.propsSet = true
	}
	if resetLevel == 3 {
		r.dec.Dictionary().Reset()
	}
	if !r.propsSet {
		return fmt.Errorf("%w: first lzma-coded chunk must reset properties", ErrBadControlByte)
	}

	rc, err := lzma.NewRangeDecoder(r.src, int(compressedSize))
	if err != nil {
		return err
	}
	r.rc = rc
	r.remaining = uncompressedSize
	return nil
}

// resumeLZMA decodes as much of the in-progress LZMA chunk as the
// dictionary has headroom for. When the chunk's declared size is fully
// produced, it checks the range coder's terminal state: unread coded bytes
// at natural end means the declared compressed_size promised more than the
// stream actually used, while a nonzero code after every byte was consumed
// means the coded data itself never resolved.
func (r *Reader) resumeLZMA() error {
	remaining, err := r.dec.Step(r.rc, r.remaining)
	if err != nil {
		r.rc = nil
		return err
	}
	r.remaining = remaining
	if remaining > 0 {
		return nil
	}
	rc := r.rc
	r.rc = nil
	if !rc.Exhausted() {
		return xzio.ErrSizeMismatch
	}
	if !rc.CodeIsZero() {
		return lzma.ErrRangeDecoderDirty
	}
	return nil
}
