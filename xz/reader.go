// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xz

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/MaxWipfli/xz/internal/xzio"
	"github.com/MaxWipfli/xz/lzma2"
)

type readerState int

const (
	stateIdle readerState = iota
	stateBlockBody
	stateBlockPadding
	stateBlockCheck
	stateIndex
	stateEOF
)

// Reader decodes a single xz stream into its uncompressed bytes. It
// implements io.Reader. Once any error (other than io.EOF) is returned,
// the Reader is permanently errored: every subsequent Read returns the
// same error without consuming further input.
type Reader struct {
	src   io.Reader
	state readerState
	check xzio.CheckType
	err   error

	bh           *blockHeader
	cr           *xzio.CountedReader
	l2           *lzma2.Reader
	digest       *xzio.Digest
	blockEmitted uint64
}

// NewReader reads and verifies the stream header from src and returns a
// Reader ready to decode the blocks that follow.
func NewReader(src io.Reader) (*Reader, error) {
	hdr, err := readStreamHeader(src)
	if err != nil {
		return nil, err
	}
	if _, err := xzio.NewDigest(hdr.check); err != nil {
		return nil, err
	}
	return &Reader{src: src, check: hdr.check, state: stateIdle}, nil
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.read(p)
	if err != nil {
		r.err = err
	}
	return n, err
}

func (r *Reader) read(p []byte) (int, error) {
	for {
		switch r.state {
		case stateIdle:
			if err := r.startBlockOrIndex(); err != nil {
				return 0, err
			}
		case stateBlockBody:
			n, err := r.l2.Read(p)
			if n > 0 {
				r.digest.Write(p[:n])
				r.blockEmitted += uint64(n)
				return n, nil
			}
			if err == io.EOF {
				if err := r.finishBlockBody(); err != nil {
					return 0, err
				}
				r.state = stateBlockPadding
				continue
			}
			return 0, err
		case stateBlockPadding:
			if err := r.readBlockPadding(); err != nil {
				return 0, err
			}
			r.state = stateBlockCheck
		case stateBlockCheck:
			if err := r.readBlockCheck(); err != nil {
				return 0, err
			}
			r.state = stateIdle
		case stateIndex:
			if err := r.readIndexAndFooter(); err != nil {
				return 0, err
			}
			r.state = stateEOF
		case stateEOF:
			return 0, io.EOF
		}
	}
}

func (r *Reader) startBlockOrIndex() error {
	bh, err := readBlockHeader(r.src)
	if err != nil {
		if errors.Is(err, errIndexIndicator) {
			r.state = stateIndex
			return nil
		}
		return err
	}
	dictSize, err := lzma2DictSize(bh.lzma2Properties)
	if err != nil {
		return err
	}
	r.bh = bh
	r.cr = xzio.NewCountedReader(r.src)
	r.l2 = lzma2.NewReader(r.cr, dictSize)
	digest, err := xzio.NewDigest(r.check)
	if err != nil {
		return err
	}
	r.digest = digest
	r.blockEmitted = 0
	r.state = stateBlockBody
	return nil
}

func (r *Reader) finishBlockBody() error {
	if r.bh.compressedSize != nil && uint64(r.cr.Count()) != *r.bh.compressedSize {
		return fmt.Errorf("%w: block compressed size: got %d, want %d", xzio.ErrSizeMismatch, r.cr.Count(), *r.bh.compressedSize)
	}
	if r.bh.uncompressedSize != nil && r.blockEmitted != *r.bh.uncompressedSize {
		return fmt.Errorf("%w: block uncompressed size: got %d, want %d", xzio.ErrSizeMismatch, r.blockEmitted, *r.bh.uncompressedSize)
	}
	return nil
}

func (r *Reader) readBlockPadding() error {
	padding := int((4 - r.cr.Count()%4) % 4)
	buf := make([]byte, padding)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return fmt.Errorf("%w: block padding: %v", xzio.ErrTruncated, err)
	}
	for _, b := range buf {
		if b != 0 {
			return fmt.Errorf("%w: block padding", ErrBadPadding)
		}
	}
	return nil
}

func (r *Reader) readBlockCheck() error {
	size := r.check.Size()
	if size == 0 {
		return nil
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return fmt.Errorf("%w: block check: %v", xzio.ErrTruncated, err)
	}
	if !bytes.Equal(buf, r.digest.Sum()) {
		return ErrBadChecksum
	}
	return nil
}

func (r *Reader) readIndexAndFooter() error {
	cr := xzio.NewCountedReader(r.src)
	if _, err := readIndex(cr); err != nil {
		return err
	}
	indexSize := uint64(cr.Count()) + 1 // +1 for the indicator byte the caller already consumed

	var footerBuf [12]byte
	if _, err := io.ReadFull(r.src, footerBuf[:]); err != nil {
		return fmt.Errorf("%w: stream footer: %v", xzio.ErrTruncated, err)
	}
	footer, err := parseStreamFooter(footerBuf[:])
	if err != nil {
		return err
	}
	if footer.check != r.check {
		return ErrStreamFooterMismatch
	}
	if footer.backwardSize != indexSize {
		return fmt.Errorf("%w: footer backward size %d, actual index size %d", xzio.ErrSizeMismatch, footer.backwardSize, indexSize)
	}
	return nil
}
