// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xzio

import "io"

// CountedReader wraps an io.Reader and counts the bytes that pass through
// it, without taking ownership of the wrapped reader. It is handed to a
// nested decoder for the duration of a single construct (an xz block body,
// an index) so the caller can compare the number of bytes the nested
// decoder actually consumed against a declared size, then discard the
// wrapper and keep reading the underlying source directly. This replaces
// the "stream that carries a live back-reference to its parent stream"
// pattern with a plain borrowed reference that exists only as long as the
// caller holds it.
type CountedReader struct {
	r     io.Reader
	count int64
}

// NewCountedReader returns a CountedReader wrapping r.
func NewCountedReader(r io.Reader) *CountedReader {
	return &CountedReader{r: r}
}

// Read implements io.Reader.
func (cr *CountedReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.count += int64(n)
	return n, err
}

// ReadByte implements io.ByteReader, for use with ReadVarint.
func (cr *CountedReader) ReadByte() (byte, error) {
	var b [1]byte
	n, err := cr.r.Read(b[:])
	cr.count += int64(n)
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}

// Count returns the number of bytes read through cr so far.
func (cr *CountedReader) Count() int64 {
	return cr.count
}
