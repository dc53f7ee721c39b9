// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

// Package lzma2 implements the LZMA2 chunked container: a sequence of
// independently sized chunks, each either a verbatim copy or an LZMA-coded
// packet stream, sharing one sliding-window dictionary across the whole
// stream. It drives package lzma's decoder to handle the LZMA-coded chunks.
package lzma2

import "errors"

var (
	// ErrBadControlByte indicates a chunk control byte used one of the
	// values LZMA2 reserves, or an LZMA-coded chunk appeared before any
	// chunk had set the stream's properties.
	ErrBadControlByte = errors.New("lzma2: invalid chunk control byte")
)
