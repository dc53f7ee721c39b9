// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

// Package lzma implements the LZMA decode loop: the range coder, its
// adaptive bit-tree helpers, and the literal/length/distance decoders that
// interpret a packet stream into bytes appended to a sliding-window
// dictionary. It decodes LZMA's own packet framing only; the chunked
// container LZMA2 wraps it in lives in package lzma2.
package lzma

import "errors"

var (
	// ErrBadProperties indicates an LZMA properties byte did not decode to
	// valid lc/lp/pb values.
	ErrBadProperties = errors.New("lzma: invalid properties byte")

	// ErrRangeDecoderDirty indicates a range-coded chunk ended with the
	// range decoder not in its expected terminal state.
	ErrRangeDecoderDirty = errors.New("lzma: range decoder did not end cleanly")

	// ErrDictionaryOverflow indicates the decoder attempted to hold more
	// pending bytes than the dictionary's window size allows.
	ErrDictionaryOverflow = errors.New("lzma: dictionary overflow")

	// ErrCorruptStream indicates the decoded packet stream referenced state
	// that cannot be valid, such as a distance pointing before the start of
	// the dictionary.
	ErrCorruptStream = errors.New("lzma: corrupt packet stream")
)
