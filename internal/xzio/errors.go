// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

// Package xzio holds small framing helpers shared by the xz, lzma and lzma2
// packages: variable-length integer decoding, a byte-counting reader wrapper,
// and the check-digest tagged union used to verify per-block integrity.
package xzio

import "errors"

// Common errors shared across the xz container and filter layers.
var (
	// ErrTruncated indicates the source ended before the current construct
	// was fully read.
	ErrTruncated = errors.New("xzio: truncated input")

	// ErrMalformedInteger indicates a variable-length integer used more than
	// nine bytes, or was not encoded in its minimal (canonical) form.
	ErrMalformedInteger = errors.New("xzio: malformed variable-length integer")

	// ErrSizeMismatch indicates a declared size did not match the number of
	// bytes actually produced or consumed.
	ErrSizeMismatch = errors.New("xzio: declared size does not match actual size")

	// ErrUnsupportedCheck indicates a check type that is well-formed but
	// cannot be verified by this implementation.
	ErrUnsupportedCheck = errors.New("xzio: unsupported integrity check type")
)
