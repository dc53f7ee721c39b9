// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package lzma

import (
	"bytes"
	"testing"
)

func newTestRangeDecoder(t *testing.T, body []byte) *RangeDecoder {
	t.Helper()
	data := append([]byte{0x00, 0, 0, 0, 0}, body...)
	rc, err := NewRangeDecoder(bytes.NewReader(data), len(data))
	if err != nil {
		t.Fatalf("NewRangeDecoder: %v", err)
	}
	return rc
}

func TestDecodeBitTreeRange(t *testing.T) {
	t.Parallel()
	rc := newTestRangeDecoder(t, bytes.Repeat([]byte{0x37}, 16))
	probs := make([]uint16, 1<<6)
	fillProbs(probs)
	symbol := decodeBitTree(rc, probs, 6)
	if symbol >= 1<<6 {
		t.Fatalf("decodeBitTree returned %d, out of 6-bit range", symbol)
	}
}

func TestDecodeBitTreeReverseRange(t *testing.T) {
	t.Parallel()
	rc := newTestRangeDecoder(t, bytes.Repeat([]byte{0x9c}, 16))
	probs := make([]uint16, 1<<4)
	fillProbs(probs)
	symbol := decodeBitTreeReverse(rc, probs, 4)
	if symbol >= 1<<4 {
		t.Fatalf("decodeBitTreeReverse returned %d, out of 4-bit range", symbol)
	}
}

func TestDecodeBitTreeReverseAtOffsetIsolated(t *testing.T) {
	t.Parallel()
	// Two disjoint offsets into the same backing array must not influence
	// each other's decode.
	probs := make([]uint16, 64)
	fillProbs(probs)

	body := bytes.Repeat([]byte{0x42}, 16)
	rcA := newTestRangeDecoder(t, body)
	rcB := newTestRangeDecoder(t, body)

	gotA := decodeBitTreeReverseAt(rcA, probs, 0, 3)
	gotB := decodeBitTreeReverseAt(rcB, probs, 10, 3)
	if gotA != gotB {
		t.Fatalf("identical input at different offsets produced different symbols: %d vs %d", gotA, gotB)
	}
}
