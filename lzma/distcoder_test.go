// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package lzma

import (
	"bytes"
	"testing"
)

func TestLenToDistState(t *testing.T) {
	t.Parallel()
	cases := map[uint32]uint32{0: 0, 1: 1, 2: 2, 3: 3, 4: 3, 100: 3}
	for in, want := range cases {
		if got := lenToDistState(in); got != want {
			t.Fatalf("lenToDistState(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDistanceDecoderSmallSlots(t *testing.T) {
	t.Parallel()
	// With every probability at its initial midpoint, a DecodeBit call
	// whose code lies below bound returns 0; a range decoder whose buffer
	// is all zero bytes after the header drives the slot tree to decode
	// symbol 0, which distanceDecoder must return verbatim (no extra bits
	// are consumed for slots below startPosModelIndex).
	var d distanceDecoder
	d.Reset()
	data := append([]byte{0x00, 0, 0, 0, 0}, make([]byte, 16)...)
	rc, err := NewRangeDecoder(bytes.NewReader(data), len(data))
	if err != nil {
		t.Fatalf("NewRangeDecoder: %v", err)
	}
	dist := d.Decode(rc, 0)
	if dist >= startPosModelIndex {
		t.Fatalf("Decode returned %d, expected a literal slot below %d", dist, startPosModelIndex)
	}
}

func TestDistanceDecoderPosDecodersBounds(t *testing.T) {
	t.Parallel()
	// The shared reverse bit-tree for slots 4..13 must never be indexed out
	// of range: the highest offset (slot 13) plus its tree's top index must
	// fit inside posDecoders.
	const slot13Offset = 83 // (2|1)<<5 - 13 = 96-13
	const slot13Bits = 5
	maxIndex := slot13Offset + (1<<slot13Bits - 1)
	var d distanceDecoder
	if maxIndex >= len(d.posDecoders) {
		t.Fatalf("posDecoders has length %d, too small for max index %d", len(d.posDecoders), maxIndex)
	}
}
