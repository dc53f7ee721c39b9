// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package lzma

// decodeBitTree decodes numBits bits most-significant-first using a binary
// tree of probabilities, and returns the symbol they form. probs must have
// at least 1<<numBits entries; index 0 is unused so that the current tree
// node index m doubles as the probability slot, matching the classic LZMA
// bit-tree layout.
func decodeBitTree(rc *RangeDecoder, probs []uint16, numBits int) uint32 {
	m := uint32(1)
	for i := 0; i < numBits; i++ {
		m = m<<1 | rc.DecodeBit(&probs[m])
	}
	return m - (1 << uint(numBits))
}

// decodeBitTreeReverse decodes numBits bits least-significant-first using
// the same kind of probability tree as decodeBitTree, and returns the
// symbol they form. It is used where the encoded value's low bits carry
// more predictive weight than its high bits (the distance decoder's 4-bit
// align code).
func decodeBitTreeReverse(rc *RangeDecoder, probs []uint16, numBits int) uint32 {
	m := uint32(1)
	var symbol uint32
	for i := 0; i < numBits; i++ {
		bit := rc.DecodeBit(&probs[m])
		m = m<<1 | bit
		symbol |= bit << uint(i)
	}
	return symbol
}

// decodeBitTreeReverseAt behaves like decodeBitTreeReverse, but indexes
// into probs starting at offset instead of at 0. This lets several
// reverse-tree decodes share one backing probability array at disjoint
// offsets, as LZMA's distance decoder does for distance slots 4 through 13.
func decodeBitTreeReverseAt(rc *RangeDecoder, probs []uint16, offset uint32, numBits int) uint32 {
	m := uint32(1)
	var symbol uint32
	for i := 0; i < numBits; i++ {
		bit := rc.DecodeBit(&probs[offset+m])
		m = m<<1 | bit
		symbol |= bit << uint(i)
	}
	return symbol
}

func fillProbs(probs []uint16) {
	for i := range probs {
		probs[i] = probInit
	}
}
