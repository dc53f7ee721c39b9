// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package lzma

import "testing"

func TestStateTransitionsStayInRange(t *testing.T) {
	t.Parallel()
	for s := uint32(0); s < numStates; s++ {
		for _, f := range []func(uint32) uint32{
			nextStateAfterLiteral, nextStateAfterMatch, nextStateAfterLongRep, nextStateAfterShortRep,
		} {
			if got := f(s); got >= numStates {
				t.Fatalf("transition from state %d produced out-of-range state %d", s, got)
			}
		}
	}
}

func TestNextStateAfterLiteralTable(t *testing.T) {
	t.Parallel()
	cases := map[uint32]uint32{
		0: 0, 1: 0, 2: 0, 3: 0,
		4: 1, 5: 2, 9: 6,
		10: 4, 11: 5,
	}
	for in, want := range cases {
		if got := nextStateAfterLiteral(in); got != want {
			t.Fatalf("nextStateAfterLiteral(%d) = %d, want %d", in, got, want)
		}
	}
}
