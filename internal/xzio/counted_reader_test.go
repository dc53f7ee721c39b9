// Copyright (c) 2025, Max Wipfli <max.wipfli@serenityos.org>
//
// SPDX-License-Identifier: BSD-2-Clause

package xzio

import (
	"bytes"
	"io"
	"testing"
)

func TestCountedReader(t *testing.T) {
	t.Parallel()
	src := bytes.NewReader([]byte("hello, world"))
	cr := NewCountedReader(src)

	buf := make([]byte, 5)
	n, err := cr.Read(buf)
	if err != nil || n != 5 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	if cr.Count() != 5 {
		t.Fatalf("Count() = %d, want 5", cr.Count())
	}

	rest, err := io.ReadAll(cr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got, want := cr.Count(), int64(5+len(rest)); got != want {
		t.Fatalf("Count() = %d, want %d", got, want)
	}
}

func TestCountedReaderReadByte(t *testing.T) {
	t.Parallel()
	cr := NewCountedReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	for i, want := range []byte{0x01, 0x02, 0x03} {
		b, err := cr.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte() #%d: %v", i, err)
		}
		if b != want {
			t.Fatalf("ReadByte() #%d = %#x, want %#x", i, b, want)
		}
	}
	if cr.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", cr.Count())
	}
	if _, err := cr.ReadByte(); err == nil {
		t.Fatal("ReadByte() at EOF: got nil error")
	}
}
