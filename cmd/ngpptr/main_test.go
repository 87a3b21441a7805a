package main

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/JMcKiern/warhawk-reversing/pkg/binio"
)

func TestWriteTree(t *testing.T) {
	data := make([]byte, 0x20)
	// 0x0c points at 0x10 (relative), 0x18 holds 0x0c (absolute)
	binary.BigEndian.PutUint32(data[0x0C:], 0x04)
	binary.BigEndian.PutUint32(data[0x18:], 0x0C)

	r := binio.NewReader(data)
	var buf bytes.Buffer
	writeTree(&buf, 0x10, r.PointerTree(0x10, 3))

	want := "0x10\n\t0xc (R)\n\t\t0x18 (A)\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	writeTree(&buf, 0x1C, r.PointerTree(0x1C, 3))
	if buf.Len() != 0 {
		t.Errorf("expected no output for an unreferenced offset, got %q", buf.String())
	}
}

func TestRangeOffsets(t *testing.T) {
	got := rangeOffsets(0x10, 0x1c)
	want := []int{0x10, 0x14, 0x18}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
