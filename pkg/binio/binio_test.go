package binio

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestReader(t *testing.T) {
	data := []byte{0x80, 0x00, 0x01, 0x02, 0xFF, 0xFE, 0x12, 0x34, 0x56, 0x78}

	t.Run("BigEndian", func(t *testing.T) {
		r := NewReader(data)
		if v, err := r.U8(0); err != nil || v != 0x80 {
			t.Errorf("U8: got 0x%x, %v", v, err)
		}
		if v, err := r.U16(2); err != nil || v != 0x0102 {
			t.Errorf("U16: got 0x%x, %v", v, err)
		}
		if v, err := r.I16(4); err != nil || v != -2 {
			t.Errorf("I16: got %d, %v", v, err)
		}
		if v, err := r.U24(1); err != nil || v != 0x000102 {
			t.Errorf("U24: got 0x%x, %v", v, err)
		}
		if v, err := r.U32(6); err != nil || v != 0x12345678 {
			t.Errorf("U32: got 0x%x, %v", v, err)
		}
	})

	t.Run("LittleEndian", func(t *testing.T) {
		r := NewReader(data).WithOrder(binary.LittleEndian)
		if v, err := r.U16(2); err != nil || v != 0x0201 {
			t.Errorf("U16: got 0x%x, %v", v, err)
		}
		if v, err := r.U24(1); err != nil || v != 0x020100 {
			t.Errorf("U24: got 0x%x, %v", v, err)
		}
		if v, err := r.U32(6); err != nil || v != 0x78563412 {
			t.Errorf("U32: got 0x%x, %v", v, err)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		r := NewReader(data)
		tests := []struct {
			name string
			read func() error
		}{
			{"U8 end", func() error { _, err := r.U8(len(data)); return err }},
			{"U16 straddle", func() error { _, err := r.U16(len(data) - 1); return err }},
			{"U32 straddle", func() error { _, err := r.U32(len(data) - 3); return err }},
			{"negative", func() error { _, err := r.U32(-4); return err }},
			{"slice", func() error { _, err := r.Slice(8, 4); return err }},
		}
		for _, tt := range tests {
			err := tt.read()
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("%s: expected ErrOutOfRange, got %v", tt.name, err)
			}
			var re *RangeError
			if !errors.As(err, &re) {
				t.Errorf("%s: expected *RangeError, got %T", tt.name, err)
			}
		}
	})
}

func TestDeref(t *testing.T) {
	data := make([]byte, 0x20)
	binary.BigEndian.PutUint32(data[0x04:], 0x10)
	binary.BigEndian.PutUint32(data[0x18:], uint32(0xFFFFFFF0)) // -0x10

	r := NewReader(data)

	if got, err := r.Deref(0x04); err != nil || got != 0x14 {
		t.Errorf("forward: got 0x%x, %v", got, err)
	}
	if got, err := r.Deref(0x18); err != nil || got != 0x08 {
		t.Errorf("backward: got 0x%x, %v", got, err)
	}
	if _, err := r.Deref(0x1E); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestPointersTo(t *testing.T) {
	data := make([]byte, 0x20)
	binary.BigEndian.PutUint32(data[0x00:], 0x10) // relative: 0x00 + 0x10
	binary.BigEndian.PutUint32(data[0x08:], 0x10) // absolute 0x10 (relative would be 0x18)
	binary.BigEndian.PutUint32(data[0x14:], 0x08) // relative to 0x1C, absolute 0x08

	refs := NewReader(data).PointersTo(0x10)
	want := []PointerRef{
		{Offset: 0x00, Kind: Relative},
		{Offset: 0x00, Kind: Absolute},
		{Offset: 0x08, Kind: Absolute},
	}
	// 0x00 holds 0x10 which is both a relative hit (0+0x10) and an absolute hit.
	if len(refs) != len(want) {
		t.Fatalf("got %d refs %+v, want %d", len(refs), refs, len(want))
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("ref %d: got %+v, want %+v", i, refs[i], want[i])
		}
	}

	tree := NewReader(data).PointerTree(0x10, 3)
	if len(tree) != 3 {
		t.Fatalf("tree roots: got %d", len(tree))
	}
	// 0x08 is targeted by the word at 0x14 as an absolute pointer.
	var found bool
	for _, node := range tree {
		if node.Offset == 0x08 {
			for _, child := range node.Children {
				if child.Offset == 0x14 && child.Kind == Absolute {
					found = true
				}
			}
		}
	}
	if !found {
		t.Errorf("expected 0x14 (A) under 0x08, got %+v", tree)
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want int
		err  bool
	}{
		{"0x1c", 0x1c, false},
		{"1C", 0x1c, false},
		{"0X10", 0x10, false},
		{"ffffffff", 0xffffffff, false},
		{"0x100000000", 0, true},
		{"-1", 0, true},
		{"zz", 0, true},
		{"0x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOffset(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseOffset(%q) = %d, %v", tt.in, got, err)
		}
	}
}
