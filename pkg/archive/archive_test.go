package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/DataDog/zstd"
)

func TestHeader(t *testing.T) {
	t.Run("MarshalUnmarshal", func(t *testing.T) {
		original := NewHeader(KindDDS, 1024, 512)

		data, err := original.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		decoded := &Header{}
		if err := decoded.UnmarshalBinary(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if *decoded != *original {
			t.Errorf("mismatch: got %+v, want %+v", decoded, original)
		}
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		h := NewHeader(KindRTT, 1024, 512)
		h.Magic = [4]byte{}
		if err := h.Validate(); err == nil {
			t.Error("expected error for invalid magic")
		}
	})

	t.Run("BadVersion", func(t *testing.T) {
		h := NewHeader(KindRTT, 1024, 512)
		h.Version = 2
		if err := h.Validate(); err == nil {
			t.Error("expected error for unknown version")
		}
	})

	t.Run("ZeroCompressedLength", func(t *testing.T) {
		h := NewHeader(KindRTT, 1024, 0)
		if err := h.Validate(); err == nil {
			t.Error("expected error for zero compressed length")
		}
	})
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"tex/a.rtt", KindRTT},
		{"tex/a.DDS", KindDDS},
		{"level.ngp.zst", KindNGP},
		{"level.vram", KindVRAM},
		{"m_0x40.obj", KindOBJ},
		{"m_0x40.mtl", KindMTL},
		{"notes.txt", KindOther},
	}
	for _, tt := range tests {
		if got := KindForPath(tt.path); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.path, tt.want, got)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	original := bytes.Repeat([]byte("Warhawk texture payload "), 64)

	t.Run("RoundTrip", func(t *testing.T) {
		wrapped, err := Wrap(original, WithKind(KindDDS), WithCompressionLevel(zstd.DefaultCompression))
		if err != nil {
			t.Fatalf("wrap: %v", err)
		}
		if !IsWrapped(wrapped) {
			t.Fatal("wrapped data not recognized")
		}

		h := &Header{}
		if err := h.UnmarshalBinary(wrapped); err != nil {
			t.Fatalf("header: %v", err)
		}
		if h.Kind != KindDDS || h.Length != uint64(len(original)) {
			t.Errorf("unexpected header: %+v", h)
		}

		decoded, err := Unwrap(wrapped)
		if err != nil {
			t.Fatalf("unwrap: %v", err)
		}
		if !bytes.Equal(decoded, original) {
			t.Error("data mismatch")
		}
	})

	t.Run("BareFrame", func(t *testing.T) {
		frame, err := zstd.Compress(nil, original)
		if err != nil {
			t.Fatalf("compress: %v", err)
		}
		if !IsFrame(frame) {
			t.Fatal("frame not recognized")
		}
		decoded, err := Unwrap(frame)
		if err != nil {
			t.Fatalf("unwrap: %v", err)
		}
		if !bytes.Equal(decoded, original) {
			t.Error("data mismatch")
		}
	})

	t.Run("Plain", func(t *testing.T) {
		plain := []byte{0x80, 0x00, 0x00, 0x7C}
		decoded, err := Unwrap(plain)
		if err != nil {
			t.Fatalf("unwrap: %v", err)
		}
		if !bytes.Equal(decoded, plain) {
			t.Error("plain data changed")
		}
	})

	t.Run("TruncatedBody", func(t *testing.T) {
		wrapped, err := Wrap(original)
		if err != nil {
			t.Fatalf("wrap: %v", err)
		}
		if _, err := Unwrap(wrapped[:len(wrapped)-1]); err == nil {
			t.Error("expected error for truncated body")
		}
	})
}

func TestWriteReadFile(t *testing.T) {
	original := []byte("DDS payload bytes")
	path := filepath.Join(t.TempDir(), "tex.dds")

	written, err := WriteFile(path, original)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if written != path+Ext {
		t.Errorf("expected %s, got %s", path+Ext, written)
	}

	raw, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	h := &Header{}
	if err := h.UnmarshalBinary(raw); err != nil {
		t.Fatalf("header: %v", err)
	}
	if h.Kind != KindDDS {
		t.Errorf("expected kind dds, got %s", h.Kind)
	}

	decoded, err := ReadFile(written)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("data mismatch: got %q, want %q", decoded, original)
	}
}
