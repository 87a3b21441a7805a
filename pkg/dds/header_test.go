package dds

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/JMcKiern/warhawk-reversing/pkg/texture"
)

func TestBuild(t *testing.T) {
	pf := texture.PixelFormat{Compression: texture.DXT1, Width: 16, Height: 32, MipCount: 1}
	header := Build(pf, HeaderOptions{})

	if len(header) != 128 {
		t.Fatalf("expected 128 bytes, got %d", len(header))
	}
	if !bytes.Equal(header[0:4], []byte("DDS ")) {
		t.Errorf("expected DDS magic, got %q", header[0:4])
	}

	fields := []struct {
		name     string
		offset   int
		expected uint32
	}{
		{"size", 0x04, 124},
		{"flags", 0x08, DDSD_CAPS | DDSD_HEIGHT | DDSD_WIDTH | DDSD_PIXELFORMAT},
		{"height", 0x0C, 32},
		{"width", 0x10, 16},
		{"pitch", 0x14, 0},
		{"depth", 0x18, 0},
		{"mips", 0x1C, 1},
		{"pf size", 0x4C, 32},
		{"pf flags", 0x50, DDPF_FOURCC},
		{"rgb bits", 0x58, 0},
		{"caps", 0x6C, DDSCAPS_TEXTURE},
		{"caps2", 0x70, 0},
		{"reserved2", 0x7C, 0},
	}
	for _, f := range fields {
		got := binary.LittleEndian.Uint32(header[f.offset:])
		if got != f.expected {
			t.Errorf("%s at 0x%02x: expected 0x%x, got 0x%x", f.name, f.offset, f.expected, got)
		}
	}
	if string(header[0x54:0x58]) != "DXT1" {
		t.Errorf("expected DXT1 fourCC, got %q", header[0x54:0x58])
	}
	for off := 0x20; off < 0x4C; off++ {
		if header[off] != 0 {
			t.Fatalf("reserved byte 0x%02x is 0x%02x", off, header[off])
		}
	}
}

func TestBuildExactBytes(t *testing.T) {
	// 8-bit alpha mask, 3 mips: DDSD flags 0x21007, DDPF 0x43, caps 0x401000.
	pf := texture.NewPixelFormat(texture.Uncompressed, texture.FormatAlphaMask, 8, 4, 3)
	got := Build(pf, HeaderOptions{})

	want := make([]byte, 128)
	copy(want, "DDS ")
	binary.LittleEndian.PutUint32(want[0x04:], 124)
	binary.LittleEndian.PutUint32(want[0x08:], 0x21007)
	binary.LittleEndian.PutUint32(want[0x0C:], 4)
	binary.LittleEndian.PutUint32(want[0x10:], 8)
	binary.LittleEndian.PutUint32(want[0x1C:], 3)
	binary.LittleEndian.PutUint32(want[0x4C:], 32)
	binary.LittleEndian.PutUint32(want[0x50:], 0x43)
	binary.LittleEndian.PutUint32(want[0x58:], 8)
	binary.LittleEndian.PutUint32(want[0x68:], 0xFF)
	binary.LittleEndian.PutUint32(want[0x6C:], 0x401000)

	if !bytes.Equal(got[:], want) {
		t.Errorf("header mismatch:\ngot  %x\nwant %x", got[:], want)
	}
}

func TestFlagRoundTrip(t *testing.T) {
	kinds := []texture.CompressionKind{texture.Uncompressed, texture.DXT1, texture.DXT3, texture.DXT5}
	bools := []bool{false, true}

	for _, kind := range kinds {
		for _, mips := range []uint8{0, 1, 2, 9} {
			for _, alpha := range bools {
				for _, alphaOnly := range bools {
					for _, yuv := range bools {
						for _, pitch := range bools {
							for _, complexCaps := range bools {
								pf := texture.PixelFormat{
									Compression:  kind,
									Width:        64,
									Height:       128,
									MipCount:     mips,
									HasAlpha:     alpha,
									HasAlphaOnly: alphaOnly,
									IsYUV:        yuv,
									IsLuminance:  !yuv,
								}
								opts := HeaderOptions{Pitch: pitch, Depth: pitch && complexCaps, Complex: complexCaps}
								header := Build(pf, opts)

								h, err := ReadHeader(header[:])
								if err != nil {
									t.Fatalf("read header: %v", err)
								}
								if h.Compressed() != pf.Compressed() ||
									h.Mipmapped() != pf.Mipmapped() ||
									h.HasAlpha() != pf.HasAlpha ||
									h.HasAlphaOnly() != pf.HasAlphaOnly ||
									h.IsYUV() != pf.IsYUV ||
									h.IsLuminance() != pf.IsLuminance ||
									h.Options() != opts ||
									h.Compression() != kind {
									t.Fatalf("round trip mismatch for %+v %+v: %+v", pf, opts, h)
								}
								if h.Width != 64 || h.Height != 128 || h.MipMapCount != uint32(mips) {
									t.Fatalf("dimension mismatch: %+v", h)
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestReadHeaderErrors(t *testing.T) {
	t.Run("Short", func(t *testing.T) {
		if _, err := ReadHeader(make([]byte, 64)); err == nil {
			t.Error("expected error for short header")
		}
	})

	t.Run("BadMagic", func(t *testing.T) {
		data := make([]byte, 128)
		data[0] = 0x80
		if _, err := ReadHeader(data); err == nil {
			t.Error("expected error for bad magic")
		}
	})
}

func TestEncodeToOverwrites(t *testing.T) {
	buf := bytes.Repeat([]byte{0xAA}, 144)
	pf := texture.PixelFormat{Compression: texture.DXT5, Width: 4, Height: 4, MipCount: 1}
	EncodeTo(buf, pf, HeaderOptions{})

	if buf[0x20] != 0 || buf[0x7F] != 0 {
		t.Error("reserved fields were not cleared")
	}
	for _, b := range buf[128:] {
		if b != 0xAA {
			t.Fatal("payload bytes were modified")
		}
	}
}
