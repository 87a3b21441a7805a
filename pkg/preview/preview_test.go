package preview

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/JMcKiern/warhawk-reversing/pkg/dds"
	"github.com/JMcKiern/warhawk-reversing/pkg/texture"
)

func ddsFile(pf texture.PixelFormat, payload []byte) []byte {
	header := dds.Build(pf, dds.HeaderOptions{})
	return append(header[:], payload...)
}

func TestDecodeDXT1(t *testing.T) {
	// c0 = pure red, c1 = pure blue, indices select c0 for the first row,
	// c1 for the second, the 2/3 blend for the third and 1/3 for the last.
	block := []byte{0x00, 0xF8, 0x1F, 0x00, 0x00, 0x55, 0xAA, 0xFF}
	data := ddsFile(texture.PixelFormat{Compression: texture.DXT1, Width: 4, Height: 4, MipCount: 1}, block)

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	tests := []struct {
		y    int
		want color.NRGBA
	}{
		{0, color.NRGBA{255, 0, 0, 255}},
		{1, color.NRGBA{0, 0, 255, 255}},
		{2, color.NRGBA{170, 0, 85, 255}},
		{3, color.NRGBA{85, 0, 170, 255}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(2, tt.y); got != tt.want {
			t.Errorf("row %d: expected %v, got %v", tt.y, tt.want, got)
		}
	}
}

func TestDecodeDXT1Transparent(t *testing.T) {
	// c0 <= c1 selects three-color mode; index 3 is transparent.
	block := []byte{0x1F, 0x00, 0x00, 0xF8, 0xFF, 0xFF, 0xFF, 0xFF}
	data := ddsFile(texture.PixelFormat{Compression: texture.DXT1, Width: 4, Height: 4, MipCount: 1}, block)

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected transparent pixel, got alpha %d", a)
	}
}

func TestDecodeDXT3Alpha(t *testing.T) {
	block := make([]byte, 16)
	block[0] = 0xF0 // pixel 0 alpha 0, pixel 1 alpha 0xFF
	data := ddsFile(texture.PixelFormat{Compression: texture.DXT3, Width: 4, Height: 4, MipCount: 1}, block)

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("pixel 0: expected alpha 0, got %d", a)
	}
	if a := img.NRGBAAt(1, 0).A; a != 0xFF {
		t.Errorf("pixel 1: expected alpha 255, got %d", a)
	}
}

func TestDecodeDXT5Alpha(t *testing.T) {
	block := make([]byte, 16)
	block[0] = 200
	block[1] = 100
	block[2] = 0x01 // pixel 0 uses alpha index 1
	data := ddsFile(texture.PixelFormat{Compression: texture.DXT5, Width: 8, Height: 2, MipCount: 1}, append(block, block...))

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
	if a := img.NRGBAAt(0, 0).A; a != 100 {
		t.Errorf("pixel 0: expected alpha 100, got %d", a)
	}
	if a := img.NRGBAAt(1, 0).A; a != 200 {
		t.Errorf("pixel 1: expected alpha 200, got %d", a)
	}
}

func TestDecodeAlphaMask(t *testing.T) {
	pf := texture.NewPixelFormat(texture.Uncompressed, texture.FormatAlphaMask, 2, 2, 1)
	img, err := Decode(ddsFile(pf, []byte{0, 64, 128, 255}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{64, 64, 64, 255}) {
		t.Errorf("unexpected pixel: %v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Run("Truncated", func(t *testing.T) {
		data := ddsFile(texture.PixelFormat{Compression: texture.DXT5, Width: 8, Height: 8, MipCount: 1}, make([]byte, 16))
		if _, err := Decode(data); err == nil {
			t.Error("expected error for short payload")
		}
	})

	t.Run("NotDDS", func(t *testing.T) {
		if _, err := Decode(make([]byte, 256)); err == nil {
			t.Error("expected error for missing magic")
		}
	})

	t.Run("UncompressedWithoutBits", func(t *testing.T) {
		data := ddsFile(texture.PixelFormat{Compression: texture.Uncompressed, Width: 4, Height: 4, MipCount: 1}, make([]byte, 64))
		if _, err := Decode(data); err == nil {
			t.Error("expected error for unsupported layout")
		}
	})
}

func TestThumbnail(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 64))

	thumb := Thumbnail(img, 64)
	if b := thumb.Bounds(); b.Dx() != 64 || b.Dy() != 16 {
		t.Errorf("expected 64x16, got %v", b)
	}

	if Thumbnail(img, 0) != image.Image(img) {
		t.Error("expected original image for maxSize 0")
	}
	if Thumbnail(img, 512) != image.Image(img) {
		t.Error("expected original image when already small")
	}
}

func TestFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}

	magic := map[Format][]byte{
		PNG:  []byte("\x89PNG"),
		WebP: []byte("RIFF"),
		BMP:  []byte("BM"),
		JPEG: {0xFF, 0xD8},
	}

	for _, name := range []string{"png", ".webp", "BMP", "jpg"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		var buf bytes.Buffer
		if err := Encode(&buf, img, f); err != nil {
			t.Fatalf("encode %s: %v", f, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), magic[f]) {
			t.Errorf("%s: unexpected prefix % x", f, buf.Bytes()[:4])
		}
	}

	if _, err := ParseFormat("tga"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRender(t *testing.T) {
	block := []byte{0x00, 0xF8, 0x1F, 0x00, 0x00, 0x55, 0xAA, 0xFF}
	data := ddsFile(texture.PixelFormat{Compression: texture.DXT1, Width: 4, Height: 4, MipCount: 1}, block)

	path := filepath.Join(t.TempDir(), "tex"+PNG.Ext())
	if err := Render(path, data, PNG, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty preview file")
	}
}
