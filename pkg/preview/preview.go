// Package preview renders converted DDS textures as ordinary images so they
// can be checked without a DDS viewer.
package preview

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/draw"

	"github.com/JMcKiern/warhawk-reversing/pkg/dds"
	"github.com/JMcKiern/warhawk-reversing/pkg/texture"
)

// Decode renders the top mip level of a DDS buffer produced by this module.
func Decode(data []byte) (*image.NRGBA, error) {
	h, err := dds.ReadHeader(data)
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	width, height := int(h.Width), int(h.Height)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image: %dx%d", width, height)
	}
	payload := data[dds.DDS_FILE_HEADER_SIZE:]

	switch kind := h.Compression(); kind {
	case texture.DXT1:
		return decodeBlocks(payload, width, height, nil)
	case texture.DXT3:
		return decodeBlocks(payload, width, height, dxt3Alpha)
	case texture.DXT5:
		return decodeBlocks(payload, width, height, dxt5Alpha)
	case texture.Uncompressed:
		if h.RGBBitCount == 8 && h.HasAlphaOnly() {
			return decodeA8(payload, width, height)
		}
		return nil, fmt.Errorf("decompression not implemented for %d-bit uncompressed data", h.RGBBitCount)
	default:
		return nil, fmt.Errorf("decompression not implemented for fourCC %q", h.FourCC[:])
	}
}

// Thumbnail scales img so that neither side exceeds maxSize, keeping the
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Format is an output image format.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	BMP  Format = "bmp"
	JPEG Format = "jpeg"
)

// ParseFormat maps a name or extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "bmp":
		return BMP, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return "", fmt.Errorf("unknown preview format %q", name)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// JPEGQuality is the quality used for JPEG previews.
const JPEGQuality = 90

// Encoder returns the image encoder for f.
func (f Format) Encoder() imgio.Encoder {
	switch f {
	case WebP:
		return func(w io.Writer, img image.Image) error {
			return nativewebp.Encode(w, img, nil)
		}
	case BMP:
		return imgio.BMPEncoder()
	case JPEG:
		return imgio.JPEGEncoder(JPEGQuality)
	default:
		return imgio.PNGEncoder()
	}
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if err := f.Encoder()(w, img); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Save writes img to path in format f.
func Save(path string, img image.Image, f Format) error {
	if err := imgio.Save(path, img, f.Encoder()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Render decodes a DDS buffer, shrinks it to maxSize (0 keeps the original
// size) and writes it to path.
func Render(path string, ddsData []byte, f Format, maxSize int) error {
	img, err := Decode(ddsData)
	if err != nil {
		return fmt.Errorf("decode dds: %w", err)
	}
	return Save(path, Thumbnail(img, maxSize), f)
}
