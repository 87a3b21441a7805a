// Package texture describes Warhawk texture pixel formats.
//
// Both the standalone RTT files and the 16-byte texture descriptors found in
// NGP files identify their pixel data with the same two fields:
// 1. A compression byte (uncompressed, DXT1, DXT3 or DXT5)
// 2. A big-endian image format tag
//
// Together they determine the DDS pixel format and the size of the payload.
package texture

import (
	"fmt"
	"math"
)

// CompressionKind is the decoded compression byte.
type CompressionKind uint8

const (
	Unknown CompressionKind = iota
	Uncompressed
	DXT1
	DXT3
	DXT5
)

// Compression codes as stored on disk.
const (
	CodeUncompressed    = 0x01
	CodeUncompressedAlt = 0x05
	CodeDXT1            = 0x06
	CodeDXT3            = 0x07
	CodeDXT5            = 0x08
)

// ParseCompression maps a compression byte to its kind. Unrecognized codes
// return Unknown, which callers must treat as a failure.
func ParseCompression(code byte) CompressionKind {
	switch code {
	case CodeUncompressed, CodeUncompressedAlt:
		return Uncompressed
	case CodeDXT1:
		return DXT1
	case CodeDXT3:
		return DXT3
	case CodeDXT5:
		return DXT5
	default:
		return Unknown
	}
}

// Compressed reports whether the kind is a block-compressed format.
func (k CompressionKind) Compressed() bool {
	switch k {
	case DXT1, DXT3, DXT5:
		return true
	default:
		return false
	}
}

// FourCC returns the DDS FourCC code, all zero for uncompressed data.
func (k CompressionKind) FourCC() [4]byte {
	switch k {
	case DXT1:
		return [4]byte{'D', 'X', 'T', '1'}
	case DXT3:
		return [4]byte{'D', 'X', 'T', '3'}
	case DXT5:
		return [4]byte{'D', 'X', 'T', '5'}
	default:
		return [4]byte{}
	}
}

func (k CompressionKind) String() string {
	switch k {
	case Uncompressed:
		return "uncompressed"
	case DXT1:
		return "DXT1"
	case DXT3:
		return "DXT3"
	case DXT5:
		return "DXT5"
	default:
		return "unknown"
	}
}

// ImageFormat is the decoded image format tag.
type ImageFormat uint8

const (
	FormatUnknown ImageFormat = iota
	FormatStandard
	FormatAlphaMask
	FormatUnreversed
)

// Image format tags as stored on disk (big-endian).
const (
	TagStandard   = 0xAAE4
	TagAlphaMask  = 0xA9FF
	TagUnreversed = 0xAA1B
)

// ParseImageFormat maps an image format tag to its kind.
func ParseImageFormat(tag uint16) ImageFormat {
	switch tag {
	case TagStandard:
		return FormatStandard
	case TagAlphaMask:
		return FormatAlphaMask
	case TagUnreversed:
		return FormatUnreversed
	default:
		return FormatUnknown
	}
}

func (f ImageFormat) String() string {
	switch f {
	case FormatStandard:
		return "standard"
	case FormatAlphaMask:
		return "alpha mask"
	case FormatUnreversed:
		return "unreversed"
	default:
		return "unknown"
	}
}

// PixelFormat is everything the DDS header needs to know about an image.
type PixelFormat struct {
	Compression  CompressionKind
	Width        uint16
	Height       uint16
	MipCount     uint8
	HasAlpha     bool
	HasAlphaOnly bool
	IsYUV        bool // never set by current formats
	IsLuminance  bool // never set by current formats
	RGBBitCount  uint32
	RBitMask     uint32
	GBitMask     uint32
	BBitMask     uint32
	ABitMask     uint32
}

// NewPixelFormat derives the pixel format fields implied by a compression
// kind and image format. Bit counts and masks are only filled in for
// uncompressed data; block-compressed data is identified by its FourCC.
// The unreversed and unknown formats contribute nothing.
func NewPixelFormat(kind CompressionKind, format ImageFormat, width, height uint16, mips uint8) PixelFormat {
	pf := PixelFormat{
		Compression: kind,
		Width:       width,
		Height:      height,
		MipCount:    mips,
	}
	switch format {
	case FormatAlphaMask:
		pf.HasAlpha = true
		pf.HasAlphaOnly = true
		if !kind.Compressed() {
			pf.RGBBitCount = 8
			pf.ABitMask = 0xFF
		}
	case FormatStandard, FormatUnreversed, FormatUnknown:
	}
	return pf
}

// Compressed reports whether the image is block compressed.
func (pf PixelFormat) Compressed() bool {
	return pf.Compression.Compressed()
}

// Mipmapped reports whether the image carries more than one level.
func (pf PixelFormat) Mipmapped() bool {
	return pf.MipCount != 1
}

// FourCC returns the DDS FourCC for the image.
func (pf PixelFormat) FourCC() [4]byte {
	return pf.Compression.FourCC()
}

// DataSize returns the payload size implied by the pixel format.
func (pf PixelFormat) DataSize() int {
	g := pf.Geometry()
	return ImageDataSize(int(pf.Width), int(pf.Height), int(pf.MipCount), g.BytesPerPixel, g.BytesPerGroup)
}

// String returns a human-readable representation.
func (pf PixelFormat) String() string {
	return fmt.Sprintf("%dx%d, %d mips, %s, %d bpp",
		pf.Width, pf.Height, pf.MipCount, pf.Compression, pf.RGBBitCount)
}

// Geometry is the storage cost of a format: bytes per pixel and the minimum
// bytes one mip level can occupy.
type Geometry struct {
	BytesPerPixel float64
	BytesPerGroup float64
}

// Geometry returns the storage geometry of the pixel format.
func (pf PixelFormat) Geometry() Geometry {
	const pixelsPerGroup = 16
	switch pf.Compression {
	case DXT1:
		return Geometry{BytesPerPixel: 8.0 / pixelsPerGroup, BytesPerGroup: 8}
	case DXT3, DXT5:
		return Geometry{BytesPerPixel: 16.0 / pixelsPerGroup, BytesPerGroup: 16}
	default:
		b := float64(pf.RGBBitCount) / 8
		return Geometry{BytesPerPixel: b, BytesPerGroup: b}
	}
}

// MipLevelSize returns the size of mip level i, never less than one group.
func MipLevelSize(width, height, level int, bytesPerPixel, bytesPerGroup float64) float64 {
	scale := 1 / math.Pow(2, float64(level))
	return math.Max(bytesPerPixel*float64(width)*float64(height)*scale*scale, bytesPerGroup)
}

// ImageDataSize sums MipLevelSize over all levels and floors the total.
func ImageDataSize(width, height, mips int, bytesPerPixel, bytesPerGroup float64) int {
	var total float64
	for i := 0; i < mips; i++ {
		total += MipLevelSize(width, height, i, bytesPerPixel, bytesPerGroup)
	}
	return int(total)
}
