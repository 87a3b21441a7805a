// Package dds builds and reads the legacy 128-byte DDS header.
//
// The header is the 4-byte magic followed by the 124-byte DDS_HEADER with its
// embedded 32-byte DDS_PIXELFORMAT. All fields are little-endian. DX10
// extension headers are never produced.
package dds

import (
	"encoding/binary"
	"fmt"

	"github.com/JMcKiern/warhawk-reversing/pkg/texture"
)

// DDS header constants
const (
	DDS_MAGIC             = 0x20534444 // "DDS "
	DDS_HEADER_SIZE       = 124
	DDS_PIXELFORMAT_SIZE  = 32
	DDS_FILE_HEADER_SIZE  = 4 + DDS_HEADER_SIZE
	DDS_PIXELFORMAT_START = 0x4C

	// Pixel format flags
	DDPF_ALPHAPIXELS = 0x1
	DDPF_ALPHA       = 0x2
	DDPF_FOURCC      = 0x4
	DDPF_RGB         = 0x40
	DDPF_YUV         = 0x200
	DDPF_LUMINANCE   = 0x20000

	// Header flags
	DDSD_CAPS        = 0x1
	DDSD_HEIGHT      = 0x2
	DDSD_WIDTH       = 0x4
	DDSD_PITCH       = 0x8
	DDSD_PIXELFORMAT = 0x1000
	DDSD_MIPMAPCOUNT = 0x20000
	DDSD_LINEARSIZE  = 0x80000
	DDSD_DEPTH       = 0x800000

	// Caps flags
	DDSCAPS_COMPLEX = 0x8
	DDSCAPS_TEXTURE = 0x1000
	DDSCAPS_MIPMAP  = 0x400000
)

// HeaderOptions are the header properties Warhawk textures do not encode.
// The zero value is what every current caller uses.
type HeaderOptions struct {
	// Pitch sets PITCH or LINEARSIZE. The pitch field itself is still
	// written as zero.
	Pitch bool
	// Depth sets DEPTH. Volume textures are not supported.
	Depth bool
	// Complex sets DDSCAPS_COMPLEX. Cube maps are not supported.
	Complex bool
}

// PixelFormatFlags computes DDS_PIXELFORMAT.dwFlags.
func PixelFormatFlags(pf texture.PixelFormat) uint32 {
	var flags uint32
	if pf.HasAlpha {
		flags |= DDPF_ALPHAPIXELS
	}
	if pf.HasAlphaOnly {
		flags |= DDPF_ALPHA
	}
	if pf.Compressed() {
		flags |= DDPF_FOURCC
	} else {
		flags |= DDPF_RGB
	}
	if pf.IsYUV {
		flags |= DDPF_YUV
	}
	if pf.IsLuminance {
		flags |= DDPF_LUMINANCE
	}
	return flags
}

// HeaderFlags computes DDS_HEADER.dwFlags.
func HeaderFlags(pf texture.PixelFormat, opts HeaderOptions) uint32 {
	flags := uint32(DDSD_CAPS | DDSD_HEIGHT | DDSD_WIDTH | DDSD_PIXELFORMAT)
	if opts.Pitch {
		if pf.Compressed() {
			flags |= DDSD_LINEARSIZE
		} else {
			flags |= DDSD_PITCH
		}
	}
	if pf.Mipmapped() {
		flags |= DDSD_MIPMAPCOUNT
	}
	if opts.Depth {
		flags |= DDSD_DEPTH
	}
	return flags
}

// CapsFlags computes DDS_HEADER.dwCaps.
func CapsFlags(pf texture.PixelFormat, opts HeaderOptions) uint32 {
	flags := uint32(DDSCAPS_TEXTURE)
	if opts.Complex {
		flags |= DDSCAPS_COMPLEX
	}
	if pf.Mipmapped() {
		flags |= DDSCAPS_MIPMAP
	}
	return flags
}

// Build synthesizes the 128-byte file header for pf.
func Build(pf texture.PixelFormat, opts HeaderOptions) [DDS_FILE_HEADER_SIZE]byte {
	var header [DDS_FILE_HEADER_SIZE]byte
	EncodeTo(header[:], pf, opts)
	return header
}

// EncodeTo writes the 128-byte file header for pf into buf.
// The buffer must be at least DDS_FILE_HEADER_SIZE bytes.
func EncodeTo(buf []byte, pf texture.PixelFormat, opts HeaderOptions) {
	h := buf[:DDS_FILE_HEADER_SIZE]
	clear(h)

	binary.LittleEndian.PutUint32(h[0x00:], DDS_MAGIC)
	binary.LittleEndian.PutUint32(h[0x04:], DDS_HEADER_SIZE)
	binary.LittleEndian.PutUint32(h[0x08:], HeaderFlags(pf, opts))
	binary.LittleEndian.PutUint32(h[0x0C:], uint32(pf.Height))
	binary.LittleEndian.PutUint32(h[0x10:], uint32(pf.Width))
	// 0x14 pitchOrLinearSize and 0x18 depth stay zero
	binary.LittleEndian.PutUint32(h[0x1C:], uint32(pf.MipCount))
	// 0x20..0x4B dwReserved1[11]

	p := h[DDS_PIXELFORMAT_START:]
	binary.LittleEndian.PutUint32(p[0x00:], DDS_PIXELFORMAT_SIZE)
	binary.LittleEndian.PutUint32(p[0x04:], PixelFormatFlags(pf))
	fourCC := pf.FourCC()
	copy(p[0x08:0x0C], fourCC[:])
	binary.LittleEndian.PutUint32(p[0x0C:], pf.RGBBitCount)
	binary.LittleEndian.PutUint32(p[0x10:], pf.RBitMask)
	binary.LittleEndian.PutUint32(p[0x14:], pf.GBitMask)
	binary.LittleEndian.PutUint32(p[0x18:], pf.BBitMask)
	binary.LittleEndian.PutUint32(p[0x1C:], pf.ABitMask)

	binary.LittleEndian.PutUint32(h[0x6C:], CapsFlags(pf, opts))
	// 0x70 caps2, 0x74 caps3, 0x78 caps4, 0x7C reserved2 stay zero
}

// Header is a decoded DDS file header.
type Header struct {
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	PixelFormatFlags  uint32
	FourCC            [4]byte
	RGBBitCount       uint32
	RBitMask          uint32
	GBitMask          uint32
	BBitMask          uint32
	ABitMask          uint32
	Caps              uint32
	Caps2             uint32
}

// ReadHeader decodes the first 128 bytes of a DDS file.
func ReadHeader(data []byte) (*Header, error) {
	if len(data) < DDS_FILE_HEADER_SIZE {
		return nil, fmt.Errorf("header data too short: need %d, got %d", DDS_FILE_HEADER_SIZE, len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != DDS_MAGIC {
		return nil, fmt.Errorf("invalid DDS magic: 0x%08x", magic)
	}
	if size := binary.LittleEndian.Uint32(data[4:8]); size != DDS_HEADER_SIZE {
		return nil, fmt.Errorf("invalid header size: expected %d, got %d", DDS_HEADER_SIZE, size)
	}

	p := data[DDS_PIXELFORMAT_START:]
	h := &Header{
		Flags:             binary.LittleEndian.Uint32(data[0x08:]),
		Height:            binary.LittleEndian.Uint32(data[0x0C:]),
		Width:             binary.LittleEndian.Uint32(data[0x10:]),
		PitchOrLinearSize: binary.LittleEndian.Uint32(data[0x14:]),
		Depth:             binary.LittleEndian.Uint32(data[0x18:]),
		MipMapCount:       binary.LittleEndian.Uint32(data[0x1C:]),
		PixelFormatFlags:  binary.LittleEndian.Uint32(p[0x04:]),
		RGBBitCount:       binary.LittleEndian.Uint32(p[0x0C:]),
		RBitMask:          binary.LittleEndian.Uint32(p[0x10:]),
		GBitMask:          binary.LittleEndian.Uint32(p[0x14:]),
		BBitMask:          binary.LittleEndian.Uint32(p[0x18:]),
		ABitMask:          binary.LittleEndian.Uint32(p[0x1C:]),
		Caps:              binary.LittleEndian.Uint32(data[0x6C:]),
		Caps2:             binary.LittleEndian.Uint32(data[0x70:]),
	}
	copy(h.FourCC[:], p[0x08:0x0C])
	return h, nil
}

// Compressed reports whether the header declares a FourCC format.
func (h *Header) Compressed() bool {
	return h.PixelFormatFlags&DDPF_FOURCC != 0
}

// Mipmapped reports whether the header declares a mip chain.
func (h *Header) Mipmapped() bool {
	return h.Flags&DDSD_MIPMAPCOUNT != 0 && h.Caps&DDSCAPS_MIPMAP != 0
}

// HasAlpha reports DDPF_ALPHAPIXELS.
func (h *Header) HasAlpha() bool {
	return h.PixelFormatFlags&DDPF_ALPHAPIXELS != 0
}

// HasAlphaOnly reports DDPF_ALPHA.
func (h *Header) HasAlphaOnly() bool {
	return h.PixelFormatFlags&DDPF_ALPHA != 0
}

// IsYUV reports DDPF_YUV.
func (h *Header) IsYUV() bool {
	return h.PixelFormatFlags&DDPF_YUV != 0
}

// IsLuminance reports DDPF_LUMINANCE.
func (h *Header) IsLuminance() bool {
	return h.PixelFormatFlags&DDPF_LUMINANCE != 0
}

// Options recovers the HeaderOptions the header was built with.
func (h *Header) Options() HeaderOptions {
	return HeaderOptions{
		Pitch:   h.Flags&(DDSD_PITCH|DDSD_LINEARSIZE) != 0,
		Depth:   h.Flags&DDSD_DEPTH != 0,
		Complex: h.Caps&DDSCAPS_COMPLEX != 0,
	}
}

// Compression maps the FourCC back to a compression kind.
func (h *Header) Compression() texture.CompressionKind {
	if !h.Compressed() {
		return texture.Uncompressed
	}
	switch string(h.FourCC[:]) {
	case "DXT1":
		return texture.DXT1
	case "DXT3":
		return texture.DXT3
	case "DXT5":
		return texture.DXT5
	default:
		return texture.Unknown
	}
}

// MipLevels returns the mip count, treating zero as a single level.
func (h *Header) MipLevels() int {
	if h.MipMapCount == 0 {
		return 1
	}
	return int(h.MipMapCount)
}
