package ngp

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/JMcKiern/warhawk-reversing/pkg/binio"
	"github.com/JMcKiern/warhawk-reversing/pkg/format"
	"github.com/JMcKiern/warhawk-reversing/pkg/rtt"
	"github.com/JMcKiern/warhawk-reversing/pkg/texture"
)

// DescriptorSize is the size of a texture descriptor.
const DescriptorSize = 0x10

// Descriptor is a texture record inside an NGP file. Its first 0x0C bytes
// have the same layout as RTT header bytes 0x04 to 0x0F.
type Descriptor struct {
	Compression   uint8
	Reserved      uint8
	ImageFormat   uint16
	Width         uint16
	Height        uint16
	InNGP         bool
	Guard0        uint8
	MipCount      uint8
	Guard1        uint8
	PayloadOffset uint32
}

// ParseDescriptor decodes a 16-byte texture descriptor.
func ParseDescriptor(b []byte) (*Descriptor, error) {
	if len(b) != DescriptorSize {
		return nil, format.Errorf(format.MalformedDescriptor, 0, "expected %d bytes, got %d", DescriptorSize, len(b))
	}
	return &Descriptor{
		Compression:   b[0x00],
		Reserved:      b[0x01],
		ImageFormat:   binary.BigEndian.Uint16(b[0x02:0x04]),
		Width:         binary.BigEndian.Uint16(b[0x04:0x06]),
		Height:        binary.BigEndian.Uint16(b[0x06:0x08]),
		InNGP:         b[0x08] == 0x01,
		Guard0:        b[0x09],
		MipCount:      b[0x0A],
		Guard1:        b[0x0B],
		PayloadOffset: binary.BigEndian.Uint32(b[0x0C:0x10]),
	}, nil
}

// PixelFormat derives the pixel format of the payload.
func (d *Descriptor) PixelFormat() (texture.PixelFormat, error) {
	kind := texture.ParseCompression(d.Compression)
	if kind == texture.Unknown {
		return texture.PixelFormat{}, format.Errorf(format.UnknownCompression, 0, "code 0x%02x", d.Compression)
	}
	return texture.NewPixelFormat(kind, texture.ParseImageFormat(d.ImageFormat), d.Width, d.Height, d.MipCount), nil
}

// RTTHeader returns the RTT header describing this texture. The in-NGP flag
// occupies RTT byte 0x0C, which must be zero, so it is always cleared.
func (d *Descriptor) RTTHeader() rtt.Header {
	return rtt.Header{
		Compression: d.Compression,
		Reserved0:   d.Reserved,
		ImageFormat: d.ImageFormat,
		Width:       d.Width,
		Height:      d.Height,
		Reserved1:   0,
		Guard0:      d.Guard0,
		MipCount:    d.MipCount,
		Guard1:      d.Guard1,
	}
}

// String returns a human-readable representation.
func (d *Descriptor) String() string {
	return fmt.Sprintf("Descriptor{compression: 0x%02x, format: 0x%04x, %dx%d, mips: %d, %s@0x%x}",
		d.Compression, d.ImageFormat, d.Width, d.Height, d.MipCount, PayloadName(d.InNGP), d.PayloadOffset)
}

// Locate reads the payload a descriptor points to and wraps it in a
// complete RTT file suitable for rtt.Decode.
func Locate(desc []byte, src Source) ([]byte, error) {
	d, err := ParseDescriptor(desc)
	if err != nil {
		return nil, err
	}
	pf, err := d.PixelFormat()
	if err != nil {
		return nil, err
	}

	r := binio.NewReader(src.Payload(d.InNGP))
	payload, err := r.Slice(int(d.PayloadOffset), pf.DataSize())
	if err != nil {
		return nil, format.Wrap(format.Truncated, int(d.PayloadOffset), fmt.Errorf("%s payload: %w", PayloadName(d.InNGP), err))
	}

	return rtt.Encode(d.RTTHeader(), payload)
}

// LocateAt runs Locate on the descriptor stored at offset in src.NGP.
func LocateAt(src Source, offset int) ([]byte, error) {
	desc, err := binio.NewReader(src.NGP).Slice(offset, DescriptorSize)
	if err != nil {
		return nil, format.Wrap(format.Truncated, offset, err)
	}
	return Locate(desc, src)
}

// ScanDescriptors returns the offsets of the non-zero 16-byte rows in
// [start, end) of data. Rows are not validated.
func ScanDescriptors(data []byte, start, end int) []int {
	var zero [DescriptorSize]byte
	end = min(end, len(data))

	var offsets []int
	for off := max(start, 0); off < end; off += DescriptorSize {
		row := data[off:min(off+DescriptorSize, len(data))]
		if !bytes.Equal(row, zero[:len(row)]) {
			offsets = append(offsets, off)
		}
	}
	return offsets
}

// DescriptorAt returns the bytes of the row at offset, shortened if it runs
// past the end of data.
func DescriptorAt(data []byte, offset int) []byte {
	if offset < 0 || offset >= len(data) {
		return nil
	}
	return data[offset:min(offset+DescriptorSize, len(data))]
}
