// Package rtt converts Warhawk RTT textures to DDS.
//
// An RTT file is a 0x80-byte header followed by raw pixel data that DDS
// readers understand once the header is replaced. Only the first 0x10 header
// bytes carry information; the rest is zero padding.
package rtt

import (
	"encoding/binary"
	"fmt"
)

// Magic is the first byte of every RTT file.
const Magic = 0x80

// HeaderSize is the size of the RTT header, equal to the DDS header size.
const HeaderSize = 0x80

// FieldsSize is the number of meaningful header bytes.
const FieldsSize = 0x10

// MaxFileSize is the largest file the 24-bit size field can describe.
const MaxFileSize = 0xFFFFFF + 4

// Header holds the raw RTT header fields. Multi-byte fields are big-endian.
type Header struct {
	Magic       uint8
	Size        uint32 // file size minus 4, 24 bits
	Compression uint8
	Reserved0   uint8 // 0x05
	ImageFormat uint16
	Width       uint16
	Height      uint16
	Reserved1   uint8 // 0x0C, the in-NGP flag of a texture descriptor
	Guard0      uint8 // 0x0D
	MipCount    uint8
	Guard1      uint8 // 0x0F
}

// FileSize returns the file size declared by the header.
func (h *Header) FileSize() int {
	return int(h.Size) + 4
}

// FamilyGuardOK reports whether the bytes at 0x0D and 0x0F match the texture
// family this package understands. Other values belong to the "defaultfog"
// textures, whose layout has not been worked out.
func FamilyGuardOK(guard0, guard1 uint8) bool {
	return guard0 == 0x01 && guard1 == 0x02
}

// FamilyGuardOK applies FamilyGuardOK to the header's guard bytes.
func (h *Header) FamilyGuardOK() bool {
	return FamilyGuardOK(h.Guard0, h.Guard1)
}

// DecodeFrom reads the header from the given buffer.
// The buffer must be at least FieldsSize bytes. Does not validate.
func (h *Header) DecodeFrom(data []byte) {
	h.Magic = data[0x00]
	h.Size = binary.BigEndian.Uint32(data[0x00:0x04]) & 0x00FFFFFF
	h.Compression = data[0x04]
	h.Reserved0 = data[0x05]
	h.ImageFormat = binary.BigEndian.Uint16(data[0x06:0x08])
	h.Width = binary.BigEndian.Uint16(data[0x08:0x0A])
	h.Height = binary.BigEndian.Uint16(data[0x0A:0x0C])
	h.Reserved1 = data[0x0C]
	h.Guard0 = data[0x0D]
	h.MipCount = data[0x0E]
	h.Guard1 = data[0x0F]
}

// EncodeTo writes the header to the given buffer and zeroes the padding.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	clear(buf[:HeaderSize])
	binary.BigEndian.PutUint32(buf[0x00:0x04], h.Size&0x00FFFFFF)
	buf[0x00] = h.Magic
	buf[0x04] = h.Compression
	buf[0x05] = h.Reserved0
	binary.BigEndian.PutUint16(buf[0x06:0x08], h.ImageFormat)
	binary.BigEndian.PutUint16(buf[0x08:0x0A], h.Width)
	binary.BigEndian.PutUint16(buf[0x0A:0x0C], h.Height)
	buf[0x0C] = h.Reserved1
	buf[0x0D] = h.Guard0
	buf[0x0E] = h.MipCount
	buf[0x0F] = h.Guard1
}

// MarshalBinary encodes the header to its 0x80-byte form.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// UnmarshalBinary decodes the header from binary format.
// Field validation is left to Decode.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return nil
}

// String returns a human-readable representation.
func (h *Header) String() string {
	return fmt.Sprintf("RTT{size: 0x%x, compression: 0x%02x, format: 0x%04x, %dx%d, mips: %d}",
		h.FileSize(), h.Compression, h.ImageFormat, h.Width, h.Height, h.MipCount)
}

// Encode builds a complete RTT file from h and payload. Magic and Size are
// derived from the payload; every other field is taken from h.
func Encode(h Header, payload []byte) ([]byte, error) {
	total := HeaderSize + len(payload)
	if total > MaxFileSize {
		return nil, fmt.Errorf("encode rtt: payload of %d bytes exceeds the 24-bit size field", len(payload))
	}
	h.Magic = Magic
	h.Size = uint32(total - 4)

	buf := make([]byte, total)
	h.EncodeTo(buf)
	copy(buf[HeaderSize:], payload)
	return buf, nil
}
