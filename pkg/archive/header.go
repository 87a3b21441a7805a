// Package archive stores converted assets and reads dumped game files that
// were compressed with zstd.
//
// A wrapped file is a fixed header followed by one zstd frame. Inputs may
// also be bare zstd frames, as written by the zstd command line tool, or
// plain uncompressed files.
package archive

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"
)

// Magic bytes identifying a wrapped asset.
var Magic = [4]byte{0x57, 0x48, 0x5a, 0x53} // "WHZS"

// FrameMagic starts every zstd frame.
var FrameMagic = [4]byte{0x28, 0xb5, 0x2f, 0xfd}

// HeaderSize is the fixed binary size of an archive header.
const HeaderSize = 24 // 4 + 2 + 2 + 8 + 8 bytes

// Version is the only header version written and accepted.
const Version = 1

// Kind records what a wrapped file holds, so a renamed file can still be
// identified.
type Kind uint16

const (
	KindOther Kind = iota
	KindRTT
	KindDDS
	KindNGP
	KindVRAM
	KindOBJ
	KindMTL
)

var kindExts = map[Kind]string{
	KindRTT:  ".rtt",
	KindDDS:  ".dds",
	KindNGP:  ".ngp",
	KindVRAM: ".vram",
	KindOBJ:  ".obj",
	KindMTL:  ".mtl",
}

// KindForPath guesses the kind of an asset from its extension. A trailing
// compressed-file extension is ignored.
func KindForPath(path string) Kind {
	path = strings.TrimSuffix(path, Ext)
	ext := strings.ToLower(filepath.Ext(path))
	for k, e := range kindExts {
		if e == ext {
			return k
		}
	}
	return KindOther
}

func (k Kind) String() string {
	if e, ok := kindExts[k]; ok {
		return strings.TrimPrefix(e, ".")
	}
	return "other"
}

// Header represents the header of a wrapped asset.
type Header struct {
	Magic            [4]byte
	Version          uint16
	Kind             Kind
	Length           uint64 // Uncompressed size
	CompressedLength uint64 // Compressed size
}

// Size returns the binary size of the header.
func (h *Header) Size() int {
	return HeaderSize
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("unsupported version: %d", h.Version)
	}
	if h.CompressedLength == 0 {
		return fmt.Errorf("compressed size is zero")
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(h.Kind))
	binary.LittleEndian.PutUint64(buf[8:16], h.Length)
	binary.LittleEndian.PutUint64(buf[16:24], h.CompressedLength)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("header data too short: need %d, got %d", HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from the given buffer.
// Does not validate - use UnmarshalBinary for validation.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Magic[:], data[0:4])
	h.Version = binary.LittleEndian.Uint16(data[4:6])
	h.Kind = Kind(binary.LittleEndian.Uint16(data[6:8]))
	h.Length = binary.LittleEndian.Uint64(data[8:16])
	h.CompressedLength = binary.LittleEndian.Uint64(data[16:24])
}

// NewHeader creates a new archive header with the given sizes.
func NewHeader(kind Kind, uncompressedSize, compressedSize uint64) *Header {
	return &Header{
		Magic:            Magic,
		Version:          Version,
		Kind:             kind,
		Length:           uncompressedSize,
		CompressedLength: compressedSize,
	}
}
