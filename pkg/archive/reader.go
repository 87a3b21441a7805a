package archive

import (
	"bytes"
	"fmt"
	"os"

	"github.com/DataDog/zstd"
)

// IsWrapped reports whether data starts with an archive header.
func IsWrapped(data []byte) bool {
	return len(data) >= HeaderSize && bytes.Equal(data[:4], Magic[:])
}

// IsFrame reports whether data starts with a bare zstd frame.
func IsFrame(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], FrameMagic[:])
}

// Unwrap returns the uncompressed content of data. Wrapped files and bare
// zstd frames are decompressed; anything else is returned as is.
func Unwrap(data []byte) ([]byte, error) {
	switch {
	case IsWrapped(data):
		h := &Header{}
		if err := h.UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("parse header: %w", err)
		}
		body := data[HeaderSize:]
		if uint64(len(body)) != h.CompressedLength {
			return nil, fmt.Errorf("compressed size mismatch: header says %d, got %d", h.CompressedLength, len(body))
		}
		out, err := zstd.Decompress(make([]byte, 0, h.Length), body)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", h.Kind, err)
		}
		if uint64(len(out)) != h.Length {
			return nil, fmt.Errorf("incomplete read: expected %d, got %d", h.Length, len(out))
		}
		return out, nil

	case IsFrame(data):
		out, err := zstd.Decompress(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decompress frame: %w", err)
		}
		return out, nil

	default:
		return data, nil
	}
}

// ReadFile reads a file and unwraps it. Callers get a private buffer they
// are free to modify.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := Unwrap(data)
	if err != nil {
		return nil, fmt.Errorf("unwrap %s: %w", path, err)
	}
	return out, nil
}
