// Package ngp extracts models and textures from Warhawk NGP/VRAM file pairs.
//
// An NGP file holds structured records linked by relative pointers and
// sometimes pixel data. Its sibling VRAM file holds only raw payloads that
// NGP records point into. Every integer in both files is big-endian.
package ngp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// File extensions of the two halves of a pair.
const (
	ExtNGP  = ".ngp"
	ExtVRAM = ".vram"
)

// Source is a loaded NGP/VRAM pair. Records inside the NGP buffer carry a
// flag that selects which of the two buffers their payload lives in.
type Source struct {
	NGP  []byte
	VRAM []byte
}

// Payload returns the buffer selected by an in-NGP flag.
func (s Source) Payload(inNGP bool) []byte {
	if inNGP {
		return s.NGP
	}
	return s.VRAM
}

// PayloadName names the buffer selected by an in-NGP flag, for messages.
func PayloadName(inNGP bool) string {
	if inNGP {
		return "ngp"
	}
	return "vram"
}

// Stem strips a trailing .ngp or .vram extension, so either half of a pair
// (or the bare stem) can be passed on the command line.
func Stem(path string) string {
	for _, ext := range []string{ExtNGP, ExtVRAM} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

// ReadFunc loads a whole file. os.ReadFile is the usual choice; callers that
// accept compressed inputs pass a decompressing reader.
type ReadFunc func(path string) ([]byte, error)

// Open loads <stem>.ngp and <stem>.vram. A missing VRAM file is not an error
// since some NGP files keep every payload inline.
func Open(stem string, read ReadFunc) (Source, error) {
	if read == nil {
		read = os.ReadFile
	}

	ngpData, err := read(stem + ExtNGP)
	if err != nil {
		return Source{}, fmt.Errorf("read ngp: %w", err)
	}

	vramData, err := read(stem + ExtVRAM)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Source{}, fmt.Errorf("read vram: %w", err)
	}

	return Source{NGP: ngpData, VRAM: vramData}, nil
}
