package ngp

import (
	"fmt"

	"github.com/JMcKiern/warhawk-reversing/pkg/binio"
	"github.com/JMcKiern/warhawk-reversing/pkg/format"
)

// TextureMarker precedes the relative pointer to a model's texture descriptor.
const TextureMarker = 0x00111122

// ModelLocation is a model record found by FindModels.
type ModelLocation struct {
	Offset int
	Length int
}

// FindNextModel returns the first model record at or after start. Candidates
// are 4-byte aligned words equal to ModelMagic with ModelGuard at
// ModelGuardOffset.
func FindNextModel(data []byte, start int) (ModelLocation, bool) {
	r := binio.NewReader(data)
	for off := start; off+4 <= len(data); off += 4 {
		if magic, _ := r.U32(off); magic != ModelMagic {
			continue
		}
		if guard, err := r.U32(off + ModelGuardOffset); err != nil || guard != ModelGuard {
			continue
		}
		n, err := r.U8(off + 0x26)
		if err != nil {
			continue
		}
		return ModelLocation{Offset: off, Length: ModelSize(n)}, true
	}
	return ModelLocation{}, false
}

// FindModels lists every model record in data. Scanning resumes after each
// record, so bytes inside a record are never matched again.
func FindModels(data []byte) []ModelLocation {
	var models []ModelLocation
	for off := 0; ; {
		loc, ok := FindNextModel(data, off)
		if !ok {
			return models
		}
		models = append(models, loc)
		off = loc.Offset + loc.Length
	}
}

// TextureOffset follows a model's pointers to its texture descriptor.
//
// The word at offset+4 points to a block whose word at +0x10 points back to
// the start of a tagged list ending at the block. The last TextureMarker in
// that list followed by a non-zero relative pointer gives the descriptor.
// A model without a marker has no texture.
func TextureOffset(data []byte, offset int) (int, bool, error) {
	r := binio.NewReader(data)

	ptr, err := r.Deref(offset + 0x04)
	if err != nil {
		return 0, false, format.Wrap(format.Truncated, offset+0x04, err)
	}
	list, err := r.Deref(ptr + 0x10)
	if err != nil {
		return 0, false, format.Wrap(format.Truncated, ptr+0x10, err)
	}

	var (
		found  bool
		target int
	)
	start := list
	if start < 0 {
		start += (-start + 3) &^ 3
	}
	for off := start; off < ptr && off+8 <= len(data); off += 4 {
		tag, _ := r.U32(off)
		next, _ := r.U32(off + 4)
		if tag != TextureMarker || next == 0 {
			continue
		}
		if target, err = r.Deref(off + 4); err != nil {
			return 0, false, fmt.Errorf("deref texture pointer: %w", err)
		}
		found = true
	}
	return target, found, nil
}
