package archive

import (
	"fmt"
	"os"

	"github.com/DataDog/zstd"
)

const (
	// DefaultCompressionLevel is the default compression level for encoding.
	DefaultCompressionLevel = zstd.BestSpeed

	// Ext is appended to the name of wrapped output files.
	Ext = ".zst"
)

type writer struct {
	level int
	kind  Kind
}

// WriterOption configures Wrap and WriteFile.
type WriterOption func(*writer)

// WithCompressionLevel sets the zstd compression level.
func WithCompressionLevel(level int) WriterOption {
	return func(w *writer) {
		w.level = level
	}
}

// WithKind records the asset kind in the header. WriteFile derives it from
// the file name when not given.
func WithKind(kind Kind) WriterOption {
	return func(w *writer) {
		w.kind = kind
	}
}

// Wrap compresses data and prepends an archive header.
func Wrap(data []byte, opts ...WriterOption) ([]byte, error) {
	w := &writer{level: DefaultCompressionLevel}
	for _, opt := range opts {
		opt(w)
	}
	return w.wrap(data)
}

func (w *writer) wrap(data []byte) ([]byte, error) {
	compressed, err := zstd.CompressLevel(nil, data, w.level)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	out := make([]byte, HeaderSize+len(compressed))
	NewHeader(w.kind, uint64(len(data)), uint64(len(compressed))).EncodeTo(out)
	copy(out[HeaderSize:], compressed)
	return out, nil
}

// WriteFile wraps data and writes it to path+Ext. It returns the path
// written.
func WriteFile(path string, data []byte, opts ...WriterOption) (string, error) {
	w := &writer{level: DefaultCompressionLevel, kind: KindForPath(path)}
	for _, opt := range opts {
		opt(w)
	}

	out, err := w.wrap(data)
	if err != nil {
		return "", err
	}

	path += Ext
	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
