// Package convert runs the decoders over files on disk: RTT files to DDS,
// NGP/VRAM pairs to OBJ/MTL/DDS, and NGP descriptor tables to RTT.
//
// Every input produces a Result. A failing input never stops the rest of a
// batch.
package convert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JMcKiern/warhawk-reversing/internal/config"
	"github.com/JMcKiern/warhawk-reversing/pkg/archive"
	"github.com/JMcKiern/warhawk-reversing/pkg/preview"
)

type options struct {
	permissive  bool
	outputDir   string
	preview     preview.Format
	previewSize int
	compress    bool
	level       int
	dds         bool
	progress    io.Writer
	read        func(path string) ([]byte, error)
}

// Option configures a conversion.
type Option func(*options)

// WithPermissive decodes RTT data in permissive mode.
func WithPermissive(permissive bool) Option {
	return func(o *options) {
		o.permissive = permissive
	}
}

// WithOutputDir writes outputs to dir instead of next to the input.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

// WithPreview also renders every DDS written as an image in format f,
// scaled down to maxSize (0 keeps the original size).
func WithPreview(f preview.Format, maxSize int) Option {
	return func(o *options) {
		o.preview = f
		o.previewSize = maxSize
	}
}

// WithCompression wraps every output file in a zstd archive.
func WithCompression(level int) Option {
	return func(o *options) {
		o.compress = true
		o.level = level
	}
}

// WithDDS makes TextureRange convert each extracted RTT to DDS as well.
func WithDDS(dds bool) Option {
	return func(o *options) {
		o.dds = dds
	}
}

// WithProgress sets where progress lines go. Defaults to os.Stdout.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// FromConfig turns resolved settings into options.
func FromConfig(cfg config.Config) ([]Option, error) {
	opts := []Option{
		WithPermissive(cfg.Permissive),
		WithOutputDir(cfg.OutputDir),
	}
	if cfg.Preview != "" {
		f, err := preview.ParseFormat(cfg.Preview)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithPreview(f, cfg.PreviewSize))
	}
	if cfg.Compress {
		opts = append(opts, WithCompression(cfg.CompressionLevel))
	}
	if cfg.Quiet {
		opts = append(opts, WithProgress(io.Discard))
	}
	return opts, nil
}

func newOptions(opts []Option) *options {
	o := &options{
		level:    archive.DefaultCompressionLevel,
		progress: os.Stdout,
		read:     readFile,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// readFile reads path, falling back to a compressed path+".zst".
func readFile(path string) ([]byte, error) {
	data, err := archive.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if data, zerr := archive.ReadFile(path + archive.Ext); zerr == nil {
			return data, nil
		}
	}
	return data, err
}

func (o *options) printf(format string, args ...any) {
	fmt.Fprintf(o.progress, format, args...)
}

// outputPath places name in the output directory, or in dir when none is set.
func (o *options) outputPath(dir, name string) string {
	if o.outputDir != "" {
		dir = o.outputDir
	}
	return filepath.Join(dir, name)
}

// write stores data at path, compressed if requested, and returns the path
// actually written.
func (o *options) write(path string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if o.compress {
		return archive.WriteFile(path, data, archive.WithCompressionLevel(o.level))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// writePreview renders a DDS buffer next to its DDS file. The DDS path is
// given without any compression suffix.
func (o *options) writePreview(ddsPath string, ddsData []byte) (string, error) {
	if o.preview == "" {
		return "", nil
	}
	path := trimExt(ddsPath) + o.preview.Ext()
	if err := preview.Render(path, ddsData, o.preview, o.previewSize); err != nil {
		return "", err
	}
	return path, nil
}
