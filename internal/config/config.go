// Package config loads the optional JSON settings file shared by the
// command line tools.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/JMcKiern/warhawk-reversing/pkg/archive"
)

// Defaults
const (
	DefaultPointerDepth = 3
	DefaultPreviewSize  = 256
)

// Config holds settings that can come from a file or from flags.
type Config struct {
	// Output
	OutputDir string `json:"output_dir"`
	Report    string `json:"report"`
	Quiet     bool   `json:"quiet"`

	// Decoding
	Permissive bool `json:"permissive"`

	// Extras
	Preview          string `json:"preview"`
	PreviewSize      int    `json:"preview_size"`
	Compress         bool   `json:"compress"`
	CompressionLevel int    `json:"compression_level"`

	// Pointer analysis
	PointerDepth int `json:"pointer_depth"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional is Load for an optional -config flag: an empty path yields
// the zero Config.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	return Load(path)
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone.
type Flags struct {
	OutputDir        string
	Report           string
	Quiet            bool
	Permissive       bool
	Preview          string
	PreviewSize      int
	Compress         bool
	CompressionLevel int
	PointerDepth     int
}

// Register binds the conversion flags shared by the tools to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.OutputDir, "output", "", "Output directory (default: next to each input)")
	fs.StringVar(&f.Report, "report", "", "Write a JSON report of every conversion to this path")
	fs.BoolVar(&f.Quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&f.Permissive, "permissive", false, "Convert textures that fail header checks, reporting warnings")
	fs.StringVar(&f.Preview, "preview", "", "Also render each texture as an image: png, webp, bmp or jpeg")
	fs.IntVar(&f.PreviewSize, "preview-size", 0, "Maximum preview width or height (default 256)")
	fs.BoolVar(&f.Compress, "compress", false, "Write outputs as zstd archives (.zst)")
	fs.IntVar(&f.CompressionLevel, "level", 0, "zstd compression level for -compress")
}

// Resolve applies flag overrides and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Report != "" {
		c.Report = flags.Report
	}
	if flags.Quiet {
		c.Quiet = true
	}
	if flags.Permissive {
		c.Permissive = true
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.Compress {
		c.Compress = true
	}
	if flags.CompressionLevel > 0 {
		c.CompressionLevel = flags.CompressionLevel
	}
	if flags.PointerDepth > 0 {
		c.PointerDepth = flags.PointerDepth
	}

	// Defaults
	if c.PreviewSize <= 0 {
		c.PreviewSize = DefaultPreviewSize
	}
	if c.CompressionLevel <= 0 {
		c.CompressionLevel = archive.DefaultCompressionLevel
	}
	if c.PointerDepth <= 0 {
		c.PointerDepth = DefaultPointerDepth
	}
}
