package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/JMcKiern/warhawk-reversing/pkg/archive"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warhawk.json")
	data := `{"output_dir": "out", "permissive": true, "preview": "webp", "preview_size": 128}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "out" || !cfg.Permissive || cfg.Preview != "webp" || cfg.PreviewSize != 128 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Run("Missing", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(bad); err == nil {
			t.Error("expected error for invalid json")
		}
	})

	t.Run("Optional", func(t *testing.T) {
		cfg, err := LoadOptional("")
		if err != nil || cfg != (Config{}) {
			t.Errorf("expected zero config, got %+v, %v", cfg, err)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Run("FlagsOverride", func(t *testing.T) {
		cfg := Config{OutputDir: "file", Preview: "png", PreviewSize: 64}
		cfg.Resolve(Flags{OutputDir: "flag", PreviewSize: 512, Quiet: true})

		if cfg.OutputDir != "flag" || cfg.PreviewSize != 512 || !cfg.Quiet {
			t.Errorf("flags not applied: %+v", cfg)
		}
		if cfg.Preview != "png" {
			t.Errorf("unset flag overrode file value: %+v", cfg)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		var cfg Config
		cfg.Resolve(Flags{})

		if cfg.PreviewSize != DefaultPreviewSize {
			t.Errorf("expected preview size %d, got %d", DefaultPreviewSize, cfg.PreviewSize)
		}
		if cfg.CompressionLevel != archive.DefaultCompressionLevel {
			t.Errorf("expected compression level %d, got %d", archive.DefaultCompressionLevel, cfg.CompressionLevel)
		}
		if cfg.PointerDepth != DefaultPointerDepth {
			t.Errorf("expected pointer depth %d, got %d", DefaultPointerDepth, cfg.PointerDepth)
		}
	})
}

func TestRegister(t *testing.T) {
	var flags Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.Register(fs)

	if err := fs.Parse([]string{"-output", "out", "-permissive", "-preview", "bmp", "-level", "7", "in.rtt"}); err != nil {
		t.Fatal(err)
	}
	if flags.OutputDir != "out" || !flags.Permissive || flags.Preview != "bmp" || flags.CompressionLevel != 7 {
		t.Errorf("flags not parsed: %+v", flags)
	}
	if fs.NArg() != 1 || fs.Arg(0) != "in.rtt" {
		t.Errorf("unexpected args: %v", fs.Args())
	}
}
