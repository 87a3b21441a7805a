// Package main extracts textures from a descriptor table inside an NGP file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JMcKiern/warhawk-reversing/internal/config"
	"github.com/JMcKiern/warhawk-reversing/pkg/binio"
	"github.com/JMcKiern/warhawk-reversing/pkg/convert"
)

var (
	configPath string
	startHex   string
	endHex     string
	toDDS      bool
	flags      config.Flags

	start, end int
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flag.StringVar(&startHex, "start", "", "Offset of the first descriptor, in hex (e.g. 0x1c40)")
	flag.StringVar(&endHex, "end", "", "Offset just past the last descriptor, in hex")
	flag.BoolVar(&toDDS, "dds", false, "Also convert each extracted RTT to DDS")
	flags.Register(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -start <hex> -end <hex> [options] <stem>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Writes every non-empty 16-byte descriptor in [start, end) of <stem>.ngp\nas <stem>_0x<offset>.rtt.\n\nOptions:\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := validateFlags(); err != nil {
		flag.Usage()
		return err
	}

	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}
	cfg.Resolve(flags)

	opts, err := convert.FromConfig(cfg)
	if err != nil {
		return err
	}
	opts = append(opts, convert.WithDDS(toDDS))

	if !cfg.Quiet {
		fmt.Printf("0x%x 0x%x %s\n", start, end, flag.Arg(0))
	}
	results := convert.TextureRange(flag.Arg(0), start, end, opts...)

	if cfg.Report != "" {
		if err := convert.WriteReport(cfg.Report, "ngptextures", results); err != nil {
			return err
		}
	}

	s := convert.Summarize(results)
	if !cfg.Quiet {
		fmt.Printf("Extracted %d/%d textures\n", s.Success, s.Total)
	}
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d textures failed", s.Failed, s.Total)
	}
	return nil
}

func validateFlags() error {
	if flag.NArg() != 1 {
		return fmt.Errorf("exactly one ngp stem is required")
	}
	if startHex == "" || endHex == "" {
		return fmt.Errorf("-start and -end are required")
	}

	var err error
	start, end, err = parseRange(startHex, endHex)
	return err
}

// parseRange parses the [start, end) descriptor range.
func parseRange(startHex, endHex string) (int, int, error) {
	start, err := binio.ParseOffset(startHex)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -start: %w", err)
	}
	end, err := binio.ParseOffset(endHex)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -end: %w", err)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("-end must be greater than -start")
	}
	return start, end, nil
}
