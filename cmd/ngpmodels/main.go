// Package main extracts the models in NGP/VRAM pairs as OBJ files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JMcKiern/warhawk-reversing/internal/config"
	"github.com/JMcKiern/warhawk-reversing/pkg/convert"
)

var (
	configPath string
	flags      config.Flags
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flags.Register(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <stem>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extracts every model in <stem>.ngp (payloads from <stem>.vram) as\n<stem>_0x<offset>.obj, with .mtl and .dds files for textured models.\n\nOptions:\n")
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

	var results []convert.Result
	for _, stem := range flag.Args() {
		results = append(results, convert.Models(stem, opts...)...)
	}

	if cfg.Report != "" {
		if err := convert.WriteReport(cfg.Report, "ngpmodels", results); err != nil {
			return err
		}
	}

	s := convert.Summarize(results)
	if !cfg.Quiet {
		fmt.Printf("Extracted %d/%d models (%d with warnings)\n", s.Success, s.Total, s.Warnings)
	}
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d models failed", s.Failed, s.Total)
	}
	return nil
}

func validateFlags() error {
	if flag.NArg() == 0 {
		return fmt.Errorf("at least one ngp stem is required")
	}
	return nil
}
