// Package main converts RTT textures to DDS.
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
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.rtt|dir>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Converts RTT textures to DDS. Directories are searched for .rtt files.\n\nOptions:\n")
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

	results := convert.RTTFiles(flag.Args(), opts...)

	if cfg.Report != "" {
		if err := convert.WriteReport(cfg.Report, "rtt2dds", results); err != nil {
			return err
		}
	}

	s := convert.Summarize(results)
	if !cfg.Quiet {
		fmt.Printf("Converted %d/%d files (%d with warnings)\n", s.Success, s.Total, s.Warnings)
	}
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", s.Failed, s.Total)
	}
	return nil
}

func validateFlags() error {
	if flag.NArg() == 0 {
		return fmt.Errorf("at least one input path is required")
	}
	return nil
}
