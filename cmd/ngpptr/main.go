// Package main inspects the pointers inside NGP files.
//
// follow prints where the relative pointer at an offset points. find lists
// the words that point at an offset, as relative or absolute pointers, and
// the words that point at those in turn.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JMcKiern/warhawk-reversing/internal/config"
	"github.com/JMcKiern/warhawk-reversing/pkg/archive"
	"github.com/JMcKiern/warhawk-reversing/pkg/binio"
)

var (
	mode       string
	configPath string
	useRange   bool
	depth      int

	offsets []int
)

func init() {
	flag.StringVar(&mode, "mode", "", "Operation mode: follow, find")
	flag.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flag.BoolVar(&useRange, "range", false, "find: treat the two offsets as a [start, end) range")
	flag.IntVar(&depth, "depth", 0, "find: maximum pointer chain depth (default 3)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -mode follow <file> <hex offset>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -mode find [-range] [-depth n] <file> <hex offset>...\n\nOptions:\n", os.Args[0])
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
	cfg.Resolve(config.Flags{PointerDepth: depth})

	data, err := archive.ReadFile(flag.Arg(0))
	if err != nil {
		return fmt.Errorf("read %s: %w", flag.Arg(0), err)
	}
	r := binio.NewReader(data)

	switch mode {
	case "follow":
		target, err := r.Deref(offsets[0])
		if err != nil {
			return err
		}
		fmt.Printf("0x%x\n", target)
	case "find":
		for _, off := range offsets {
			writeTree(os.Stdout, off, r.PointerTree(off, cfg.PointerDepth))
		}
	}
	return nil
}

func validateFlags() error {
	if flag.NArg() < 2 {
		return fmt.Errorf("a file and at least one offset are required")
	}

	var args []int
	for _, s := range flag.Args()[1:] {
		off, err := binio.ParseOffset(s)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", s, err)
		}
		args = append(args, off)
	}

	switch mode {
	case "follow":
		if len(args) != 1 {
			return fmt.Errorf("follow takes exactly one offset")
		}
		offsets = args
	case "find":
		if !useRange {
			offsets = args
			break
		}
		if len(args) != 2 {
			return fmt.Errorf("-range takes exactly two offsets")
		}
		offsets = rangeOffsets(args[0], args[1])
	case "":
		return fmt.Errorf("mode is required")
	default:
		return fmt.Errorf("mode must be 'follow' or 'find'")
	}
	return nil
}

// rangeOffsets lists the 4-byte aligned steps in [start, end).
func rangeOffsets(start, end int) []int {
	var out []int
	for off := start; off < end; off += 4 {
		out = append(out, off)
	}
	return out
}

// writeTree prints target followed by its pointer chains, one tab per level.
// Nothing is printed for a target with no pointers.
func writeTree(w io.Writer, target int, nodes []binio.PointerNode) {
	if len(nodes) == 0 {
		return
	}
	fmt.Fprintf(w, "0x%x\n", target)
	writeNodes(w, nodes, 1)
}

func writeNodes(w io.Writer, nodes []binio.PointerNode, level int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s0x%x (%s)\n", strings.Repeat("\t", level), n.Offset, n.Kind)
		writeNodes(w, n.Children, level+1)
	}
}
