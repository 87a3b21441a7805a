// texconv - DDS and RTT texture viewer
//
// Decodes DDS textures, or RTT textures converted on the fly, to ordinary
// image files for inspection.
//
// Supported formats:
//   - DXT1, DXT3, DXT5
//   - 8-bit alpha masks (shown as grayscale)
//
// Usage:
//   texconv decode input.dds output.png    # DDS/RTT → PNG, WebP, BMP or JPEG
//   texconv info input.rtt                 # Show texture info
//   texconv batch webp dir/ out/           # Batch convert directory

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JMcKiern/warhawk-reversing/pkg/archive"
	"github.com/JMcKiern/warhawk-reversing/pkg/convert"
	"github.com/JMcKiern/warhawk-reversing/pkg/dds"
	"github.com/JMcKiern/warhawk-reversing/pkg/preview"
	"github.com/JMcKiern/warhawk-reversing/pkg/rtt"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "decode":
		if len(os.Args) != 4 {
			fmt.Fprintf(os.Stderr, "Usage: texconv decode input.dds output.png\n")
			os.Exit(1)
		}
		if err := decodeTexture(os.Args[2], os.Args[3]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Decoded %s → %s\n", os.Args[2], os.Args[3])

	case "info":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Usage: texconv info input.dds\n")
			os.Exit(1)
		}
		if err := showInfo(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "batch":
		if len(os.Args) != 5 {
			fmt.Fprintf(os.Stderr, "Usage: texconv batch png|webp|bmp|jpeg input_dir output_dir\n")
			os.Exit(1)
		}
		if err := batchConvert(os.Args[2], os.Args[3], os.Args[4]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("texconv - DDS and RTT texture viewer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  texconv decode <input.dds|rtt> <output.png>  # Texture → image")
	fmt.Println("  texconv info <input.dds|rtt>                 # Show info")
	fmt.Println("  texconv batch <format> <dir> <out>           # Batch convert")
	fmt.Println()
	fmt.Println("Output formats: png, webp, bmp, jpeg")
}

// loadDDS reads a DDS file, or an RTT file converted to DDS. Inputs may be
// zstd archives.
func loadDDS(path string) ([]byte, *rtt.Result, error) {
	data, err := archive.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	if len(data) > 0 && data[0] != rtt.Magic {
		return data, nil, nil
	}

	res, err := rtt.Decode(data, rtt.WithPermissive(true))
	if err != nil {
		return nil, nil, fmt.Errorf("convert rtt: %w", err)
	}
	return res.DDS, res, nil
}

// decodeTexture converts a texture to an image file. The format follows the
// output extension.
func decodeTexture(inputPath, outputPath string) error {
	f, err := preview.ParseFormat(filepath.Ext(outputPath))
	if err != nil {
		return err
	}

	data, _, err := loadDDS(inputPath)
	if err != nil {
		return err
	}

	return preview.Render(outputPath, data, f, 0)
}

// showInfo displays information about a texture file
func showInfo(inputPath string) error {
	data, res, err := loadDDS(inputPath)
	if err != nil {
		return err
	}

	h, err := dds.ReadHeader(data)
	if err != nil {
		return fmt.Errorf("parse header: %w", err)
	}

	fmt.Printf("File: %s\n", inputPath)
	if res != nil {
		fmt.Printf("RTT: %s\n", res.Header.String())
		for _, w := range res.Warnings {
			fmt.Printf("Warning: %v\n", w)
		}
	}
	fmt.Printf("Dimensions: %dx%d\n", h.Width, h.Height)
	fmt.Printf("Mip levels: %d\n", h.MipLevels())
	fmt.Printf("Compression: %s\n", h.Compression())
	fmt.Printf("Data size: %d bytes (%.2f KB)\n", len(data)-dds.DDS_FILE_HEADER_SIZE, float64(len(data)-dds.DDS_FILE_HEADER_SIZE)/1024)

	return nil
}

// batchConvert decodes every DDS and RTT file under inputDir
func batchConvert(format, inputDir, outputDir string) error {
	f, err := preview.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var files []string
	for _, ext := range []string{convert.ExtDDS, convert.ExtRTT} {
		found, err := convert.FindFiles([]string{inputDir}, ext)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}

	var failed int
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), archive.Ext)
		out := filepath.Join(outputDir, strings.TrimSuffix(name, filepath.Ext(name))+f.Ext())

		if err := decodeTexture(path, out); err != nil {
			fmt.Printf("Processing %s - Error: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("Processing %s - Done\n", path)
	}

	fmt.Printf("Converted %d/%d files\n", len(files)-failed, len(files))
	if failed > 0 {
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}
