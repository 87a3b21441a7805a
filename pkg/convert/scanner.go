package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JMcKiern/warhawk-reversing/pkg/archive"
)

// Input extensions
const (
	ExtRTT = ".rtt"
	ExtDDS = ".dds"
	ExtOBJ = ".obj"
	ExtMTL = ".mtl"
)

// FindFiles expands paths into input files. Plain files are kept as given.
// Directories are walked for files ending in ext, or ext+".zst".
func FindFiles(paths []string, ext string) ([]string, error) {
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("find files: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		var found []string
		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if hasExt(path, ext) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("find files: %w", err)
		}

		sort.Strings(found)
		files = append(files, found...)
	}

	return files, nil
}

func hasExt(path, ext string) bool {
	path = strings.ToLower(strings.TrimSuffix(path, archive.Ext))
	return strings.HasSuffix(path, ext)
}

// trimExt drops a compression suffix and then one extension.
func trimExt(path string) string {
	path = strings.TrimSuffix(path, archive.Ext)
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// outputName returns the base name of path with its extension replaced.
func outputName(path, ext string) string {
	return trimExt(filepath.Base(path)) + ext
}
