// Package batch defines the fixed set of file batches the benchmark writes.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Suffix selects the files of a batch directory
const Suffix = "txt"

// Definition names a batch and the directory holding its files
type Definition struct {
	Name string
	Dir  string
}

// Batch is a named, ordered list of files benchmarked together
type Batch struct {
	Name  string
	Dir   string
	Files []string
}

// Definitions returns the seven batches in the order they are run
func Definitions() []Definition {
	return []Definition{
		{Name: "75-files mixed-batch", Dir: "75-mixed"},
		{Name: "150-files mixed-batch", Dir: "150-mixed"},
		{Name: "300-files mixed-batch", Dir: "300-mixed"},
		{Name: "100-files 5-paragraph", Dir: "100x-5-paragraph"},
		{Name: "100-files 10-paragraph", Dir: "100x-10-paragraph"},
		{Name: "100-files 20-paragraph", Dir: "100x-20-paragraph"},
		{Name: "100-files 50-paragraph", Dir: "100x-50-paragraph"},
	}
}

// Load lists the files of every definition under root
func Load(root string, defs []Definition) ([]Batch, error) {
	batches := make([]Batch, 0, len(defs))
	for _, def := range defs {
		files, err := ListFiles(filepath.Join(root, def.Dir))
		if err != nil {
			return nil, fmt.Errorf("failed to load batch %q: %w", def.Name, err)
		}
		batches = append(batches, Batch{Name: def.Name, Dir: def.Dir, Files: files})
	}
	return batches, nil
}

// ListFiles returns the regular files directly under dir whose name ends
// with Suffix, in directory order. Subdirectories are not descended.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !entry.Type().IsRegular() {
			// Follow symlinks, keep only those resolving to a regular file
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, path)
	}
	return files, nil
}
