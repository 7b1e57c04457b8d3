package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// candidateFiles lists the catalogs in dir matching the format, excluding
// every file of the reference locale, sorted by file name.
func candidateFiles(dir string, f catalogFormat, reference string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory: %w", err)
	}
	refCode := localeCode(reference, f)
	var files []string
	for _, e := range entries {
		name := e.Name()
		if _, ok := f.hasExt(name); !ok {
			continue
		}
		// Also skips a sibling such as en.yml next to en.yaml.
		if localeCode(name, f) == refCode {
			continue
		}
		// Follow symlinks; skip directories such as "legacy.json/".
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})
	return files, nil
}

// localeCode returns the locale code encoded in a catalog file name.
func localeCode(path string, f catalogFormat) string {
	name := filepath.Base(path)
	if ext, ok := f.hasExt(name); ok {
		return name[:len(name)-len(ext)]
	}
	return name
}
