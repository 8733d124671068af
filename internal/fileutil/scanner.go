package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Match reports whether a file name (no directory) should be included.
	// A nil Match accepts every file.
	Match func(name string) bool
	// Relative reports paths relative to the scanned directory instead of absolute
	Relative bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the matched paths, sorted
	Files []string
	// Errors contains any non-fatal errors encountered during scanning
	Errors []error
}

// ScanDirectory lists the files directly inside dir that satisfy opts.
// Subdirectories are not entered. Only regular files (or symlinks
// resolving to regular files) are reported.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(path, entry) {
			continue
		}
		if opts.Match != nil && !opts.Match(entry.Name()) {
			continue
		}

		reported, err := reportPath(dir, path, opts.Relative)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Files = append(result.Files, reported)
	}

	sort.Strings(result.Files)

	return result, nil
}

// isRegularFile follows symlinks the way os.Stat does.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func reportPath(root, path string, relative bool) (string, error) {
	if relative {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		return rel, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	return abs, nil
}
