package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// discoverPageFiles finds all page JSON files under the given paths.
func discoverPageFiles(args []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var pageFiles []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			files, err := discoverInDirectory(arg, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			pageFiles = append(pageFiles, files...)
		} else if shouldIncludeFile(arg, includePatterns, excludePatterns) {
			pageFiles = append(pageFiles, arg)
		}
	}

	return pageFiles, nil
}

// discoverInDirectory discovers page files in a directory, optionally
// descending into sub-directories.
func discoverInDirectory(dir string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPageFile(path) {
			return nil
		}
		if shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}

		return nil
	}

	return files, filepath.Walk(dir, walkFn)
}

// isPageFile reports whether a path looks like a page cluster file.
func isPageFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// shouldIncludeFile determines if a file should be included based on
// include/exclude patterns.
func shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if matchesAnyPattern(path, excludePatterns) {
		return false
	}
	if len(includePatterns) == 0 {
		return true
	}
	return matchesAnyPattern(path, includePatterns)
}

// matchesAnyPattern checks if a file's base name matches any of the given
// glob patterns.
func matchesAnyPattern(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
