// Package collector expands user-supplied paths into the ordered list of
// Python source files to scan.
package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// excludedDirs are directory names skipped during collection. Matching is by
// exact path segment, never substring.
var excludedDirs = map[string]bool{
	".venv":        true,
	"node_modules": true,
}

// PathNotFoundError reports an explicitly named input that does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// Collect expands the given files and directories into a deduplicated list of
// source files, preserving first-seen order. Directories are walked
// recursively in lexical order for .py files; explicitly named files are
// included regardless of extension. A missing explicit input yields a
// *PathNotFoundError but does not stop collection of the remaining inputs;
// the files gathered so far are always returned alongside any error.
func Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	var errs []error

	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				errs = append(errs, &PathNotFoundError{Path: path})
			} else {
				errs = append(errs, fmt.Errorf("failed to stat %s: %w", path, err))
			}
			continue
		}

		if !info.IsDir() {
			if !hasExcludedSegment(path) {
				add(path)
			}
			continue
		}

		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if excludedDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) != ".py" || hasExcludedSegment(p) {
				return nil
			}
			add(p)
			return nil
		})
		if walkErr != nil {
			errs = append(errs, fmt.Errorf("failed to walk %s: %w", path, walkErr))
		}
	}

	return files, errors.Join(errs...)
}

// hasExcludedSegment reports whether any path segment is on the denylist.
func hasExcludedSegment(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if excludedDirs[segment] {
			return true
		}
	}
	return false
}
