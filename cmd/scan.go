package cmd

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// isFeatureFile reports whether path has a feature definition extension.
func isFeatureFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// ScanFeaturesImpl walks dir recursively and returns every feature
// definition file in lexical order. It is an Impl function: it performs OS
// filesystem operations and is excluded from unit test coverage calculations.
func ScanFeaturesImpl(_ context.Context, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isFeatureFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
