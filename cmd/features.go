package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/eykd/behave-go/acceptance"
)

// FeatureReader locates and loads feature definition files.
type FeatureReader interface {
	// ResolvePaths expands directories in paths into the feature files they contain.
	ResolvePaths(ctx context.Context, paths []string) ([]string, error)
	ReadFeature(ctx context.Context, path string) (*acceptance.Feature, error)
}

// loadFeatures resolves paths and reads every feature they name, in order.
func loadFeatures(ctx context.Context, reader FeatureReader, paths []string) ([]*acceptance.Feature, error) {
	files, err := reader.ResolvePaths(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("resolving feature paths: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no feature files found in %v", paths)
	}
	features := make([]*acceptance.Feature, 0, len(files))
	for _, path := range files {
		f, err := reader.ReadFeature(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("reading feature: %w", err)
		}
		features = append(features, f)
	}
	return features, nil
}

// fileFeatureReader implements FeatureReader using OS file I/O.
type fileFeatureReader struct{}

func newDefaultFeatureReader() *fileFeatureReader {
	return &fileFeatureReader{}
}

func (r *fileFeatureReader) ResolvePaths(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := ScanFeaturesImpl(ctx, p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func (r *fileFeatureReader) ReadFeature(_ context.Context, path string) (*acceptance.Feature, error) {
	return acceptance.LoadFeatureFileImpl(path)
}
