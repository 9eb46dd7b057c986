package acceptance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SerializeIR marshals a Feature into indented JSON bytes.
func SerializeIR(feature *Feature) ([]byte, error) {
	return json.MarshalIndent(feature, "", "  ")
}

// DeserializeIR unmarshals JSON bytes into a Feature.
func DeserializeIR(data []byte) (*Feature, error) {
	var feature Feature
	if err := json.Unmarshal(data, &feature); err != nil {
		return nil, err
	}
	return &feature, nil
}

// DeserializeYAML unmarshals a YAML feature definition into a Feature.
func DeserializeYAML(data []byte) (*Feature, error) {
	var feature Feature
	if err := yaml.Unmarshal(data, &feature); err != nil {
		return nil, err
	}
	return &feature, nil
}

// DecodeFeature decodes a feature definition, choosing JSON or YAML by the
// extension of path, and validates it. This is a pure function with no I/O.
func DecodeFeature(data []byte, path string) (*Feature, error) {
	var (
		feature *Feature
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		feature, err = DeserializeIR(data)
	case ".yaml", ".yml":
		feature, err = DeserializeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported feature file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	feature.SourceFile = path
	if err := feature.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return feature, nil
}

// WriteIRImpl writes IR JSON data to disk, creating directories as needed.
// This is an Impl function exempt from coverage requirements.
func WriteIRImpl(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFeatureFileImpl reads a feature definition from disk and decodes it.
// This is an Impl function exempt from coverage requirements.
func LoadFeatureFileImpl(path string) (*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeFeature(data, path)
}
