package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads a manifest from a file, auto-detecting the format by
// extension. Supported extensions: .yaml, .yml, .json.
func FromFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Manifest{}, fmt.Errorf("unsupported manifest extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Manifest.
func FromYAML(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse yaml manifest: %w", err)
	}
	return m, nil
}

// FromJSON parses JSON data into a Manifest.
func FromJSON(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse json manifest: %w", err)
	}
	return m, nil
}
