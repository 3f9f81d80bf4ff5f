package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromPath reads a suite file (YAML or JSON), validates it, and resolves
// relative case paths against the file's directory.
func LoadFromPath(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	s, err := Load(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("suite %s: %w", path, err)
	}
	s.resolve(filepath.Dir(path))
	return s, nil
}

// Load parses a suite from bytes. ext is the file extension used as a format
// hint; when it is neither YAML nor JSON the content decides (a leading '{'
// means JSON). Load does not validate.
func Load(data []byte, ext string) (*Suite, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".json":
		return decodeJSON(data)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite yaml: %w", err)
	}
	return &s, nil
}

func decodeJSON(data []byte) (*Suite, error) {
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite json: %w", err)
	}
	return &s, nil
}
