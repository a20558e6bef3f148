// Package loader reads raw tree records from disk. Records are opaque
// key/value maps; the tree package interprets them through its field-name
// configuration.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadRecords decodes a list of records from path. The format is chosen by
// extension: .json uses JSON, .yaml/.yml uses YAML. An unreadable or
// undecodable file is an error for the caller; malformed records inside a
// well-formed file are not, the tree builder tolerates those.
func LoadRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return DecodeRecords(data, filepath.Ext(path))
}

// DecodeRecords decodes raw bytes using the format implied by ext.
func DecodeRecords(data []byte, ext string) ([]map[string]any, error) {
	var records []map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	}
	return records, nil
}
