package state

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the YAML artifact the equation-compilation stage emits.
type tableFile struct {
	States []Descriptor `yaml:"states"`
}

// ParseTable decodes a descriptor table from its YAML representation.
func ParseTable(src []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(src, &file); err != nil {
		return nil, fmt.Errorf("failed to decode state table: %w", err)
	}
	return NewTable(file.States)
}

// LoadTable reads and decodes a descriptor table file.
func LoadTable(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state table %s: %w", path, err)
	}
	table, err := ParseTable(src)
	if err != nil {
		return nil, fmt.Errorf("state table %s: %w", path, err)
	}
	return table, nil
}
