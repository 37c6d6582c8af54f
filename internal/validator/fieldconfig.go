package validator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldConfig is an optional external vocabulary for transition qualifier and
// message fields. Membership checks against it are advisory: values outside
// the vocabulary produce warnings, never errors. An empty list disables the
// check for that field.
type FieldConfig struct {
	Revisions    []string `yaml:"revisions" json:"revisions,omitempty"`
	Instruments  []string `yaml:"instruments" json:"instruments,omitempty"`
	Topics       []string `yaml:"topics" json:"topics,omitempty"`
	MessageTypes []string `yaml:"messageTypes" json:"messageTypes,omitempty"`
	FlowTypes    []string `yaml:"flowTypes" json:"flowTypes,omitempty"`
}

// LoadFieldConfig reads a YAML vocabulary file.
func LoadFieldConfig(path string) (*FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field config: %w", err)
	}
	var cfg FieldConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse field config: %w", err)
	}
	return &cfg, nil
}

// outside reports whether value is set, the vocabulary is non-empty, and the
// value is not in it.
func outside(vocabulary []string, value string) bool {
	if value == "" || len(vocabulary) == 0 {
		return false
	}
	for _, v := range vocabulary {
		if v == value {
			return false
		}
	}
	return true
}
