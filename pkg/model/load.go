package model

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode parses a YAML (or JSON, which is valid YAML) form definition.
// Unknown keys are rejected so typos in rule options surface early.
func Decode(data []byte) (FormModel, error) {
	var form FormModel
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&form); err != nil {
		return FormModel{}, fmt.Errorf("form model: decode: %w", err)
	}
	return form, nil
}

// LoadFile reads and decodes a form definition from path.
func LoadFile(path string) (FormModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FormModel{}, fmt.Errorf("form model: read %s: %w", path, err)
	}
	return Decode(data)
}
