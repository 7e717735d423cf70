package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/countfit/errs"
)

// LoadModel reads and validates a YAML model file. Unknown keys are rejected.
func LoadModel(path string) (*Model, error) {
	dto, err := ReadYAML(path)
	if err != nil {
		return nil, err
	}

	return MapModel(path, dto)
}

// ReadYAML decodes a model file without validating it, so callers can overlay
// command-line values before calling MapModel.
func ReadYAML(path string) (YAMLModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return YAMLModel{}, fmt.Errorf("load model: %w", err)
	}

	var dto YAMLModel
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil {
		return YAMLModel{}, fmt.Errorf("%s: %w: %w", path, errs.ErrInvalidConfig, err)
	}

	return dto, nil
}
