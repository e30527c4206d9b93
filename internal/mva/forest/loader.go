package forest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a forest from a YAML (or JSON) weight file.
func Load(path string) (*Forest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a forest from its serialized form.
func Parse(raw []byte) (*Forest, error) {
	var f Forest
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}
