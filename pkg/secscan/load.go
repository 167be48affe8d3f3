package secscan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSignatures reads extra signatures from a YAML file mapping process
// names to product display names, e.g.
//
//	myedragent: Example EDR
//	myedr-helper: Example EDR
//
// The result is meant to be merged over the built-in table.
func LoadSignatures(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}

	var sigs map[string]string
	if err := yaml.Unmarshal(data, &sigs); err != nil {
		return nil, fmt.Errorf("parse signatures: %w", err)
	}
	return sigs, nil
}
