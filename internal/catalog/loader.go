package catalog

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a role catalog from a YAML file. The file is a mapping from
// role key to template:
//
//	qa:
//	  title: QA Engineer
//	  skills: [testing, automation]
//	  questions:
//	    - Tell me about your experience with software testing.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}

	var jobs map[string]*JobTemplate
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parsing catalog file %q: %w", path, err)
	}

	c, err := New(jobs)
	if err != nil {
		return nil, fmt.Errorf("catalog file %q: %w", path, err)
	}

	return c, nil
}

// FromMap builds a role catalog from a generic mapping, such as a "jobs"
// section of the application config file.
func FromMap(raw map[string]any) (*Catalog, error) {
	var jobs map[string]*JobTemplate
	if err := mapstructure.Decode(raw, &jobs); err != nil {
		return nil, fmt.Errorf("decoding jobs section: %w", err)
	}

	c, err := New(jobs)
	if err != nil {
		return nil, fmt.Errorf("jobs section: %w", err)
	}

	return c, nil
}
