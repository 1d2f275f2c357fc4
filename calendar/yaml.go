package calendar

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// overridesFile is the on-disk layout:
//
//	holidays:
//	  - date: 2027-01-01
//	    name: New Year
type overridesFile struct {
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

// LoadYAML reads a holiday overrides file. The file is read on every call so
// an operator can edit it between imports.
func LoadYAML(path string) ([]Holiday, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read holidays yaml: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes holidays from YAML. A bad date fails the whole file.
func ParseYAML(data []byte) ([]Holiday, error) {
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("cannot parse holidays yaml: %w", err)
	}

	out := make([]Holiday, 0, len(f.Holidays))
	for i, entry := range f.Holidays {
		d, err := ParseDate(strings.TrimSpace(entry.Date))
		if err != nil {
			return nil, fmt.Errorf("holidays[%d]: %w", i, err)
		}
		out = append(out, Holiday{Date: d, Name: strings.TrimSpace(entry.Name)})
	}
	return out, nil
}
