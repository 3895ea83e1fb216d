package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"galcon/internal/model"
)

type fileCatalog struct {
	Endpoints []fileEndpoint `yaml:"endpoints"`
}

type fileEndpoint struct {
	ID         string         `yaml:"id"`
	Label      string         `yaml:"label"`
	Method     string         `yaml:"method"`
	Path       string         `yaml:"path"`
	Help       string         `yaml:"help"`
	Category   string         `yaml:"category"`
	SearchType string         `yaml:"search_type"`
	Fields     []fileField    `yaml:"fields"`
	Sample     map[string]any `yaml:"sample"`
}

type fileField struct {
	Key         string `yaml:"key"`
	Label       string `yaml:"label"`
	Type        string `yaml:"type"`
	Placeholder string `yaml:"placeholder"`
}

// LoadFile reads endpoint descriptors from a YAML overlay file. Entries with
// an id already present in the registry replace the built-in descriptor.
func LoadFile(path string) ([]model.EndpointDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	out := make([]model.EndpointDescriptor, 0, len(fc.Endpoints))
	for _, fe := range fc.Endpoints {
		ep := model.EndpointDescriptor{
			ID:         fe.ID,
			Label:      fe.Label,
			Method:     fe.Method,
			Path:       fe.Path,
			Help:       fe.Help,
			Category:   fe.Category,
			SearchType: fe.SearchType,
			Sample:     fe.Sample,
		}
		for _, ff := range fe.Fields {
			t := model.ValueType(ff.Type)
			if ff.Type == "" {
				t = model.TypeText
			}
			ep.Fields = append(ep.Fields, model.FieldSpec{
				Key:         ff.Key,
				Label:       ff.Label,
				Type:        t,
				Placeholder: ff.Placeholder,
			})
		}
		if err := validate(ep); err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", path, err)
		}
		out = append(out, ep)
	}
	return out, nil
}
