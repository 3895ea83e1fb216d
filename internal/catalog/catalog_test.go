package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"galcon/internal/collector"
	"galcon/internal/model"
)

func TestBuiltinIntegrity(t *testing.T) {
	r := Builtin()
	if r.Len() == 0 {
		t.Fatal("empty built-in catalog")
	}

	seen := map[string]bool{}
	for _, ep := range r.All() {
		if seen[ep.ID] {
			t.Errorf("duplicate endpoint id %q", ep.ID)
		}
		seen[ep.ID] = true

		if ep.Method != "POST" {
			t.Errorf("endpoint %q: method %q, wrapper endpoints are POST", ep.ID, ep.Method)
		}
		if ep.SearchType == "" {
			t.Errorf("endpoint %q: missing default search type", ep.ID)
		}
		if ep.Sample == nil {
			t.Errorf("endpoint %q: missing sample document", ep.ID)
		}
	}
}

func TestBuiltinFieldsCollect(t *testing.T) {
	// every declared field path must be assignable: fill all fields with a
	// value and build the document
	for _, ep := range Builtin().All() {
		if ep.RawOnly() {
			continue
		}
		values := map[string]string{}
		for _, f := range ep.Fields {
			values[f.Key] = "1"
		}
		if _, err := collector.Collect(ep, values); err != nil {
			t.Errorf("endpoint %q: %v", ep.ID, err)
		}
	}
}

func TestRegistryGetAndMerge(t *testing.T) {
	r := Builtin()

	ep, ok := r.Get("contact-enrichment")
	if !ok {
		t.Fatal("contact-enrichment missing")
	}
	if ep.Path != "/contact-enrichment" {
		t.Errorf("path = %q", ep.Path)
	}

	replacement := ep
	replacement.Label = "Replaced"
	n := r.Len()
	if err := r.Merge([]model.EndpointDescriptor{replacement}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if r.Len() != n {
		t.Errorf("merge by existing id grew the catalog: %d -> %d", n, r.Len())
	}
	got, _ := r.Get("contact-enrichment")
	if got.Label != "Replaced" {
		t.Errorf("merge did not replace: %q", got.Label)
	}
}

func TestNewRejectsBadDescriptors(t *testing.T) {
	tests := []struct {
		name string
		ep   model.EndpointDescriptor
	}{
		{"empty id", model.EndpointDescriptor{Path: "/x"}},
		{"empty path", model.EndpointDescriptor{ID: "x"}},
		{"bad field path", model.EndpointDescriptor{
			ID: "x", Path: "/x",
			Fields: []model.FieldSpec{{Key: "a[1", Type: model.TypeText}},
		}},
		{"bad value type", model.EndpointDescriptor{
			ID: "x", Path: "/x",
			Fields: []model.FieldSpec{{Key: "a", Type: "boolean"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.ep); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
endpoints:
  - id: custom-search
    label: Custom Search
    method: POST
    path: /custom-search
    search_type: CustomSearch
    fields:
      - key: first_name
        label: First name
      - key: age
        label: Age
        type: number
    sample:
      first_name: John
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	eps, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(eps) != 1 {
		t.Fatalf("got %d endpoints", len(eps))
	}
	ep := eps[0]
	if ep.ID != "custom-search" || ep.SearchType != "CustomSearch" {
		t.Errorf("descriptor = %+v", ep)
	}
	if len(ep.Fields) != 2 {
		t.Fatalf("fields = %+v", ep.Fields)
	}
	if ep.Fields[0].Type != model.TypeText {
		t.Errorf("default field type = %q, want text", ep.Fields[0].Type)
	}
	if ep.Fields[1].Type != model.TypeNumber {
		t.Errorf("field type = %q, want number", ep.Fields[1].Type)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("endpoints: [}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}
