package collector

import (
	"reflect"
	"testing"

	"galcon/internal/model"
)

func TestCollectContactEnrichment(t *testing.T) {
	ep := model.EndpointDescriptor{
		ID: "contact-enrichment",
		Fields: []model.FieldSpec{
			{Key: "first_name", Type: model.TypeText},
			{Key: "middle_name", Type: model.TypeText},
			{Key: "last_name", Type: model.TypeText},
			{Key: "phone", Type: model.TypeText},
			{Key: "email", Type: model.TypeText},
			{Key: "address.address_line_1", Type: model.TypeText},
		},
	}
	values := map[string]string{
		"first_name": "John",
		"last_name":  "Smith",
		"phone":      "(555) 555-5555",
	}

	got, err := Collect(ep, values)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := map[string]any{
		"first_name": "John",
		"last_name":  "Smith",
		"phone":      "(555) 555-5555",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestCollectNestedAndIndexed(t *testing.T) {
	ep := model.EndpointDescriptor{
		Fields: []model.FieldSpec{
			{Key: "address.address_line_1", Type: model.TypeText},
			{Key: "phones[0]", Type: model.TypeText},
			{Key: "phones[2]", Type: model.TypeText},
		},
	}
	values := map[string]string{
		"address.address_line_1": "100 Main St",
		"phones[0]":              "555-0000",
		"phones[2]":              "555-0002",
	}

	got, err := Collect(ep, values)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := map[string]any{
		"address": map[string]any{"address_line_1": "100 Main St"},
		"phones":  []any{"555-0000", map[string]any{}, "555-0002"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestCollectNumberCoercion(t *testing.T) {
	ep := model.EndpointDescriptor{
		Fields: []model.FieldSpec{
			{Key: "age", Type: model.TypeNumber},
			{Key: "score", Type: model.TypeNumber},
			{Key: "zip", Type: model.TypeNumber},
		},
	}
	values := map[string]string{
		"age":   "42",
		"score": "3.5",
		"zip":   "80203-1234", // not a number: raw text passes through
	}

	got, err := Collect(ep, values)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := map[string]any{
		"age":   int64(42),
		"score": 3.5,
		"zip":   "80203-1234",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestCollectSkipsEmptyAndWhitespace(t *testing.T) {
	ep := model.EndpointDescriptor{
		Fields: []model.FieldSpec{
			{Key: "first_name", Type: model.TypeText},
			{Key: "last_name", Type: model.TypeText},
			{Key: "phone", Type: model.TypeText},
		},
	}
	got, err := Collect(ep, map[string]string{
		"first_name": "Ann",
		"last_name":  "   ",
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := map[string]any{"first_name": "Ann"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestCollectEmptySchema(t *testing.T) {
	got, err := Collect(model.EndpointDescriptor{}, map[string]string{"ignored": "x"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty schema produced %#v, want empty document", got)
	}
}

func TestCollectConflictSurfaces(t *testing.T) {
	ep := model.EndpointDescriptor{
		Fields: []model.FieldSpec{
			{Key: "addresses[0].city", Type: model.TypeText},
			{Key: "addresses[0]", Type: model.TypeText},
		},
	}
	_, err := Collect(ep, map[string]string{
		"addresses[0].city": "Denver",
		"addresses[0]":      "scalar",
	})
	if err == nil {
		t.Fatal("expected structural conflict error")
	}
}
