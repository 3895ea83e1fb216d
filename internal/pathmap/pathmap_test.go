package pathmap

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, raw string) Path {
	t.Helper()
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", raw, err)
	}
	return p
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    Path
		wantErr bool
	}{
		{
			raw:  "first_name",
			want: Path{{Key: "first_name"}},
		},
		{
			raw:  "address.address_line_1",
			want: Path{{Key: "address"}, {Key: "address_line_1"}},
		},
		{
			raw:  "phones[0]",
			want: Path{{Key: "phones"}, {Index: 0, IsIndex: true}},
		},
		{
			raw:  "addresses.0.city",
			want: Path{{Key: "addresses"}, {Index: 0, IsIndex: true}, {Key: "city"}},
		},
		{
			raw:  "addresses[2].city",
			want: Path{{Key: "addresses"}, {Index: 2, IsIndex: true}, {Key: "city"}},
		},
		{
			raw:  "grid[1][2]",
			want: Path{{Key: "grid"}, {Index: 1, IsIndex: true}, {Index: 2, IsIndex: true}},
		},
		{
			raw:  "  spaced  ",
			want: Path{{Key: "spaced"}},
		},
		{raw: "", wantErr: true},
		{raw: "a..b", wantErr: true},
		{raw: "a[x]", wantErr: true},
		{raw: "a[1", wantErr: true},
		{raw: "[0]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseNotationEquivalence(t *testing.T) {
	// bracketed and bare-numeric-dot syntax resolve to the same segments
	a := mustParse(t, "phones[0]")
	b := mustParse(t, "phones.0")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("phones[0] = %#v, phones.0 = %#v", a, b)
	}
}

func build(t *testing.T, assignments [][2]string) map[string]any {
	t.Helper()
	root := map[string]any{}
	for _, kv := range assignments {
		if err := Assign(root, mustParse(t, kv[0]), kv[1]); err != nil {
			t.Fatalf("Assign(%q): %v", kv[0], err)
		}
	}
	return root
}

func TestAssignFlatObject(t *testing.T) {
	got := build(t, [][2]string{
		{"first_name", "John"},
		{"last_name", "Smith"},
		{"phone", "(555) 555-5555"},
	})
	want := map[string]any{
		"first_name": "John",
		"last_name":  "Smith",
		"phone":      "(555) 555-5555",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestAssignNestedObject(t *testing.T) {
	got := build(t, [][2]string{{"address.address_line_1", "100 Main St"}})
	want := map[string]any{
		"address": map[string]any{"address_line_1": "100 Main St"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestAssignIndexedArray(t *testing.T) {
	root := build(t, [][2]string{{"phones[0]", "555-0000"}})
	want := map[string]any{"phones": []any{"555-0000"}}
	if !reflect.DeepEqual(root, want) {
		t.Errorf("got %#v, want %#v", root, want)
	}

	// extending on the same build pads the middle slot with an empty object
	if err := Assign(root, mustParse(t, "phones[2]"), "555-0002"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	want = map[string]any{"phones": []any{"555-0000", map[string]any{}, "555-0002"}}
	if !reflect.DeepEqual(root, want) {
		t.Errorf("got %#v, want %#v", root, want)
	}
}

func TestAssignSiblingsShareContainer(t *testing.T) {
	// auto-vivification never overwrites a populated intermediate container
	got := build(t, [][2]string{
		{"a.b.c", "1"},
		{"a.b.d", "2"},
	})
	want := map[string]any{
		"a": map[string]any{"b": map[string]any{"c": "1", "d": "2"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestAssignIdempotent(t *testing.T) {
	once := build(t, [][2]string{{"addresses.0.city", "Denver"}})
	twice := build(t, [][2]string{
		{"addresses.0.city", "Denver"},
		{"addresses.0.city", "Denver"},
	})
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("idempotency broken: %#v vs %#v", once, twice)
	}
}

func TestAssignOrderIndependence(t *testing.T) {
	pairs := [][2]string{
		{"first_name", "Ann"},
		{"addresses.0.city", "Denver"},
		{"addresses.0.state", "CO"},
		{"addresses.1.city", "Boulder"},
		{"emails[0]", "ann@example.com"},
	}
	forward := build(t, pairs)

	reversed := make([][2]string, len(pairs))
	for i, kv := range pairs {
		reversed[len(pairs)-1-i] = kv
	}
	backward := build(t, reversed)

	if !reflect.DeepEqual(forward, backward) {
		t.Errorf("order-dependent result:\nforward:  %#v\nbackward: %#v", forward, backward)
	}
}

func TestAssignBracketAndDotEquivalent(t *testing.T) {
	a := build(t, [][2]string{{"phones[1]", "x"}})
	b := build(t, [][2]string{{"phones.1", "x"}})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("bracket %#v != dotted %#v", a, b)
	}
}

func TestAssignConflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup [][2]string
		path  string
	}{
		{
			name:  "descend into scalar",
			setup: [][2]string{{"a", "x"}},
			path:  "a.b",
		},
		{
			name:  "scalar over populated object",
			setup: [][2]string{{"addresses.0.city", "Denver"}},
			path:  "addresses.0",
		},
		{
			name:  "index into populated object",
			setup: [][2]string{{"address.city", "Denver"}},
			path:  "address[0]",
		},
		{
			name:  "key into array",
			setup: [][2]string{{"phones[0]", "555"}},
			path:  "phones.primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := build(t, tt.setup)
			err := Assign(root, mustParse(t, tt.path), "v")
			var ce *ConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("Assign(%q) error = %v, want ConflictError", tt.path, err)
			}
		})
	}
}

func TestAssignRootIndexRejected(t *testing.T) {
	p := Path{{Index: 0, IsIndex: true}}
	if err := Assign(map[string]any{}, p, "v"); err == nil {
		t.Fatal("expected error for index at root")
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := build(t, [][2]string{
		{"first_name", "John"},
		{"addresses.0.city", "Denver"},
		{"phones[1]", "555-0001"},
	})

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Errorf("round trip changed document:\nbefore: %#v\nafter:  %#v", doc, back)
	}
}
