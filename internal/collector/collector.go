// Package collector turns an endpoint's form schema plus the entered values
// into the nested request document.
package collector

import (
	"fmt"
	"strconv"
	"strings"

	"galcon/internal/model"
	"galcon/internal/pathmap"
)

// Collect walks the descriptor's fields in declaration order and assigns each
// non-empty value into a fresh document. Empty inputs are skipped entirely;
// they contribute no path and no default. A descriptor with no fields yields
// an empty document (the raw editor sources the body instead).
func Collect(ep model.EndpointDescriptor, values map[string]string) (map[string]any, error) {
	doc := map[string]any{}
	for _, f := range ep.Fields {
		raw := strings.TrimSpace(values[f.Key])
		if raw == "" {
			continue
		}

		path, err := pathmap.Parse(f.Key)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		if err := pathmap.Assign(doc, path, coerce(f.Type, raw)); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
	}
	return doc, nil
}

// coerce applies the field's declared value type. A number field whose input
// does not parse passes the raw text through unchanged; a bad value must not
// abort the whole build.
func coerce(t model.ValueType, raw string) any {
	if t != model.TypeNumber {
		return raw
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
