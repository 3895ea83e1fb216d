// Package pathmap assembles flat (path, value) assignments into a nested
// JSON-shaped document. Paths address object keys and array indices with two
// equivalent notations: dotted segments ("addresses.0.city") and bracketed
// index suffixes ("phones[0]").
package pathmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a parsed path: either an object key or an array
// index. The kind is fixed at parse time so the tree walk never re-derives
// it from string shape.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is an ordered, non-empty sequence of segments.
type Path []Segment

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// ConflictError reports a structural conflict: an assignment that would have
// to reshape an already-populated part of the document (descend into a
// scalar, replace a non-empty container with a scalar, or address an object
// as an array).
type ConflictError struct {
	Path Path
	At   int // index of the offending segment
	Have string
	Want string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("structural conflict at %q (segment %d of %q): have %s, want %s",
		Path(e.Path[:e.At+1]).String(), e.At, e.Path.String(), e.Have, e.Want)
}

// Parse splits a dotted path into typed segments. A dot-separated part that
// is all digits becomes an index segment; a "key[2]" part becomes a key
// segment followed by an index segment. Nested brackets ("a[0][1]") chain.
func Parse(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty path")
	}

	var out Path
	for _, part := range strings.Split(raw, ".") {
		if part == "" {
			return nil, fmt.Errorf("empty segment in path %q", raw)
		}
		if isDigits(part) {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("bad index %q in path %q", part, raw)
			}
			out = append(out, Segment{Index: n, IsIndex: true})
			continue
		}

		// peel "[n]" groups off the end: "a[0][1]" -> key "a", indices 0, 1
		key := part
		var idxs []int
		for strings.HasSuffix(key, "]") {
			open := strings.LastIndexByte(key, '[')
			if open < 0 {
				return nil, fmt.Errorf("unbalanced bracket in path %q", raw)
			}
			inner := key[open+1 : len(key)-1]
			if !isDigits(inner) {
				return nil, fmt.Errorf("non-numeric index %q in path %q", inner, raw)
			}
			n, _ := strconv.Atoi(inner)
			idxs = append([]int{n}, idxs...)
			key = key[:open]
		}
		if strings.ContainsAny(key, "[]") {
			return nil, fmt.Errorf("unbalanced bracket in path %q", raw)
		}
		if key == "" {
			return nil, fmt.Errorf("missing key before bracket in path %q", raw)
		}
		out = append(out, Segment{Key: key})
		for _, n := range idxs {
			out = append(out, Segment{Index: n, IsIndex: true})
		}
	}
	return out, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Assign writes value at path inside root, creating missing intermediate
// containers on demand. Arrays grow by right-padding with empty objects.
// Re-assigning the same path only replaces the leaf; it never restructures
// ancestors. Assignments that contradict existing structure return a
// *ConflictError and leave root unchanged up to the conflicting segment.
func Assign(root map[string]any, path Path, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path")
	}
	if path[0].IsIndex {
		return &ConflictError{Path: path, At: 0, Have: "object root", Want: "array"}
	}
	_, err := assign(root, path, 0, value)
	return err
}

// assign places value under container following path[at:]. It returns the
// container, which may have been reallocated when it is a slice that grew.
func assign(container any, path Path, at int, value any) (any, error) {
	seg := path[at]
	last := at == len(path)-1

	if seg.IsIndex {
		s, ok := container.([]any)
		if !ok {
			return nil, &ConflictError{Path: path, At: at, Have: kindOf(container), Want: "array"}
		}
		for len(s) <= seg.Index {
			s = append(s, map[string]any{})
		}
		if last {
			if !replaceable(s[seg.Index]) {
				return nil, &ConflictError{Path: path, At: at, Have: kindOf(s[seg.Index]), Want: "scalar slot"}
			}
			s[seg.Index] = value
			return s, nil
		}
		child, err := vivify(s[seg.Index], path, at)
		if err != nil {
			return nil, err
		}
		child, err = assign(child, path, at+1, value)
		if err != nil {
			return nil, err
		}
		s[seg.Index] = child
		return s, nil
	}

	m, ok := container.(map[string]any)
	if !ok {
		return nil, &ConflictError{Path: path, At: at, Have: kindOf(container), Want: "object"}
	}
	if last {
		if existing, has := m[seg.Key]; has && !replaceable(existing) {
			return nil, &ConflictError{Path: path, At: at, Have: kindOf(existing), Want: "scalar slot"}
		}
		m[seg.Key] = value
		return m, nil
	}
	child, err := vivify(m[seg.Key], path, at)
	if err != nil {
		return nil, err
	}
	child, err = assign(child, path, at+1, value)
	if err != nil {
		return nil, err
	}
	m[seg.Key] = child
	return m, nil
}

// vivify returns the container to descend into for the segment after at,
// creating it when the current slot is empty. The next segment's kind
// decides between object and array.
func vivify(existing any, path Path, at int) (any, error) {
	next := path[at+1]
	if next.IsIndex {
		switch v := existing.(type) {
		case nil:
			return []any{}, nil
		case []any:
			return v, nil
		case map[string]any:
			if len(v) == 0 {
				// an auto-vivified placeholder; nothing is lost by retyping it
				return []any{}, nil
			}
			return nil, &ConflictError{Path: path, At: at, Have: "object", Want: "array"}
		default:
			return nil, &ConflictError{Path: path, At: at, Have: kindOf(existing), Want: "array"}
		}
	}
	switch v := existing.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, &ConflictError{Path: path, At: at, Have: kindOf(existing), Want: "object"}
	}
}

// replaceable reports whether a leaf write may overwrite the slot. Scalars
// (including a re-assigned leaf) and empty auto-vivified objects are fair
// game; populated containers are not.
func replaceable(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return true
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
