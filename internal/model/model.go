package model

type ValueType string

const (
	TypeText   ValueType = "text"
	TypeNumber ValueType = "number"
)

// FieldSpec declares one form field and the document path it writes to.
// Key uses the dotted/bracketed path syntax understood by pathmap
// (e.g. "address.address_line_1", "phones[0]").
type FieldSpec struct {
	Key         string
	Label       string
	Type        ValueType
	Placeholder string
}

// EndpointDescriptor is one entry of the endpoint catalog. Descriptors are
// immutable after catalog load.
type EndpointDescriptor struct {
	ID       string
	Label    string
	Method   string
	Path     string
	Help     string
	Category string

	// SearchType is the default galaxy-search-type for this operation.
	// The header input overrides it.
	SearchType string

	// Fields is the ordered form schema. Empty means the endpoint is
	// raw-body-only and the JSON editor sources the request body.
	Fields []FieldSpec

	// Sample seeds the raw JSON editor.
	Sample map[string]any
}

// RawOnly reports whether the endpoint has no form schema.
func (d EndpointDescriptor) RawOnly() bool {
	return len(d.Fields) == 0
}

// Credentials is the galaxy-ap-name / galaxy-ap-password pair.
type Credentials struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type RequestEnvelope struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// ResponseEnvelope is the normalized outcome of a dispatched request that
// received an HTTP response. OK reflects the status class only; Data holds
// the parsed JSON payload, or {"raw": text} when the body is not JSON.
type ResponseEnvelope struct {
	OK         bool
	Status     int
	StatusText string
	Data       any
}
