package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"galcon/internal/model"
)

const loadTimeout = 10 * time.Second

// LoadOpenAPI fetches an OpenAPI document and flattens its operations into
// endpoint descriptors. Flat JSON object request schemas become form fields;
// anything else imports as a raw-body-only descriptor. The second return is
// the document's first concrete server URL, when declared.
func LoadOpenAPI(ctx context.Context, specURL string) ([]model.EndpointDescriptor, string, error) {
	loader := &openapi3.Loader{Context: ctx}
	loader.IsExternalRefsAllowed = true

	var doc *openapi3.T
	if strings.HasPrefix(specURL, "http://") || strings.HasPrefix(specURL, "https://") {
		client := &http.Client{Timeout: loadTimeout}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, specURL, nil)
		if err != nil {
			return nil, "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, "", fmt.Errorf("GET %s: %s", specURL, resp.Status)
		}
		doc, err = loader.LoadFromIoReader(resp.Body)
		if err != nil {
			return nil, "", err
		}
	} else {
		var err error
		doc, err = loader.LoadFromFile(specURL)
		if err != nil {
			return nil, "", err
		}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, "", err
	}
	return FromOpenAPI(doc), BaseURLFromOpenAPI(doc), nil
}

// FromOpenAPI converts a parsed document into descriptors.
func FromOpenAPI(doc *openapi3.T) []model.EndpointDescriptor {
	var out []model.EndpointDescriptor
	if doc == nil || doc.Paths == nil {
		return out
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		addOp := func(method string, op *openapi3.Operation) {
			if op == nil {
				return
			}
			id := strings.TrimSpace(op.OperationID)
			if id == "" {
				id = strings.ToLower(method) + strings.ReplaceAll(path, "/", "-")
			}
			label := strings.TrimSpace(op.Summary)
			if label == "" {
				label = strings.ToUpper(method) + " " + path
			}
			out = append(out, model.EndpointDescriptor{
				ID:       id,
				Label:    label,
				Method:   strings.ToUpper(method),
				Path:     path,
				Help:     strings.TrimSpace(op.Description),
				Category: firstTag(op),
				Fields:   bodyFields(op),
			})
		}

		addOp("get", item.Get)
		addOp("post", item.Post)
		addOp("put", item.Put)
		addOp("patch", item.Patch)
		addOp("delete", item.Delete)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func firstTag(op *openapi3.Operation) string {
	if len(op.Tags) == 0 {
		return ""
	}
	return op.Tags[0]
}

// bodyFields flattens a request body schema into form fields. Only a
// top-level object of scalar properties maps cleanly; nested shapes return
// nil and the descriptor falls back to the raw editor.
func bodyFields(op *openapi3.Operation) []model.FieldSpec {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	mt := op.RequestBody.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil
	}
	s := mt.Schema.Value
	if s.Type == nil || !s.Type.Is("object") {
		return nil
	}

	var fields []model.FieldSpec
	for name, prop := range s.Properties {
		t, ok := scalarType(prop)
		if !ok {
			return nil
		}
		fields = append(fields, model.FieldSpec{Key: name, Label: name, Type: t})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

func scalarType(ref *openapi3.SchemaRef) (model.ValueType, bool) {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return "", false
	}
	switch {
	case ref.Value.Type.Is("string"):
		return model.TypeText, true
	case ref.Value.Type.Is("integer"), ref.Value.Type.Is("number"):
		return model.TypeNumber, true
	default:
		return "", false
	}
}

// BaseURLFromOpenAPI extracts a concrete server URL from the document, when
// one is declared.
func BaseURLFromOpenAPI(doc *openapi3.T) string {
	if doc == nil || len(doc.Servers) == 0 {
		return ""
	}
	u := strings.TrimSpace(doc.Servers[0].URL)
	if u == "" || strings.Contains(u, "{") {
		return ""
	}
	if p, err := url.Parse(u); err == nil {
		p.Fragment = ""
		p.RawQuery = ""
		return strings.TrimRight(p.String(), "/")
	}
	return ""
}
