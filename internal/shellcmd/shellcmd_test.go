package shellcmd

import (
	"strings"
	"testing"

	"galcon/internal/model"
)

func TestCurl(t *testing.T) {
	req := model.RequestEnvelope{
		Method: "POST",
		URL:    "http://127.0.0.1:8000/contact-enrichment",
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"galaxy-ap-name": "operator",
		},
		Body: []byte(`{"first_name":"John"}`),
	}

	got := Curl(req)
	want := `curl -X 'POST' -H 'Content-Type: application/json' -H 'galaxy-ap-name: operator' -d '{"first_name":"John"}' 'http://127.0.0.1:8000/contact-enrichment'`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestCurlOmitsEmptyHeadersAndBody(t *testing.T) {
	req := model.RequestEnvelope{
		Method: "POST",
		URL:    "http://example.com/x",
		Headers: map[string]string{
			"Content-Type":       "application/json",
			"galaxy-search-type": "   ",
		},
	}

	got := Curl(req)
	if strings.Contains(got, "galaxy-search-type") {
		t.Errorf("blank header not omitted: %s", got)
	}
	if strings.Contains(got, "-d") {
		t.Errorf("empty body produced -d flag: %s", got)
	}
}

func TestCurlQuotesEmbeddedQuotes(t *testing.T) {
	req := model.RequestEnvelope{
		Method:  "POST",
		URL:     "http://example.com/x",
		Headers: map[string]string{"X-Note": "it's quoted"},
		Body:    []byte(`{"name":"O'Brien"}`),
	}

	got := Curl(req)
	if !strings.Contains(got, `'X-Note: it'\''s quoted'`) {
		t.Errorf("header quote not escaped: %s", got)
	}
	if !strings.Contains(got, `'{"name":"O'\''Brien"}'`) {
		t.Errorf("body quote not escaped: %s", got)
	}
}

func TestCurlSingleLine(t *testing.T) {
	req := model.RequestEnvelope{
		Method: "POST",
		URL:    "http://example.com/x",
		Body:   []byte("{\n  \"a\": 1\n}"),
	}
	got := Curl(req)
	// the command itself stays on one line; embedded newlines live inside quotes
	if lines := strings.Count(got, "\n"); lines != 2 {
		t.Errorf("expected body newlines preserved inside quotes, got %q", got)
	}
	if !strings.HasPrefix(got, "curl -X 'POST' ") {
		t.Errorf("unexpected prefix: %q", got)
	}
}
