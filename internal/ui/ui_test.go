package ui

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFuzzyMatchScore(t *testing.T) {
	cases := []struct {
		needle, haystack string
		match            bool
	}{
		{"", "anything", true},
		{"cen", "contact enrichment", true},
		{"rps", "reverse phone search", true},
		{"xyz", "person search", false},
		{"PERSON", "Person Search", true},
		{"searchperson", "person search", false},
	}
	for _, c := range cases {
		_, ok := fuzzyMatchScore(c.needle, c.haystack)
		if ok != c.match {
			t.Errorf("fuzzyMatchScore(%q, %q) matched=%v, want %v", c.needle, c.haystack, ok, c.match)
		}
	}
}

func TestFuzzyMatchScorePrefersEarlierMatches(t *testing.T) {
	early, ok := fuzzyMatchScore("per", "person search")
	if !ok {
		t.Fatal("expected match")
	}
	late, ok := fuzzyMatchScore("per", "search by person")
	if !ok {
		t.Fatal("expected match")
	}
	if early >= late {
		t.Errorf("early match score %d should beat late match score %d", early, late)
	}
}

func TestColorizeJSONSortsKeysAndQuotesStrings(t *testing.T) {
	out := colorizeJSON(map[string]any{
		"zeta":  json.Number("42"),
		"alpha": "hi",
	}, 0)
	plain := stripANSI(out)
	if !strings.Contains(plain, `"alpha": "hi"`) {
		t.Errorf("missing alpha entry in %q", plain)
	}
	if strings.Index(plain, "alpha") > strings.Index(plain, "zeta") {
		t.Errorf("keys not sorted: %q", plain)
	}
	if !strings.Contains(plain, "42") {
		t.Errorf("number lost: %q", plain)
	}
}

func TestMask(t *testing.T) {
	if got := mask(""); got != "" {
		t.Errorf("mask of empty = %q", got)
	}
	got := mask("hunter2")
	if strings.Contains(got, "hunter2") {
		t.Errorf("mask leaked the secret: %q", got)
	}
}

func TestFirstLinesTruncates(t *testing.T) {
	s := "a\nb\nc\nd"
	if got := firstLines(s, 10); got != s {
		t.Errorf("short input should pass through, got %q", got)
	}
	got := stripANSI(firstLines(s, 2))
	if !strings.HasPrefix(got, "a\nb\n") || !strings.Contains(got, "...") {
		t.Errorf("truncation marker missing: %q", got)
	}
}

func stripANSI(s string) string {
	var sb strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		case r == '\033':
			inEsc = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
