// Package shellcmd renders a request envelope as a single-line curl
// invocation that survives a shell round trip.
package shellcmd

import (
	"sort"
	"strings"

	"galcon/internal/model"
)

// Curl builds the curl command line for req. Headers appear in sorted order
// so the output is stable; empty header values are omitted. Every component
// is individually quoted.
func Curl(req model.RequestEnvelope) string {
	parts := []string{"curl", "-X", quote(req.Method)}

	names := make([]string, 0, len(req.Headers))
	for name := range req.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		val := strings.TrimSpace(req.Headers[name])
		if val == "" {
			continue
		}
		parts = append(parts, "-H", quote(name+": "+val))
	}

	if len(req.Body) > 0 {
		parts = append(parts, "-d", quote(string(req.Body)))
	}

	parts = append(parts, quote(req.URL))
	return strings.Join(parts, " ")
}

// quote wraps s in single quotes, escaping embedded single quotes with the
// usual '\'' dance.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
