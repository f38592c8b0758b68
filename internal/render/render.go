// Package render turns the backend's unstructured test case strings into
// display blocks and export documents. The " - " split is a best-effort
// display heuristic, not a validated format: a case whose text legitimately
// contains the delimiter but yields fewer than three segments falls back to
// verbatim display on purpose.
package render

import (
	"fmt"
	"strings"
	"time"
)

const delimiter = " - "

// TestCase is one display block. ID is derived from list position (1-based),
// never carried from the backend. When Structured is false only Raw is set.
type TestCase struct {
	ID         string `json:"id"`
	Raw        string `json:"raw"`
	Objective  string `json:"objective,omitempty"`
	Steps      string `json:"steps,omitempty"`
	Expected   string `json:"expected,omitempty"`
	Structured bool   `json:"structured"`
}

// SplitCase decomposes a case into objective/steps/expected when splitting
// on " - " yields three or more segments. Segments beyond the second are
// rejoined with the same delimiter into the expected result.
func SplitCase(s string) (objective, steps, expected string, ok bool) {
	parts := strings.Split(s, delimiter)
	if len(parts) < 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], strings.Join(parts[2:], delimiter), true
}

// Label formats the TC-NNN label for a 1-based position.
func Label(i int) string { return fmt.Sprintf("TC-%03d", i) }

// Cases builds display blocks for the ordered backend strings.
func Cases(raw []string) []TestCase {
	out := make([]TestCase, 0, len(raw))
	for i, s := range raw {
		tc := TestCase{ID: Label(i + 1), Raw: s}
		if obj, steps, exp, ok := SplitCase(s); ok {
			tc.Objective, tc.Steps, tc.Expected, tc.Structured = obj, steps, exp, true
		}
		out = append(out, tc)
	}
	return out
}

// ExportDocument lists the cases as "{index}. {case}" lines, 1-based.
func ExportDocument(cases []string) string {
	lines := make([]string, 0, len(cases))
	for i, c := range cases {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, c))
	}
	return strings.Join(lines, "\n")
}

// ExportFilename names the download after the current timestamp.
func ExportFilename(t time.Time) string {
	return "test_cases_" + t.Format("20060102_150405") + ".txt"
}
