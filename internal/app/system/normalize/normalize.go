// Package normalize provides the string normalization shared by request
// parsing, lookups and the operator CLI, so the same input always maps to
// the same key.
package normalize

import "strings"

// Key trims and lowercases s. Use it for lookup keys such as client
// addresses and CMS icon names.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug is Key with runs of spaces and underscores folded into single dashes.
// "Further  Maths" becomes "further-maths".
func Slug(s string) string {
	fields := strings.FieldsFunc(Key(s), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(fields, "-")
}

// Status normalizes a triage status typed by an operator: "In Progress" and
// "in-progress" both become "in_progress".
func Status(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(Key(s), "-", " ")), "_")
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
