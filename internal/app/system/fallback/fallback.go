// internal/app/system/fallback/fallback.go
package fallback

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholders substituted by Count and Showing.
const (
	CountPlaceholder    = "{count}"
	FilteredPlaceholder = "{filtered}"
	TotalPlaceholder    = "{total}"
	YearPlaceholder     = "{year}"
)

// Text returns value when it is non-empty after trimming, otherwise def.
func Text(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

// Count replaces every {count} in tpl with n.
// The template may come from the CMS; the number never does.
func Count(tpl string, n int) string {
	return strings.ReplaceAll(tpl, CountPlaceholder, strconv.Itoa(n))
}

// Showing replaces {filtered} and {total} in tpl.
func Showing(tpl string, filtered, total int) string {
	r := strings.NewReplacer(
		FilteredPlaceholder, strconv.Itoa(filtered),
		TotalPlaceholder, strconv.Itoa(total),
	)
	return r.Replace(tpl)
}

// Year replaces every {year} in tpl.
func Year(tpl string, year int) string {
	return strings.ReplaceAll(tpl, YearPlaceholder, strconv.Itoa(year))
}

// TitleFromSlug turns a routing segment into display text:
// "cambridge-igcse" becomes "Cambridge Igcse".
func TitleFromSlug(segment string) string {
	parts := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, p := range parts {
		first, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(first)) + strings.ToLower(p[size:])
	}
	return strings.Join(parts, " ")
}

// Slice returns values when non-empty, otherwise def.
func Slice[T any](values, def []T) []T {
	if len(values) > 0 {
		return values
	}
	return def
}
