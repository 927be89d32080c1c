// internal/app/system/icons/icons.go
package icons

import (
	"html/template"
	"sort"

	"github.com/dalemusser/stratapapers/internal/app/system/normalize"
)

// FallbackName is rendered for any name not in the catalog.
const FallbackName = "circle-help"

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`
const svgClose = `</svg>`

// paths holds the inner markup of each known icon.
var paths = map[string]string{
	"award":          `<circle cx="12" cy="8" r="6"/><path d="M15.5 12.9 17 22l-5-3-5 3 1.5-9.1"/>`,
	"book-open":      `<path d="M2 3h6a4 4 0 0 1 4 4v14a3 3 0 0 0-3-3H2z"/><path d="M22 3h-6a4 4 0 0 0-4 4v14a3 3 0 0 1 3-3h7z"/>`,
	"check-circle":   `<circle cx="12" cy="12" r="10"/><path d="m9 12 2 2 4-4"/>`,
	"circle-help":    `<circle cx="12" cy="12" r="10"/><path d="M9.1 9a3 3 0 0 1 5.8 1c0 2-3 3-3 3"/><path d="M12 17h.01"/>`,
	"clock":          `<circle cx="12" cy="12" r="10"/><path d="M12 6v6l4 2"/>`,
	"download":       `<path d="M21 15v4a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2v-4"/><path d="m7 10 5 5 5-5"/><path d="M12 15V3"/>`,
	"external-link":  `<path d="M15 3h6v6"/><path d="M10 14 21 3"/><path d="M18 13v6a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2V8a2 2 0 0 1 2-2h6"/>`,
	"facebook":       `<path d="M18 2h-3a5 5 0 0 0-5 5v3H7v4h3v8h4v-8h3l1-4h-4V7a1 1 0 0 1 1-1h3z"/>`,
	"file-text":      `<path d="M14 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8z"/><path d="M14 2v6h6"/><path d="M16 13H8"/><path d="M16 17H8"/>`,
	"globe":          `<circle cx="12" cy="12" r="10"/><path d="M2 12h20"/><path d="M12 2a15 15 0 0 1 0 20a15 15 0 0 1 0-20"/>`,
	"graduation-cap": `<path d="M22 10 12 5 2 10l10 5z"/><path d="M6 12v5c3 3 9 3 12 0v-5"/>`,
	"instagram":      `<rect x="2" y="2" width="20" height="20" rx="5"/><circle cx="12" cy="12" r="4"/><path d="M17.5 6.5h.01"/>`,
	"linkedin":       `<path d="M16 8a6 6 0 0 1 6 6v7h-4v-7a2 2 0 0 0-4 0v7h-4v-7a6 6 0 0 1 6-6z"/><rect x="2" y="9" width="4" height="12"/><circle cx="4" cy="4" r="2"/>`,
	"mail":           `<rect x="2" y="4" width="20" height="16" rx="2"/><path d="m22 7-10 6L2 7"/>`,
	"menu":           `<path d="M4 6h16"/><path d="M4 12h16"/><path d="M4 18h16"/>`,
	"phone":          `<path d="M22 16.9v3a2 2 0 0 1-2.2 2 19.8 19.8 0 0 1-8.6-3.1 19.5 19.5 0 0 1-6-6A19.8 19.8 0 0 1 2.1 4.2 2 2 0 0 1 4.1 2h3a2 2 0 0 1 2 1.7c.1 1 .4 1.9.7 2.8a2 2 0 0 1-.5 2.1L8 9.9a16 16 0 0 0 6 6l1.3-1.3a2 2 0 0 1 2.1-.4c.9.3 1.8.6 2.8.7a2 2 0 0 1 1.7 2z"/>`,
	"star":           `<path d="m12 2 3.1 6.3 6.9 1-5 4.9 1.2 6.8L12 17.8 5.8 21l1.2-6.8-5-4.9 6.9-1z"/>`,
	"target":         `<circle cx="12" cy="12" r="10"/><circle cx="12" cy="12" r="6"/><circle cx="12" cy="12" r="2"/>`,
	"trending-up":    `<path d="m22 7-8.5 8.5-5-5L2 17"/><path d="M16 7h6v6"/>`,
	"twitter":        `<path d="M4 4l16 16"/><path d="M20 4 4 20"/>`,
	"users":          `<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2"/><circle cx="9" cy="7" r="4"/><path d="M22 21v-2a4 4 0 0 0-3-3.9"/><path d="M16 3.1a4 4 0 0 1 0 7.8"/>`,
	"youtube":        `<path d="M2.5 17a24 24 0 0 1 0-10 2 2 0 0 1 1.4-1.4 49.6 49.6 0 0 1 16.2 0A2 2 0 0 1 21.5 7a24 24 0 0 1 0 10 2 2 0 0 1-1.4 1.4 49.6 49.6 0 0 1-16.2 0A2 2 0 0 1 2.5 17"/><path d="m10 15 5-3-5-3z"/>`,
}

// aliases map alternate CMS spellings onto catalog names.
var aliases = map[string]string{
	"book":        "book-open",
	"check":       "check-circle",
	"email":       "mail",
	"file":        "file-text",
	"graduation":  "graduation-cap",
	"help-circle": "circle-help",
	"x":           "twitter",
}

// canonical lowercases a name and folds spaces and underscores into dashes,
// then applies aliases.
func canonical(name string) string {
	n := normalize.Slug(name)
	if a, ok := aliases[n]; ok {
		return a
	}
	return n
}

// Known reports whether name resolves to a catalog icon.
func Known(name string) bool {
	_, ok := paths[canonical(name)]
	return ok
}

// Lookup returns the inline SVG for name, or the fallback icon.
// The result is a constant from the catalog and is safe to emit unescaped.
func Lookup(name string) template.HTML {
	p, ok := paths[canonical(name)]
	if !ok {
		p = paths[FallbackName]
	}
	return template.HTML(svgOpen + p + svgClose)
}

// Names returns the catalog names in sorted order.
func Names() []string {
	out := make([]string, 0, len(paths))
	for n := range paths {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
