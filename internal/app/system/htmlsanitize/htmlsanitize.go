// Package htmlsanitize cleans CMS-authored rich text (FAQ answers, the
// auto-reply email body) before it is rendered or mailed.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// richText allows what the CMS editor produces: UGC basics plus tables and
// inline formatting.
var richText = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	p.AllowAttrs("class", "style").OnElements("table", "th", "td", "tr")
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowDataAttributes()
	return p
})

var strict = sync.OnceValue(bluemonday.StrictPolicy)

// isMarkup treats content with both angle brackets as HTML.
func isMarkup(content string) bool {
	return strings.Contains(content, "<") && strings.Contains(content, ">")
}

// textToHTML escapes plain text and turns blank-line separated blocks into
// paragraphs and single newlines into <br>.
func textToHTML(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(template.HTMLEscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// PrepareForDisplay returns content ready to render unescaped. HTML goes
// through the rich text policy; plain text is escaped and paragraphed.
func PrepareForDisplay(content string) template.HTML {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if !isMarkup(content) {
		return template.HTML(textToHTML(content))
	}
	return template.HTML(richText().Sanitize(content))
}

// StripTags removes all markup and returns plain text with block boundaries
// turned into line breaks. Used for the text part of HTML emails.
func StripTags(content string) string {
	if content == "" {
		return ""
	}
	r := strings.NewReplacer("</p>", "</p>\n", "<br>", "\n", "<br/>", "\n", "<br />", "\n", "</li>", "</li>\n")
	text := html.UnescapeString(strict().Sanitize(r.Replace(content)))
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
