package template

import (
	"strings"

	"golang.org/x/net/html"
)

// Filter transforms a field value.
type Filter func(string) string

var filters = map[string]Filter{
	"text":  StripHTML,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// ApplyFilters runs names over s in order. Unknown filters leave the text
// unchanged.
func ApplyFilters(s string, names []string) string {
	for _, name := range names {
		if f, ok := filters[name]; ok {
			s = f(s)
		}
	}
	return s
}

// StripHTML returns the text content of an HTML fragment with entities
// decoded. Script and style bodies are dropped.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; keep what was read.
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "br", "div", "p", "hr", "li":
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "hr":
				b.WriteByte(' ')
			}
		}
	}
}
