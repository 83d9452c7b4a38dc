// Package richtext cleans markup coming out of the question and answer
// editors. Only the formats the editor toolbar can produce survive.
package richtext

import (
	"net/url"
	"strings"

	"github.com/k3a/html2text"
	"golang.org/x/net/html"
)

// allowed maps each permitted element to the attributes it may keep.
var allowed = map[string][]string{
	"p":          {"class"},
	"br":         nil,
	"h1":         {"class"},
	"h2":         {"class"},
	"h3":         {"class"},
	"strong":     nil,
	"b":          nil,
	"em":         nil,
	"i":          nil,
	"u":          nil,
	"s":          nil,
	"strike":     nil,
	"ol":         nil,
	"ul":         nil,
	"li":         {"class"},
	"a":          {"href"},
	"img":        {"src", "alt"},
	"pre":        nil,
	"code":       nil,
	"blockquote": nil,
}

// elements whose content is dropped along with the tag
var dropContent = map[string]struct{}{
	"script":   {},
	"style":    {},
	"iframe":   {},
	"object":   {},
	"noscript": {},
	"template": {},
}

var alignClasses = map[string]struct{}{
	"ql-align-center":  {},
	"ql-align-right":   {},
	"ql-align-justify": {},
}

// Sanitize returns markup restricted to the editor's formats. Unknown tags
// are unwrapped (their text is kept), dangerous containers are removed with
// their content, and URLs must be absolute http(s) (links may also be mailto).
func Sanitize(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())

		case html.TextToken:
			if skip == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if _, ok := dropContent[tok.Data]; ok {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			attrs, ok := allowed[tok.Data]
			if skip > 0 || !ok {
				continue
			}
			tok.Attr = filterAttrs(tok.Data, tok.Attr, attrs)
			if tok.Data == "img" && len(tok.Attr) == 0 {
				continue
			}
			if tok.Data == "a" && len(tok.Attr) > 0 {
				tok.Attr = append(tok.Attr, html.Attribute{Key: "rel", Val: "nofollow noopener"})
			}
			b.WriteString(tok.String())

		case html.EndTagToken:
			tok := z.Token()
			if _, ok := dropContent[tok.Data]; ok {
				if skip > 0 {
					skip--
				}
				continue
			}
			if _, ok := allowed[tok.Data]; skip > 0 || !ok {
				continue
			}
			b.WriteString(tok.String())
		}
	}
}

func filterAttrs(tag string, in []html.Attribute, keep []string) []html.Attribute {
	var out []html.Attribute
	for _, a := range in {
		if a.Namespace != "" || !contains(keep, a.Key) {
			continue
		}
		switch a.Key {
		case "href":
			if !safeURL(a.Val, "http", "https", "mailto") {
				continue
			}
		case "src":
			if !safeURL(a.Val, "http", "https") {
				continue
			}
		case "class":
			if _, ok := alignClasses[a.Val]; !ok {
				continue
			}
		}
		out = append(out, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if tag == "img" && !hasAttr(out, "src") {
		return nil
	}
	return out
}

func safeURL(raw string, schemes ...string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return contains(schemes, strings.ToLower(u.Scheme))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasAttr(attrs []html.Attribute, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// PlainText renders markup as whitespace-collapsed text.
func PlainText(markup string) string {
	return strings.Join(strings.Fields(html2text.HTML2Text(markup)), " ")
}

// IsBlank reports whether markup has nothing a reader would see. An empty
// editor still produces "<p><br></p>", which is blank.
func IsBlank(markup string) bool {
	if PlainText(markup) != "" {
		return false
	}
	return !strings.Contains(Sanitize(markup), "<img")
}

// Excerpt returns at most limit runes of plain text, cut on a word boundary
// when possible and suffixed with "..." when shortened.
func Excerpt(markup string, limit int) string {
	text := PlainText(markup)
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if runes[limit] != ' ' {
		if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
