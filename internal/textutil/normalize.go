package textutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// LooksLikeHTML is a cheap check for scraped descriptions that still carry
// markup or entities.
func LooksLikeHTML(s string) bool {
	if strings.Contains(s, "&") && strings.Contains(s, ";") {
		return true
	}
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}

// StripHTML reduces an HTML fragment to its visible text. Block elements are
// separated by a space so words from adjacent paragraphs do not merge.
func StripHTML(s string) string {
	if !LooksLikeHTML(s) {
		return CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find("br, p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendNodes(&html.Node{Type: html.TextNode, Data: " "})
	})
	return CleanText(doc.Text())
}

// NormalizeHeader turns a source column name into the stable schema key:
// trimmed, lower-case, whitespace runs replaced by "_".
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(CleanText(h)), "_"))
}
