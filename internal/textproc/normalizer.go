// Package textproc turns raw document text, typed or transcribed, into the
// canonical form the classifier was trained on.
package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	urlPattern        = regexp.MustCompile(`(?i)http\S+|www\.\S+`)
	nonTextPattern    = regexp.MustCompile(`[^a-zA-Z0-9 .,!?;:'"()-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	markupHint        = regexp.MustCompile(`<[a-zA-Z!/]`)
)

// Normalizer produces canonical text: no markup, no URLs, lowercase,
// single-spaced. Normalize is pure and idempotent, and the identical code
// path runs at training time and at serving time.
type Normalizer struct{}

// NewNormalizer creates a text normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize applies the full canonicalization sequence. The step order is
// fixed: markup, URLs, character stripping, case folding, whitespace.
func (n *Normalizer) Normalize(text string) string {
	if markupHint.MatchString(text) {
		text = stripMarkup(text)
	}
	text = urlPattern.ReplaceAllString(text, " ")
	text = nonTextPattern.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripMarkup extracts the visible text from an HTML fragment, skipping
// script and style subtrees. The parser is forgiving, so malformed markup
// degrades to whatever text it can find rather than failing.
func stripMarkup(text string) string {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteByte(' ')
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(doc)
	return b.String()
}
