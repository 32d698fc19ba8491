// Package sanitize cleans user-supplied text before it is stored or used
// as a lookup key.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML removes markup, including markup hidden behind entities.
func StripHTML(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = html.UnescapeString(out)
	return tagPattern.ReplaceAllString(out, "")
}

// Text strips markup and collapses runs of whitespace to single spaces.
func Text(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(StripHTML(s), " "))
}

// Code cleans an identifier such as a catalog code or a postal code:
// markup and surrounding whitespace are removed, inner whitespace is kept
// as single spaces.
func Code(s string) string {
	return Text(s)
}
