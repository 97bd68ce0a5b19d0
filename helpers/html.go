package helpers

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	multiSpaceRegex = regexp.MustCompile(`\s+`)

	// A whole HTML document, as returned by a content negotiation failure
	htmlDocumentRegex = regexp.MustCompile(`(?is)<!DOCTYPE\s+html>|<html.*?>.*</html>`)

	htmlTagRegex = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)
)

// StripHTML returns the text content of an HTML fragment with whitespace
// collapsed. Text without markup is only whitespace-normalized.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !htmlTagRegex.MatchString(s) {
		return NormalizeWhitespace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return NormalizeWhitespace(htmlTagRegex.ReplaceAllString(s, " "))
	}
	doc.Find("script, style").Remove()
	return NormalizeWhitespace(doc.Text())
}

// IsHTMLDocument reports whether s looks like a complete HTML page rather
// than a text payload.
func IsHTMLDocument(s string) bool {
	return htmlDocumentRegex.MatchString(s)
}

// NormalizeWhitespace normalizes all whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
