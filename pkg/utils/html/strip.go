// ABOUTME: HTML utilities for turning scraped markup into plain text
// ABOUTME: Used when normalizing provider content for the presentation layer

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes tags, scripts and styles, decodes entities and collapses
// whitespace. Text without markup is only whitespace-collapsed.
func StripHTML(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return collapse(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return collapse(content)
	}
	doc.Find("script, style, noscript").Remove()

	return collapse(doc.Text())
}

// collapse joins all whitespace runs into single spaces
func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
