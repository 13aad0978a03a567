package loader

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// normalizeSpace collapses multiple spaces into one and trims the string.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PlainText strips markup from a summary that carries HTML. Text without tags
// is returned unchanged so substring search sees exactly what the file holds.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return normalizeSpace(doc.Text())
}
