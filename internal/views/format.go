// Package views builds the page models served for a single project.
package views

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/david/eu-project-explorer/internal/loader"
	"github.com/david/eu-project-explorer/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// FormatAmount drops the euro sign and turns the first comma into a dot,
// so "€4,999,750.00" is shown as "4.999,750.00".
func FormatAmount(amount string) string {
	return strings.Replace(strings.Replace(amount, "€", "", 1), ",", ".", 1)
}

// YearOf returns the year of a project date, or the input when it is not a date.
func YearOf(date string) string {
	t, ok := models.ParseDate(date)
	if !ok {
		return date
	}
	return strconv.Itoa(t.Year())
}

// sanitizeHTML uses bluemonday to strip unsafe tags and attributes from HTML.
func sanitizeHTML(s string) string {
	// UGCPolicy keeps links, lists and emphasis but removes scripts and iframes.
	p := bluemonday.UGCPolicy()
	return p.Sanitize(sanitizeUTF8(s))
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// RichText is a field that may carry markup, served both as safe HTML and as plain text.
type RichText struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

func newRichText(s string) RichText {
	safe := sanitizeHTML(s)
	return RichText{HTML: safe, Text: loader.PlainText(safe)}
}
