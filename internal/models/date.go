package models

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2 January 2006",
	"January 2, 2006",
	"02/01/2006",
	time.RFC3339,
}

// ParseDate reads the date formats that appear in project files
// ("2024-01-01", "1 January 2024").
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
