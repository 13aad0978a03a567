package timeline

import (
	"regexp"
	"strconv"
	"time"

	"github.com/david/eu-project-explorer/internal/models"
)

// DefaultDurationMonths applies when a project's duration has no number in it.
const DefaultDurationMonths = 48

const markerStep = 6

var firstIntRegex = regexp.MustCompile(`\d+`)

// DurationMonths reads the first integer in a duration such as "48 Months".
func DurationMonths(duration string) int {
	m := firstIntRegex.FindString(duration)
	if m == "" {
		return DefaultDurationMonths
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return DefaultDurationMonths
	}
	return n
}

// MonthMarkers returns axis labels every six months starting at month 1.
func MonthMarkers(total int) []int {
	markers := []int{}
	for m := 1; m <= total; m += markerStep {
		markers = append(markers, m)
	}
	return markers
}

// MonthDate is the first day of project month n, counting start's month as 1.
func MonthDate(start time.Time, month int) time.Time {
	return time.Date(start.Year(), start.Month()+time.Month(month-1), 1, 0, 0, 0, 0, time.UTC)
}

// FormatMonth renders project month n as "Jan 2026". An unparseable start
// date falls back to "M<n>".
func FormatMonth(startDate string, month int) string {
	start, ok := models.ParseDate(startDate)
	if !ok {
		return "M" + strconv.Itoa(month)
	}
	return MonthDate(start, month).Format("Jan 2006")
}

// CurrentMonth is the 1-based project month containing now, or 0 when now
// falls before the start or after the last month.
func CurrentMonth(start, now time.Time, total int) int {
	if now.Before(start) {
		return 0
	}
	m := (now.Year()-start.Year())*12 + int(now.Month()-start.Month()) + 1
	if m <= 0 || m > total {
		return 0
	}
	return m
}
