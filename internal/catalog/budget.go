package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// BudgetRange is one entry of the budget filter menu. Max is +Inf for the
// open-ended top tier.
type BudgetRange struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"-"`
	Value string  `json:"value"` // filter value, "min-max"
}

// BudgetRanges returns the fixed budget tiers, whether or not any project falls in them.
func BudgetRanges() []BudgetRange {
	tiers := []struct {
		label    string
		min, max float64
	}{
		{"€0 - €5M", 0, 5_000_000},
		{"€5M - €10M", 5_000_000, 10_000_000},
		{"€10M - €15M", 10_000_000, 15_000_000},
		{"€15M - €20M", 15_000_000, 20_000_000},
		{"€20M+", 20_000_000, math.Inf(1)},
	}

	out := make([]BudgetRange, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, BudgetRange{
			Label: t.label,
			Min:   t.min,
			Max:   t.max,
			Value: formatRangeValue(t.min, t.max),
		})
	}
	return out
}

func formatRangeValue(min, max float64) string {
	hi := "Infinity"
	if !math.IsInf(max, 1) {
		hi = strconv.FormatFloat(max, 'f', -1, 64)
	}
	return strconv.FormatFloat(min, 'f', -1, 64) + "-" + hi
}

// ParseRange decodes a budget filter value such as "5000000-10000000" or
// "20000000-Infinity". An empty, "+" or "Inf" upper bound means unbounded.
func ParseRange(value string) (min, max float64, err error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(value), "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid budget range %q", value)
	}

	min, err = strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid budget range %q: %w", value, err)
	}

	switch h := strings.TrimSpace(hi); strings.ToLower(h) {
	case "", "+", "inf", "+inf", "infinity":
		return min, math.Inf(1), nil
	default:
		max, err = strconv.ParseFloat(h, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid budget range %q: %w", value, err)
		}
	}
	return min, max, nil
}

var amountRegex = regexp.MustCompile(`\d[\d.,]*`)

// ParseBudget extracts the numeric value of a formatted amount such as
// "€4,999,750.00" or "€ 1.000.000,50". Unparseable input yields 0.
func ParseBudget(s string) float64 {
	m := amountRegex.FindString(s)
	if m == "" {
		return 0
	}

	lastComma := strings.LastIndex(m, ",")
	lastDot := strings.LastIndex(m, ".")

	var clean string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Whichever separator comes last is the decimal mark.
		if lastComma > lastDot {
			clean = strings.ReplaceAll(m[:lastComma], ".", "") + "." + m[lastComma+1:]
			clean = strings.ReplaceAll(clean, ",", "")
		} else {
			clean = strings.ReplaceAll(m, ",", "")
		}
	case lastComma >= 0:
		clean = resolveSingleSeparator(m, ",")
	case lastDot >= 0:
		clean = resolveSingleSeparator(m, ".")
	default:
		clean = m
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return val
}

// resolveSingleSeparator handles amounts written with one kind of separator.
// Repeated separators, or a single one followed by exactly three digits, are
// thousands separators; anything else is a decimal mark.
func resolveSingleSeparator(m, sep string) string {
	parts := strings.Split(m, sep)
	if len(parts) > 2 || len(parts[len(parts)-1]) == 3 {
		return strings.Join(parts, "")
	}
	return parts[0] + "." + parts[1]
}
