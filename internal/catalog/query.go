package catalog

import (
	"net/url"
	"strings"
)

// Filter keys understood by Apply. Any other key matches every card.
const (
	KeyCountry         = "country"
	KeyDuration        = "duration"
	KeyCoordinator     = "coordinator"
	KeyBudget          = "budget"
	KeyParticipantSize = "participantSize"
)

// Participant size buckets for KeyParticipantSize.
const (
	SizeSmall  = "small"  // 5 partners or fewer
	SizeMedium = "medium" // 6 to 15
	SizeLarge  = "large"  // more than 15
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Filter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
}

type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Query is an ordered list of filters plus an optional sort. Its methods
// return new values; a Query is never modified in place.
type Query struct {
	Filters []Filter `json:"filters"`
	Sort    *Sort    `json:"sort,omitempty"`
}

// WithFilter adds f, replacing the existing filter for the same key at its
// original position.
func (q Query) WithFilter(f Filter) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	replaced := false
	for _, existing := range q.Filters {
		if existing.Key == f.Key && !replaced {
			filters = append(filters, f)
			replaced = true
			continue
		}
		filters = append(filters, existing)
	}
	if !replaced {
		filters = append(filters, f)
	}
	return Query{Filters: filters, Sort: q.Sort}
}

func (q Query) WithoutFilter(key string) Query {
	filters := make([]Filter, 0, len(q.Filters))
	for _, f := range q.Filters {
		if f.Key != key {
			filters = append(filters, f)
		}
	}
	return Query{Filters: filters, Sort: q.Sort}
}

// Cleared drops all filters and the sort.
func (q Query) Cleared() Query {
	return Query{}
}

// ToggleSort sorts by key. Selecting the active ascending key flips it to
// descending; anything else starts ascending.
func (q Query) ToggleSort(key string) Query {
	dir := Asc
	if q.Sort != nil && q.Sort.Key == key && q.Sort.Direction == Asc {
		dir = Desc
	}
	filters := append([]Filter(nil), q.Filters...)
	return Query{Filters: filters, Sort: &Sort{Key: key, Direction: dir}}
}

// ParseQuery builds a Query from request parameters. Filters are added in a
// fixed key order so equal parameter sets give equal queries.
func ParseQuery(values url.Values) Query {
	var q Query
	for _, key := range []string{KeyCountry, KeyDuration, KeyCoordinator, KeyBudget, KeyParticipantSize} {
		v := strings.TrimSpace(values.Get(key))
		if v == "" {
			continue
		}
		q = q.WithFilter(Filter{Key: key, Value: v, Label: filterLabel(key, v)})
	}

	if key := strings.TrimSpace(values.Get("sort")); key != "" {
		dir := Asc
		if strings.EqualFold(values.Get("dir"), string(Desc)) {
			dir = Desc
		}
		q.Sort = &Sort{Key: key, Direction: dir}
	}
	return q
}

func filterLabel(key, value string) string {
	switch key {
	case KeyCountry:
		return "Country: " + value
	case KeyDuration:
		return "Duration: " + value
	case KeyCoordinator:
		return "Coordinator: " + value
	case KeyBudget:
		for _, r := range BudgetRanges() {
			if r.Value == value {
				return "Budget: " + r.Label
			}
		}
		return "Budget: " + value
	case KeyParticipantSize:
		switch value {
		case SizeSmall:
			return "Size: Small (≤5 partners)"
		case SizeMedium:
			return "Size: Medium (6-15 partners)"
		case SizeLarge:
			return "Size: Large (15+ partners)"
		}
		return "Size: " + value
	default:
		return value
	}
}
