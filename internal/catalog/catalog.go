// Package catalog filters and sorts project cards for the list views.
package catalog

import (
	"math"
	"sort"

	"github.com/david/eu-project-explorer/internal/models"
)

// Sort keys accepted by Apply.
var SortKeys = []string{
	"acronym", "title", "coordinator", "country", "duration",
	"startDate", "endDate", "maxAmount",
	"participantCount", "deliverableCount", "milestoneCount",
}

// Apply returns the cards matching every filter in q, sorted by q.Sort.
// The input slice is left untouched and the sort is stable.
func Apply(cards []models.ProjectCard, q Query) []models.ProjectCard {
	out := make([]models.ProjectCard, 0, len(cards))
	for _, c := range cards {
		if matchesAll(c, q.Filters) {
			out = append(out, c)
		}
	}

	if q.Sort != nil {
		less := lessFunc(q.Sort.Key)
		if less != nil {
			desc := q.Sort.Direction == Desc
			sort.SliceStable(out, func(i, j int) bool {
				if desc {
					return less(out[j], out[i])
				}
				return less(out[i], out[j])
			})
		}
	}
	return out
}

func matchesAll(c models.ProjectCard, filters []Filter) bool {
	for _, f := range filters {
		if !Matches(c, f) {
			return false
		}
	}
	return true
}

// Matches reports whether a single card satisfies f.
func Matches(c models.ProjectCard, f Filter) bool {
	switch f.Key {
	case KeyCountry:
		return c.Country == f.Value
	case KeyDuration:
		return c.Duration == f.Value
	case KeyCoordinator:
		return c.Coordinator == f.Value
	case KeyBudget:
		min, max, err := ParseRange(f.Value)
		if err != nil {
			return false
		}
		budget := ParseBudget(c.MaxAmount)
		return budget >= min && (math.IsInf(max, 1) || budget < max)
	case KeyParticipantSize:
		n := c.ParticipantCount
		switch f.Value {
		case SizeSmall:
			return n <= 5
		case SizeMedium:
			return n > 5 && n <= 15
		case SizeLarge:
			return n > 15
		}
		return true
	default:
		return true
	}
}

func lessFunc(key string) func(a, b models.ProjectCard) bool {
	switch key {
	case "acronym":
		return func(a, b models.ProjectCard) bool { return a.Acronym < b.Acronym }
	case "title":
		return func(a, b models.ProjectCard) bool { return a.Title < b.Title }
	case "coordinator":
		return func(a, b models.ProjectCard) bool { return a.Coordinator < b.Coordinator }
	case "country":
		return func(a, b models.ProjectCard) bool { return a.Country < b.Country }
	case "duration":
		return func(a, b models.ProjectCard) bool { return a.Duration < b.Duration }
	case "startDate":
		return func(a, b models.ProjectCard) bool { return dateValue(a.StartDate) < dateValue(b.StartDate) }
	case "endDate":
		return func(a, b models.ProjectCard) bool { return dateValue(a.EndDate) < dateValue(b.EndDate) }
	case "maxAmount":
		return func(a, b models.ProjectCard) bool { return ParseBudget(a.MaxAmount) < ParseBudget(b.MaxAmount) }
	case "participantCount":
		return func(a, b models.ProjectCard) bool { return a.ParticipantCount < b.ParticipantCount }
	case "deliverableCount":
		return func(a, b models.ProjectCard) bool { return a.DeliverableCount < b.DeliverableCount }
	case "milestoneCount":
		return func(a, b models.ProjectCard) bool { return a.MilestoneCount < b.MilestoneCount }
	default:
		return nil
	}
}

func dateValue(s string) int64 {
	t, ok := models.ParseDate(s)
	if !ok {
		return 0
	}
	return t.Unix()
}

// Facets holds the distinct values that populate the filter menus.
type Facets struct {
	Countries    []string `json:"countries"`
	Durations    []string `json:"durations"`
	Coordinators []string `json:"coordinators"`
}

// FacetValues collects sorted, distinct, non-empty facet values from cards.
func FacetValues(cards []models.ProjectCard) Facets {
	return Facets{
		Countries:    distinct(cards, func(c models.ProjectCard) string { return c.Country }),
		Durations:    distinct(cards, func(c models.ProjectCard) string { return c.Duration }),
		Coordinators: distinct(cards, func(c models.ProjectCard) string { return c.Coordinator }),
	}
}

func distinct(cards []models.ProjectCard, field func(models.ProjectCard) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, c := range cards {
		v := field(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// IsSortKey reports whether key is one of SortKeys.
func IsSortKey(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}
