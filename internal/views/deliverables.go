package views

import (
	"sort"
	"strings"

	"github.com/david/eu-project-explorer/internal/models"
	"github.com/david/eu-project-explorer/internal/timeline"
)

// Dissemination levels as written in the data files.
const (
	LevelPublic     = "public"
	LevelSensitive  = "sensitive"
	LevelClassified = "classified"
	LevelOther      = "other"
)

type DeliverableItem struct {
	models.Deliverable
	DueLabel   string `json:"dueLabel"` // "Jun 2024", or "M6" without a start date
	LevelClass string `json:"levelClass"`
}

type DeliverableGroup struct {
	Type  string            `json:"type"`
	Items []DeliverableItem `json:"items"`
}

type DeliverablesView struct {
	Total    int                `json:"total"`
	MaxMonth int                `json:"maxMonth"` // axis length: the later of the duration and the last due month
	Items    []DeliverableItem  `json:"items"`
	ByType   []DeliverableGroup `json:"byType"`
}

// LevelClass normalises a dissemination level for styling.
func LevelClass(level string) string {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case LevelPublic, LevelSensitive, LevelClassified:
		return l
	default:
		return LevelOther
	}
}

// Deliverables lists a project's deliverables by due month, and grouped by
// type in order of first appearance.
func Deliverables(p *models.Project) DeliverablesView {
	items := make([]DeliverableItem, 0, len(p.Deliverables))
	for _, d := range p.Deliverables {
		items = append(items, DeliverableItem{
			Deliverable: d,
			DueLabel:    timeline.FormatMonth(p.ProjectInfo.StartDate, d.Due),
			LevelClass:  LevelClass(d.Level),
		})
	}

	groups := []DeliverableGroup{}
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Type]
		if !ok {
			i = len(groups)
			index[it.Type] = i
			groups = append(groups, DeliverableGroup{Type: it.Type})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Due < items[j].Due })

	maxMonth := timeline.DurationMonths(p.ProjectInfo.Duration)
	for _, it := range items {
		if it.Due > maxMonth {
			maxMonth = it.Due
		}
	}

	return DeliverablesView{
		Total:    len(items),
		MaxMonth: maxMonth,
		Items:    items,
		ByType:   groups,
	}
}
