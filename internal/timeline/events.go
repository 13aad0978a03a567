package timeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/david/eu-project-explorer/internal/models"
)

// EventsFor collects a project's milestones, deliverables and extra timeline
// entries as events, in that order.
func EventsFor(p *models.Project) []Event {
	events := make([]Event, 0, len(p.Milestones)+len(p.Deliverables)+len(p.ProjectInfo.TimelineEvents))

	for _, m := range p.Milestones {
		events = append(events, Event{
			Label:       fmt.Sprintf("M%d", m.No),
			Month:       m.Due,
			Category:    CategoryMilestone,
			Description: m.Name,
			Leader:      m.Leader,
			WP:          string(m.WP),
		})
	}
	for _, d := range p.Deliverables {
		wp := ""
		if d.WP > 0 {
			wp = strconv.Itoa(d.WP)
		}
		events = append(events, Event{
			Label:       d.No,
			Month:       d.Due,
			Category:    CategoryDeliverable,
			Description: d.Name,
			Leader:      d.Leader,
			WP:          wp,
		})
	}
	for _, te := range p.ProjectInfo.TimelineEvents {
		events = append(events, Event{
			Label:       te.Period,
			Month:       te.Month,
			Category:    categoryOf(te.Type),
			Description: te.Description,
		})
	}
	return events
}

func categoryOf(t string) Category {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case string(CategoryMilestone):
		return CategoryMilestone
	case string(CategoryDeliverable):
		return CategoryDeliverable
	default:
		return CategoryReport
	}
}

type Marker struct {
	Month int     `json:"month"`
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

type WorkPackageBar struct {
	No         int     `json:"no"`
	Title      string  `json:"title"`
	Leader     string  `json:"leader"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	X          float64 `json:"x"`
	Width      float64 `json:"width"`
	ColorIndex int     `json:"colorIndex"`
	TaskCount  int     `json:"taskCount"`
}

// View is everything needed to draw a project timeline.
type View struct {
	TotalMonths  int              `json:"totalMonths"`
	StartDate    string           `json:"startDate"`
	Markers      []Marker         `json:"markers"`
	WorkPackages []WorkPackageBar `json:"workPackages"`
	Placements   []Placement      `json:"placements"`
	Groups       []Group          `json:"groups"`
	CurrentMonth int              `json:"currentMonth"` // 0 when outside the project span
	CurrentX     float64          `json:"currentX"`
	Height       int              `json:"height"`
}

const workPackageColors = 8

// Build lays out the full timeline of p as seen at now.
func Build(p *models.Project, now time.Time) View {
	total := DurationMonths(p.ProjectInfo.Duration)

	markers := make([]Marker, 0)
	for _, m := range MonthMarkers(total) {
		markers = append(markers, Marker{Month: m, X: PositionPercent(m, total), Label: fmt.Sprintf("M%d", m)})
	}

	wps := make([]models.WorkPackage, len(p.WorkPackagesWithTasks))
	copy(wps, p.WorkPackagesWithTasks)
	sort.SliceStable(wps, func(i, j int) bool { return wps[i].No < wps[j].No })

	bars := make([]WorkPackageBar, 0, len(wps))
	for _, wp := range wps {
		bars = append(bars, WorkPackageBar{
			No:         wp.No,
			Title:      wp.Title,
			Leader:     wp.Leader,
			Start:      wp.Start,
			End:        wp.End,
			X:          PositionPercent(wp.Start, total),
			Width:      WidthPercent(wp.Start, wp.End, total),
			ColorIndex: wp.No % workPackageColors,
			TaskCount:  len(wp.Tasks),
		})
	}

	placements := Layout(EventsFor(p), total)

	view := View{
		TotalMonths:  total,
		StartDate:    p.ProjectInfo.StartDate,
		Markers:      markers,
		WorkPackages: bars,
		Placements:   placements,
		Groups:       Groups(placements),
		Height:       Height(placements),
	}
	if start, ok := models.ParseDate(p.ProjectInfo.StartDate); ok {
		view.CurrentMonth = CurrentMonth(start, now, total)
		if view.CurrentMonth > 0 {
			view.CurrentX = PositionPercent(view.CurrentMonth, total)
		}
	}
	return view
}
