package timeline

import (
	"testing"
	"time"

	"github.com/david/eu-project-explorer/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLayout_GroupsNearbyEvents(t *testing.T) {
	events := []Event{
		{Label: "M3", Month: 10},
		{Label: "M1", Month: 1},
		{Label: "M2", Month: 2},
	}

	got := Layout(events, 48)
	require.Len(t, got, 3)

	require.Equal(t, "M1", got[0].Event.Label)
	require.Equal(t, 0, got[0].Stack)
	require.Equal(t, 0, got[0].Group)
	require.True(t, got[0].Grouped)

	require.Equal(t, "M2", got[1].Event.Label)
	require.Equal(t, 1, got[1].Stack)
	require.Equal(t, StackHeight, got[1].Y)
	require.Equal(t, 0, got[1].Group)
	require.True(t, got[1].Grouped)

	require.Equal(t, "M3", got[2].Event.Label)
	require.Equal(t, 0, got[2].Stack)
	require.Equal(t, 1, got[2].Group)
	require.False(t, got[2].Grouped)
}

func TestLayout_StacksAboveHighestNeighbour(t *testing.T) {
	events := []Event{{Month: 5}, {Month: 6}, {Month: 7}, {Month: 9}, {Month: 13}}
	got := Layout(events, 24)

	stacks := []int{}
	groups := []int{}
	for _, p := range got {
		stacks = append(stacks, p.Stack)
		groups = append(groups, p.Group)
	}
	// Month 9 overlaps 6 and 7 (stacks 1 and 2) but not 5.
	require.Equal(t, []int{0, 1, 2, 3, 0}, stacks)
	require.Equal(t, []int{0, 0, 0, 0, 1}, groups)
	require.Equal(t, 3*StackHeight+40, Height(got))
}

func TestLayout_StableForEqualMonths(t *testing.T) {
	got := Layout([]Event{{Label: "a", Month: 4}, {Label: "b", Month: 4}}, 12)
	require.Equal(t, "a", got[0].Event.Label)
	require.Equal(t, "b", got[1].Event.Label)
	require.Empty(t, Layout(nil, 12))
	require.Equal(t, 60, Height(nil))
}

func TestGroups(t *testing.T) {
	placements := Layout([]Event{{Month: 20}, {Month: 1}, {Month: 3}, {Month: 40}}, 48)
	groups := Groups(placements)
	require.Len(t, groups, 3)
	require.Equal(t, 0, groups[0].ID)
	require.Len(t, groups[0].Placements, 2)
	require.Equal(t, 20, groups[1].Placements[0].Event.Month)
	require.Equal(t, 40, groups[2].Placements[0].Event.Month)
}

func TestPositionAndWidth(t *testing.T) {
	require.Equal(t, 0.0, PositionPercent(1, 48))
	require.Equal(t, 100.0, PositionPercent(48, 48))
	require.Equal(t, 0.0, PositionPercent(5, 1))
	require.Equal(t, 0.0, PositionPercent(5, 0))
	require.InDelta(t, 25.0, WidthPercent(1, 12, 48), 1e-9)
	require.InDelta(t, 100.0, WidthPercent(1, 48, 48), 1e-9)
	require.Equal(t, 0.0, WidthPercent(1, 12, 0))
}

func TestDurationMonths(t *testing.T) {
	tests := map[string]int{
		"48 Months":   48,
		"36":          36,
		"approx. 30m": 30,
		"":            DefaultDurationMonths,
		"open-ended":  DefaultDurationMonths,
	}
	for input, want := range tests {
		require.Equal(t, want, DurationMonths(input), input)
	}
}

func TestMonthMarkers(t *testing.T) {
	require.Equal(t, []int{1, 7, 13, 19}, MonthMarkers(24))
	require.Equal(t, []int{1}, MonthMarkers(1))
	require.Empty(t, MonthMarkers(0))
}

func TestFormatMonth(t *testing.T) {
	require.Equal(t, "Jan 2024", FormatMonth("2024-01-01", 1))
	require.Equal(t, "Dec 2024", FormatMonth("2024-01-15", 12))
	require.Equal(t, "Feb 2026", FormatMonth("1 November 2025", 4))
	require.Equal(t, "M7", FormatMonth("someday", 7))
}

func TestCurrentMonth(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 1, CurrentMonth(start, start, 36))
	require.Equal(t, 14, CurrentMonth(start, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC), 36))
	require.Equal(t, 0, CurrentMonth(start, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), 36))
	require.Equal(t, 0, CurrentMonth(start, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), 36))
}

func TestEventsFor(t *testing.T) {
	p := &models.Project{
		ProjectInfo: models.ProjectInfo{
			TimelineEvents: []models.TimelineEntry{
				{Period: "RP1", Month: 18, Type: "report", Description: "Periodic report"},
				{Period: "Review", Month: 24, Type: "Milestone"},
			},
		},
		Milestones:   []models.Milestone{{No: 2, Name: "Prototype", WP: "WP3", Due: 12}},
		Deliverables: []models.Deliverable{{No: "D1.1", Name: "Plan", WP: 1, Due: 6}},
	}

	events := EventsFor(p)
	require.Len(t, events, 4)
	require.Equal(t, Event{Label: "M2", Month: 12, Category: CategoryMilestone, Description: "Prototype", WP: "WP3"}, events[0])
	require.Equal(t, Event{Label: "D1.1", Month: 6, Category: CategoryDeliverable, Description: "Plan", WP: "1"}, events[1])
	require.Equal(t, CategoryReport, events[2].Category)
	require.Equal(t, CategoryMilestone, events[3].Category)
}

func TestBuild(t *testing.T) {
	p := &models.Project{
		ProjectInfo: models.ProjectInfo{Duration: "24 Months", StartDate: "2024-01-01"},
		WorkPackagesWithTasks: []models.WorkPackage{
			{No: 2, Title: "Pilots", Start: 7, End: 24},
			{No: 1, Title: "Management", Start: 1, End: 24, Tasks: []models.Task{{ID: "T1.1"}}},
		},
		Milestones: []models.Milestone{{No: 1, Due: 1}, {No: 2, Due: 2}},
	}

	view := Build(p, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	require.Equal(t, 24, view.TotalMonths)
	require.Len(t, view.Markers, 4)
	require.Equal(t, 1, view.WorkPackages[0].No)
	require.Equal(t, 1, view.WorkPackages[0].TaskCount)
	require.InDelta(t, 75.0, view.WorkPackages[1].Width, 1e-9)
	require.Equal(t, 6, view.CurrentMonth)
	require.Len(t, view.Groups, 1)
	require.Equal(t, StackHeight+40, view.Height)

	view = Build(p, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.Zero(t, view.CurrentMonth)
	require.Zero(t, view.CurrentX)
}
