// Package timeline lays out project events on a month axis.
package timeline

import "sort"

const (
	// OverlapThreshold is the distance in months under which two events share a group.
	OverlapThreshold = 3
	// StackHeight is the vertical offset in pixels between stacked events.
	StackHeight = 25

	minHeight   = 60
	labelHeight = 40
)

// Category classifies an event on the timeline.
type Category string

const (
	CategoryMilestone   Category = "milestone"
	CategoryDeliverable Category = "deliverable"
	CategoryReport      Category = "report"
)

type Event struct {
	Label       string   `json:"label"`
	Month       int      `json:"month"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Leader      string   `json:"leader,omitempty"`
	WP          string   `json:"wp,omitempty"`
}

// Placement is the computed position of one event.
type Placement struct {
	Event   Event   `json:"event"`
	X       float64 `json:"x"` // percent of the axis
	Stack   int     `json:"stack"`
	Y       int     `json:"y"` // pixels, Stack * StackHeight
	Group   int     `json:"group"`
	Grouped bool    `json:"grouped"`
}

type Group struct {
	ID         int         `json:"id"`
	Placements []Placement `json:"placements"`
}

// PositionPercent maps a 1-based month onto 0..100 across total months.
func PositionPercent(month, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(month-1) / float64(total-1) * 100
}

// WidthPercent is the share of the axis covered by months start..end inclusive.
func WidthPercent(start, end, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(end-start+1) / float64(total) * 100
}

// Layout places events greedily in month order. An event with no placed
// neighbour within OverlapThreshold months starts a new group at stack 0.
// Otherwise it stacks above the highest neighbour, joins the first
// neighbour's group, and it and its neighbours are marked grouped.
// The result is a heuristic and does not minimise total height.
func Layout(events []Event, total int) []Placement {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	placements := make([]Placement, 0, len(sorted))
	nextGroup := 0

	for _, ev := range sorted {
		var overlapping []int
		for i, p := range placements {
			if abs(p.Event.Month-ev.Month) <= OverlapThreshold {
				overlapping = append(overlapping, i)
			}
		}

		if len(overlapping) == 0 {
			placements = append(placements, Placement{
				Event: ev,
				X:     PositionPercent(ev.Month, total),
				Group: nextGroup,
			})
			nextGroup++
			continue
		}

		maxStack := 0
		for _, i := range overlapping {
			if placements[i].Stack > maxStack {
				maxStack = placements[i].Stack
			}
			placements[i].Grouped = true
		}

		stack := maxStack + 1
		placements = append(placements, Placement{
			Event:   ev,
			X:       PositionPercent(ev.Month, total),
			Stack:   stack,
			Y:       stack * StackHeight,
			Group:   placements[overlapping[0]].Group,
			Grouped: true,
		})
	}
	return placements
}

// Groups buckets placements by group id in ascending id order, keeping
// placement order inside each bucket.
func Groups(placements []Placement) []Group {
	index := make(map[int]int)
	groups := []Group{}
	for _, p := range placements {
		i, ok := index[p.Group]
		if !ok {
			i = len(groups)
			index[p.Group] = i
			groups = append(groups, Group{ID: p.Group})
		}
		groups[i].Placements = append(groups[i].Placements, p)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// Height is the pixel height needed to draw the placements.
func Height(placements []Placement) int {
	h := minHeight
	for _, p := range placements {
		if p.Y+labelHeight > h {
			h = p.Y + labelHeight
		}
	}
	return h
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
