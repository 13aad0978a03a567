package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/david/eu-project-explorer/internal/models"
	"github.com/david/eu-project-explorer/internal/views"
	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderCards(w io.Writer, cards []models.ProjectCard, total int) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Acronym", "Title", "Coordinator", "Country", "Budget", "Duration", "Years", "Partners", "Deliverables"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: 40},
		{Name: "Coordinator", WidthMax: 30},
	})
	for _, c := range cards {
		t.AppendRow(table.Row{
			c.ID,
			c.Acronym,
			c.Title,
			c.Coordinator,
			c.Country,
			views.FormatAmount(c.MaxAmount),
			c.Duration,
			views.YearOf(c.StartDate) + "-" + views.YearOf(c.EndDate),
			c.ParticipantCount,
			c.DeliverableCount,
		})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d of %d projects", len(cards), total)})
	t.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// bar draws months start..end of total as a fixed-width text bar.
func bar(start, end, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	from := (start - 1) * width / total
	to := end * width / total
	if from < 0 {
		from = 0
	}
	if to > width {
		to = width
	}
	if to <= from {
		to = from + 1
		if to > width {
			from, to = width-1, width
		}
	}
	return strings.Repeat("·", from) + strings.Repeat("█", to-from) + strings.Repeat("·", width-to)
}
