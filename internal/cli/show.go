package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/david/eu-project-explorer/internal/timeline"
	"github.com/david/eu-project-explorer/internal/views"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const barWidth = 48

func newShowCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project's overview, partners and deliverables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.Loader()
			if err != nil {
				return err
			}
			p, err := l.LoadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			detail := views.Detail(args[0], p, time.Now())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), detail)
			}
			renderDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page model as JSON")
	return cmd
}

func renderDetail(w io.Writer, d views.DetailView) {
	o := d.Overview

	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%s  %s", o.Acronym, o.Title))
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 80}})
	t.AppendRows([]table.Row{
		{"Grant", fmt.Sprintf("%s %s", o.GrantNumber, o.GrantType)},
		{"Budget", o.Amount},
		{"Period", fmt.Sprintf("%s to %s (%s)", o.StartDate, o.EndDate, o.Duration)},
		{"Coordinator", fmt.Sprintf("%s, %s", o.Coordinator.Name, o.Coordinator.Location)},
	})
	if d.LeadOrganisation != nil {
		t.AppendRow(table.Row{"Lead organisation", d.LeadOrganisation.LegalName})
	}
	if d.Timeline.CurrentMonth > 0 {
		t.AppendRow(table.Row{"Progress", fmt.Sprintf("M%d of %d", d.Timeline.CurrentMonth, d.Timeline.TotalMonths)})
	}
	t.AppendRow(table.Row{"Summary", o.Summary.Text})
	t.Render()

	pt := newTable(w)
	pt.SetTitle(fmt.Sprintf("Partners: %d from %d countries", d.Participants.TotalParticipants, d.Participants.TotalCountries))
	pt.AppendHeader(table.Row{"Country", "Code", "Partners", "Coordinator", "Organisations"})
	pt.SetColumnConfigs([]table.ColumnConfig{{Name: "Organisations", WidthMax: 60}})
	for _, c := range d.Participants.Countries {
		names := ""
		for i, p := range c.Participants {
			if i > 0 {
				names += ", "
			}
			names += p.ShortName
		}
		coord := ""
		if c.HasCoordinator {
			coord = "yes"
		}
		pt.AppendRow(table.Row{c.Country, c.CountryCode, c.Count, coord, names})
	}
	pt.Render()

	dt := newTable(w)
	dt.SetTitle(fmt.Sprintf("Deliverables (%d)", d.Deliverables.Total))
	dt.AppendHeader(table.Row{"No", "Name", "WP", "Type", "Level", "Due", "Date"})
	dt.SetColumnConfigs([]table.ColumnConfig{{Name: "Name", WidthMax: 50}})
	for _, it := range d.Deliverables.Items {
		dt.AppendRow(table.Row{it.No, it.Name, it.WP, it.Type, it.Level, fmt.Sprintf("M%d", it.Due), it.DueLabel})
	}
	dt.Render()
}

func newTimelineCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "timeline <id>",
		Short: "Show a project's work packages and laid-out events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.Loader()
			if err != nil {
				return err
			}
			p, err := l.LoadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			view := timeline.Build(p, time.Now())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			renderTimeline(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")
	return cmd
}

func renderTimeline(w io.Writer, v timeline.View) {
	wt := newTable(w)
	wt.SetTitle(fmt.Sprintf("Work packages over %d months", v.TotalMonths))
	wt.AppendHeader(table.Row{"WP", "Title", "Leader", "Months", "Schedule"})
	wt.SetColumnConfigs([]table.ColumnConfig{{Name: "Title", WidthMax: 36}})
	for _, wp := range v.WorkPackages {
		wt.AppendRow(table.Row{
			fmt.Sprintf("WP%d", wp.No),
			wp.Title,
			wp.Leader,
			fmt.Sprintf("M%d-M%d", wp.Start, wp.End),
			bar(wp.Start, wp.End, v.TotalMonths, barWidth),
		})
	}
	if v.CurrentMonth > 0 {
		wt.AppendFooter(table.Row{"", "", "", "Now", bar(v.CurrentMonth, v.CurrentMonth, v.TotalMonths, barWidth)})
	}
	wt.Render()

	et := newTable(w)
	et.SetTitle("Events")
	et.AppendHeader(table.Row{"Month", "Date", "Event", "Type", "Group", "Level", "Description"})
	et.SetColumnConfigs([]table.ColumnConfig{{Name: "Description", WidthMax: 50}})
	for _, p := range v.Placements {
		et.AppendRow(table.Row{
			fmt.Sprintf("M%d", p.Event.Month),
			timeline.FormatMonth(v.StartDate, p.Event.Month),
			p.Event.Label,
			string(p.Event.Category),
			p.Group,
			p.Stack,
			p.Event.Description,
		})
	}
	et.Render()
}
