package cli

import (
	"fmt"
	"strings"

	"github.com/david/eu-project-explorer/internal/catalog"
	"github.com/spf13/cobra"
)

type listOptions struct {
	country     string
	duration    string
	coordinator string
	budget      string
	size        string
	sort        string
	desc        bool
	json        bool
}

func newListCmd(app *App) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with optional filters and sorting",
		Long: `List every discovered project as a table.

Examples:
  euproj list                                  # All projects by acronym
  euproj list --country Greece                 # Coordinated from Greece
  euproj list --budget 5M-10M --sort maxAmount # Budget tier, cheapest first
  euproj list --size large --sort startDate --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.query()
			if err != nil {
				return err
			}

			l, err := app.Loader()
			if err != nil {
				return err
			}
			cards, err := l.LoadProjectCards(cmd.Context())
			if err != nil {
				return err
			}

			result := catalog.Apply(cards, q)
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			renderCards(cmd.OutOrStdout(), result, len(cards))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.country, "country", "", "Filter by coordinator country")
	cmd.Flags().StringVar(&opts.duration, "duration", "", `Filter by duration, e.g. "48 Months"`)
	cmd.Flags().StringVar(&opts.coordinator, "coordinator", "", "Filter by coordinating organisation")
	cmd.Flags().StringVar(&opts.budget, "budget", "", "Budget tier: 0-5M, 5M-10M, 10M-15M, 15M-20M, 20M+ (or min-max in euro)")
	cmd.Flags().StringVar(&opts.size, "size", "", "Consortium size: small, medium, large")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort key: "+strings.Join(catalog.SortKeys, ", "))
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON instead of a table")
	return cmd
}

func (o listOptions) query() (catalog.Query, error) {
	var q catalog.Query
	add := func(key, value string) {
		if value != "" {
			q = q.WithFilter(catalog.Filter{Key: key, Value: value, Label: value})
		}
	}
	add(catalog.KeyCountry, o.country)
	add(catalog.KeyDuration, o.duration)
	add(catalog.KeyCoordinator, o.coordinator)

	if o.budget != "" {
		value, err := budgetValue(o.budget)
		if err != nil {
			return q, err
		}
		add(catalog.KeyBudget, value)
	}

	if o.size != "" {
		switch o.size {
		case catalog.SizeSmall, catalog.SizeMedium, catalog.SizeLarge:
			add(catalog.KeyParticipantSize, o.size)
		default:
			return q, fmt.Errorf("unknown size %q (want small, medium or large)", o.size)
		}
	}

	if o.sort != "" {
		if !catalog.IsSortKey(o.sort) {
			return q, fmt.Errorf("unknown sort key %q (valid: %s)", o.sort, strings.Join(catalog.SortKeys, ", "))
		}
		q = q.ToggleSort(o.sort)
		if o.desc {
			q = q.ToggleSort(o.sort)
		}
	}
	return q, nil
}

// budgetValue accepts a tier shorthand ("5M-10M", "20M+") or a raw
// "min-max" filter value.
func budgetValue(s string) (string, error) {
	short := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(s, "€", ""), " ", ""))
	for _, r := range catalog.BudgetRanges() {
		label := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(r.Label, "€", ""), " ", ""))
		if short == label {
			return r.Value, nil
		}
	}
	if _, _, err := catalog.ParseRange(s); err != nil {
		return "", err
	}
	return s, nil
}

func newSearchCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search projects by acronym, title or summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.Loader()
			if err != nil {
				return err
			}
			results, err := l.SearchProjects(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			cards, err := l.LoadProjectCards(cmd.Context())
			if err != nil {
				return err
			}
			renderCards(cmd.OutOrStdout(), results, len(cards))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
