package cli

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/david/eu-project-explorer/internal/loader"
	"github.com/david/eu-project-explorer/internal/manifest"
	"github.com/david/eu-project-explorer/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newDiscoverCmd(app *App) *cobra.Command {
	var probe bool
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the project ids available on the data host",
		Long: `List the project ids available on the data host.

By default the manifest is used and each listed file is checked. With --probe
the candidate registry is probed instead and a manifest document is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.Loader()
			if err != nil {
				return err
			}

			if probe {
				m, err := l.GenerateManifest(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), m)
			}

			ids, err := l.ProjectIDs(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return fmt.Errorf("%w at %s", loader.ErrNoProjects, l.BaseURL())
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "Project", "Data file"})
			for i, id := range ids {
				t.AppendRow(table.Row{i + 1, id, fmt.Sprintf("%s/%s.json", l.BaseURL(), id)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&probe, "probe", false, "Probe the candidate registry and print a manifest")
	return cmd
}

func newManifestCmd(app *App) *cobra.Command {
	var dir, backup, generatedBy string
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Regenerate projects-manifest.json from a data directory",
		Long: `Scan a directory for project *.json files and write projects-manifest.json
next to them. Run it whenever a project file is added or removed.

Examples:
  euproj manifest                                  # Uses DATA_DIR (public/eu-data)
  euproj manifest --dir public/eu-data --backup eu-data/projects-manifest.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := app.Config()
				if err != nil {
					return err
				}
				dir = cfg.Data.DataDir
			}

			log.Printf("[manifest] Scanning for project files in %s", dir)
			ids, err := manifest.Scan(dir)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				log.Printf("[manifest] Warning: %v in %s", loader.ErrNoProjects, dir)
			}

			m := manifest.Build(ids, generatedBy, time.Now())
			path := filepath.Join(dir, models.ManifestFileName)
			if err := manifest.Write(path, backup, m); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%d projects)\n", path, m.TotalProjects)
			if backup != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated backup %s\n", backup)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding the project files (default DATA_DIR)")
	cmd.Flags().StringVar(&backup, "backup", "", "Also write the manifest to this path")
	cmd.Flags().StringVar(&generatedBy, "generated-by", "euproj manifest", "Value of the generatedBy field")
	return cmd
}
