// Package cli implements the euproj command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the euproj command tree.
func NewRootCommand() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "euproj",
		Short: "Browse EU-funded research project data",
		Long: `euproj reads the per-project JSON files published under an eu-data
directory and lists, filters and inspects them from the terminal.

The data host is taken from EU_DATA_BASE_URL (default
http://localhost:8080/eu-data) and may be a file:// URL.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&app.baseURL, "data-url", "", "Override EU_DATA_BASE_URL")
	root.PersistentFlags().StringVar(&app.backend, "backend", "", "Override FETCH_BACKEND (http, colly)")

	root.AddCommand(
		newListCmd(app),
		newSearchCmd(app),
		newShowCmd(app),
		newTimelineCmd(app),
		newDiscoverCmd(app),
		newManifestCmd(app),
		newServeCmd(app),
	)
	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
