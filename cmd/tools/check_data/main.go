package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/david/eu-project-explorer/internal/config"
	"github.com/david/eu-project-explorer/internal/loader"
	"github.com/david/eu-project-explorer/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

// check_data loads every discovered project file and reports which ones
// decode, with their record counts and load time.
func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	l, err := loader.NewFromConfig(cfg.Data)
	if err != nil {
		log.Fatal(err)
	}

	ids, err := l.ProjectIDs(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if failed := checkProjects(ctx, l, ids, os.Stdout); failed > 0 {
		os.Exit(1)
	}
}

type projectLoader interface {
	LoadProject(ctx context.Context, id string) (*models.Project, error)
}

// checkProjects renders one row per id and returns how many failed to load.
func checkProjects(ctx context.Context, l projectLoader, ids []string, w io.Writer) int {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Project", "Status", "Acronym", "Partners", "WPs", "Deliverables", "Milestones", "Load time"})

	failed := 0
	for _, id := range ids {
		start := time.Now()
		p, err := l.LoadProject(ctx, id)
		elapsed := time.Since(start).Round(time.Millisecond).String()
		if err != nil {
			log.Printf("Load error: %v", err)
			failed++
			t.AppendRow(table.Row{id, "failed", "", "", "", "", "", elapsed})
			continue
		}
		t.AppendRow(table.Row{id, "ok", p.ProjectInfo.Acronym, len(p.Participants), len(p.WorkPackagesWithTasks), len(p.Deliverables), len(p.Milestones), elapsed})
	}
	t.AppendFooter(table.Row{len(ids), failed})
	t.Render()
	return failed
}
