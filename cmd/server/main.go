package main

import (
	"log"

	"github.com/david/eu-project-explorer/internal/api"
	"github.com/david/eu-project-explorer/internal/config"
	"github.com/david/eu-project-explorer/internal/loader"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := loader.NewFromConfig(cfg.Data)
	if err != nil {
		log.Fatalf("Failed to create data loader: %v", err)
	}

	srv := api.NewServer(l, cfg.Server)
	log.Printf("Server starting on port %s (data: %s)...", cfg.Server.Port, l.BaseURL())
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
