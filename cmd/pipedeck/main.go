package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"pipedeck/internal/config"
	"pipedeck/internal/database"
	"pipedeck/internal/prefs"
	"pipedeck/internal/service"
	"pipedeck/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDemoData(ctx, db); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	store, err := prefs.NewStore()
	if err != nil {
		log.Fatalf("prefs: %v", err)
	}

	svc := service.NewMutationService(db, cfg.Simulation)

	p := tea.NewProgram(tui.New(ctx, cfg.UI, svc, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
