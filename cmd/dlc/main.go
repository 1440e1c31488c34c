package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/aeobrien/deadline-calendar/internal/cli"
	"github.com/aeobrien/deadline-calendar/internal/db"
	"github.com/aeobrien/deadline-calendar/internal/repository"
	"github.com/aeobrien/deadline-calendar/internal/schedule"
	"github.com/aeobrien/deadline-calendar/internal/service"
	"github.com/aeobrien/deadline-calendar/internal/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.dlc/dlc.db
	dbPath := os.Getenv("DLC_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".dlc", "dlc.db")
	}

	// Determine template directory
	templateDir := os.Getenv("DLC_TEMPLATES")
	if templateDir == "" {
		// Check for ./templates in current directory first (development)
		if stat, err := os.Stat("./templates"); err == nil && stat.IsDir() {
			templateDir = "./templates"
		} else {
			// Fall back to ~/.dlc/templates (production)
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			templateDir = filepath.Join(home, ".dlc", "templates")
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Load the template catalog; broken templates are excluded, not fatal.
	templateStore := template.NewStore(templateDir)
	if err := templateStore.Load(); err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	repo := repository.NewSQLiteProjectSetRepo(database, db.NewSQLiteUnitOfWork(database))
	store := schedule.NewStore(repo, templateStore)
	if err := store.Hydrate(context.Background()); err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	engine := schedule.NewEngine(store, templateStore)

	// Emit use-case telemetry only when stderr is not a terminal, so log
	// lines do not interleave with styled command output.
	var observers []service.UseCaseObserver
	if os.Getenv("DLC_LOG") != "" || !isatty.IsTerminal(os.Stderr.Fd()) {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Projects:  service.NewProjectService(store, templateStore, observers...),
		Triggers:  service.NewTriggerService(store, engine, observers...),
		Templates: service.NewTemplateService(templateStore),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
