package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed database with data (pool, demo)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: pool, demo")
	}
	subcmd := args[0]

	dbURL := databaseURL()
	PrintInfo("Connecting to database: %s", redactPassword(dbURL))

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	switch subcmd {
	case "pool":
		return c.runPoolSeed(db)
	case "demo":
		return c.runDemoSeed(db)
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
}

// runPoolSeed provisions the slot pool rows. Idempotent: existing slots
// are left untouched.
func (c *SeedCommand) runPoolSeed(db *sql.DB) error {
	PrintInfo("Provisioning slot pool...")

	files := []string{
		"internal/database/seeds/slot_pool.sql",
	}

	for _, file := range files {
		if err := c.executeFile(db, file); err != nil {
			return err
		}
	}

	PrintSuccess("Slot pool seed completed successfully")
	return nil
}

// runDemoSeed provisions the pool and fills a handful of slots with demo
// listings so the storefront has something to show in local dev.
func (c *SeedCommand) runDemoSeed(db *sql.DB) error {
	PrintInfo("Running demo seeds...")

	files := []string{
		"internal/database/seeds/slot_pool.sql",
		"internal/database/seeds/demo_listings.sql",
	}

	for _, file := range files {
		if err := c.executeFile(db, file); err != nil {
			return err
		}
	}

	PrintSuccess("Demo seeds completed successfully")
	return nil
}

func (c *SeedCommand) executeFile(db *sql.DB, filepath string) error {
	PrintInfo("Executing %s...", filepath)

	content, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", filepath, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute seed file %s: %w", filepath, err)
	}

	return nil
}
