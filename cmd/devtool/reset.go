package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type ResetCommand struct{}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Drop and recreate the database (local dev only)"
}

func (c *ResetCommand) Run(args []string) error {
	if os.Getenv("ENVIRONMENT") == envProduction {
		return fmt.Errorf("refusing to reset a prod database")
	}

	dbName := getEnv("DB_NAME", "vitrine")
	if err := checkHostile(dbName); err != nil {
		return err
	}

	// Administer through the postgres maintenance database
	serverURL := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
	)

	db, err := sql.Open("pgx", serverURL)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping postgres server: %w", err)
	}

	PrintInfo("Terminating existing connections to %s...", dbName)
	_, err = db.Exec(`
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = $1
		AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		PrintWarning("Failed to terminate connections: %v", err)
	}

	PrintInfo("Dropping database %s if it exists...", dbName)
	if _, err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %q", dbName)); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	PrintInfo("Creating database %s...", dbName)
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %q", dbName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	PrintSuccess("Database reset complete")
	PrintInfo("Next: devtool migrate up, then devtool seed pool")
	return nil
}
