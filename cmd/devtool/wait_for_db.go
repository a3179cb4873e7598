package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	dbWaitAttempts = 30
	dbWaitInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Block until the database answers a ping"
}

func (c *WaitForDBCommand) Run(args []string) error {
	dbURL := databaseURL()
	PrintHeader(fmt.Sprintf("Waiting for database at %s", redactPassword(dbURL)))

	var lastErr error
	for i := 1; i <= dbWaitAttempts; i++ {
		if err := pingOnce(dbURL); err != nil {
			lastErr = err
			fmt.Printf("Database not ready (%d/%d): %v\n", i, dbWaitAttempts, err)
			time.Sleep(dbWaitInterval)
			continue
		}
		PrintSuccess("Database is ready")
		return nil
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", dbWaitAttempts, lastErr)
}

func pingOnce(dbURL string) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}
