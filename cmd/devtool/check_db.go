package main

import (
	"fmt"
	"strings"
	"time"
)

// composeDBService is the postgres service name in docker-compose.yml.
const composeDBService = "db"

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Start the compose database if needed and wait until it accepts connections"
}

func (c *CheckDBCommand) Run(args []string) error {
	PrintHeader("Checking Docker database status...")

	if err := runCommand("docker", "compose", "version"); err != nil {
		return fmt.Errorf("docker compose not found. Please install Docker Compose")
	}

	if c.serviceRunning() {
		PrintSuccess("Database is already running")
		return nil
	}

	PrintInfo("Starting database...")
	if err := runCommandVerbose("docker", "compose", "up", "-d", composeDBService); err != nil {
		return fmt.Errorf("error starting database: %v", err)
	}

	PrintInfo("Waiting for database to be ready...")
	time.Sleep(3 * time.Second)

	if err := c.waitUntilReady(30); err != nil {
		return err
	}

	PrintSuccess("Database check complete")
	return nil
}

func (c *CheckDBCommand) serviceRunning() bool {
	out, err := getCommandOutput("docker", "compose", "ps", composeDBService)
	if err != nil {
		return false
	}
	status := strings.ToLower(out)
	return strings.Contains(status, "up") || strings.Contains(status, "running")
}

// waitUntilReady polls pg_isready inside the container once a second.
func (c *CheckDBCommand) waitUntilReady(maxAttempts int) error {
	dbUser := getEnv("DB_USER", "postgres")
	dbName := getEnv("DB_NAME", "vitrine")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := runCommand("docker", "compose", "exec", "-T", composeDBService,
			"pg_isready", "-U", dbUser, "-d", dbName)
		if err == nil {
			PrintSuccess("Database is ready")
			return nil
		}

		fmt.Printf("Waiting for database... (%d/%d)\n", attempt, maxAttempts)
		time.Sleep(1 * time.Second)
	}

	PrintError("Database failed to start after %d seconds", maxAttempts)
	_ = runCommandVerbose("docker", "compose", "logs", composeDBService)
	return fmt.Errorf("database failed to start")
}
