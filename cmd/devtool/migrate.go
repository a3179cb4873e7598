package main

import (
	"fmt"
)

const migrationsDir = "migrations"

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Run goose migrations (up, down, status, create, ...)"
}

// Run shells out to the pinned goose CLI so the devtool and CI apply
// migrations identically.
func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}

	if args[0] == "create" {
		return c.create(args[1:])
	}
	return c.apply(args)
}

// create scaffolds a new migration file; no database needed.
func (c *MigrateCommand) create(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("migration name required for create")
	}

	migrationType := "sql"
	if len(args) > 1 {
		migrationType = args[1]
	}

	return runCommandVerbose("go", "run", "github.com/pressly/goose/v3/cmd/goose",
		"-dir", migrationsDir, "create", args[0], migrationType)
}

// apply runs any other goose subcommand against the configured database.
// Extra args pass through, e.g. the version for up-to and down-to.
func (c *MigrateCommand) apply(args []string) error {
	gooseArgs := []string{"run", "github.com/pressly/goose/v3/cmd/goose",
		"-dir", migrationsDir, "postgres", databaseURL()}
	gooseArgs = append(gooseArgs, args...)

	return runCommandVerbose("go", gooseArgs...)
}
