package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const migrateAttempts = 3

type EntrypointCommand struct{}

func (c *EntrypointCommand) Name() string {
	return "entrypoint"
}

func (c *EntrypointCommand) Description() string {
	return "Container entrypoint (wait-for-db, backup, migrate, exec)"
}

// Run is pid-1 inside the container: it blocks on the database, takes a
// pre-migration backup where configured, migrates, then execs the server.
func (c *EntrypointCommand) Run(args []string) error {
	// In compose the database service is named "db"
	if os.Getenv("DB_HOST") == "" {
		_ = os.Setenv("DB_HOST", "db")
	}

	wait := &WaitForDBCommand{}
	if err := wait.Run(nil); err != nil {
		return fmt.Errorf("wait-for-db failed: %w", err)
	}

	c.preMigrationBackup()

	if err := c.migrateUp(); err != nil {
		return err
	}

	return c.handOff(args)
}

// preMigrationBackup dumps the database before migrations touch it. Runs in
// prod always, elsewhere only when CREATE_BACKUP=true. A failed or missing
// pg_dump warns instead of blocking the deploy.
func (c *EntrypointCommand) preMigrationBackup() {
	if os.Getenv("ENVIRONMENT") != envProduction && os.Getenv("CREATE_BACKUP") != "true" {
		return
	}

	PrintHeader("Creating pre-migration backup...")

	if _, err := exec.LookPath("pg_dump"); err != nil {
		PrintWarning("pg_dump not found, skipping backup")
		return
	}

	backupFile := fmt.Sprintf("/tmp/vitrine_backup_%s.sql", time.Now().Format("20060102_150405"))

	f, err := os.Create(backupFile)
	if err != nil {
		PrintWarning("Could not create backup file: %v", err)
		return
	}
	defer f.Close()

	cmd := exec.Command("pg_dump",
		"-h", os.Getenv("DB_HOST"),
		"-U", os.Getenv("DB_USER"),
		"-d", os.Getenv("DB_NAME"))
	cmd.Stdout = f
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		PrintWarning("Backup failed: %v", err)
		return
	}
	PrintSuccess("Backup created: %s", backupFile)
}

// migrateUp retries because the database may accept connections a moment
// before it is ready for DDL.
func (c *EntrypointCommand) migrateUp() error {
	PrintHeader("Running migrations...")
	migrate := &MigrateCommand{}

	var err error
	for i := 1; i <= migrateAttempts; i++ {
		err = migrate.Run([]string{"up"})
		if err == nil {
			PrintSuccess("Migrations completed successfully")
			return nil
		}
		PrintWarning("Migration attempt %d failed: %v", i, err)
		if i < migrateAttempts {
			PrintInfo("Retrying in 5 seconds...")
			time.Sleep(5 * time.Second)
		}
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", migrateAttempts, err)
}

// handOff execs the server binary in place so it inherits pid 1 and receives
// container signals directly.
func (c *EntrypointCommand) handOff(args []string) error {
	execArgs := args
	if len(execArgs) > 0 && execArgs[0] == "--" {
		execArgs = execArgs[1:]
	}

	if len(execArgs) == 0 {
		return fmt.Errorf("no command to execute")
	}

	PrintHeader("Starting application...")
	cmdPath, err := exec.LookPath(execArgs[0])
	if err != nil {
		return fmt.Errorf("executable not found: %w", err)
	}

	if err := syscall.Exec(cmdPath, execArgs, os.Environ()); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}

	return nil
}
