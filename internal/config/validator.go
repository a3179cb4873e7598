package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion pins the .env layout this binary understands.
// Bump it whenever a required variable is added or renamed so stale env
// files fail loudly at startup instead of half-working.
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must all be non-empty for the service to boot.
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// ValidateEnv verifies the env schema version and that every required
// variable is set.
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	if missing := missingEnvVars(); len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func missingEnvVars() []string {
	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	return missing
}

// ValidateEnvWithWarnings runs ValidateEnv and then flags values that are
// set but dangerous: placeholder secrets from the example env file, and a
// missing reconcile key that would leave the sweep endpoint open.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if os.Getenv("RECONCILE_API_KEY") == "" {
		warnings = append(warnings, "RECONCILE_API_KEY is not set - the reconcile trigger will accept unauthenticated requests")
	}

	return warnings, nil
}
