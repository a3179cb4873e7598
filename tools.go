//go:build tools
// +build tools

package tools

// Pins the dev toolchain in go.mod so `go run` resolves pinned versions:
// goose drives migrations (devtool migrate), swag regenerates the API docs,
// benchstat compares benchmark runs, and the rest back lint/codegen targets.

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
