package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

type gooseFunc func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error

// seams for tests
var (
	gooseUp     gooseFunc = goose.UpContext
	gooseDown   gooseFunc = goose.DownContext
	gooseStatus gooseFunc = goose.StatusContext
)

// Migrate runs a goose command ("up", "down" or "status") against db using
// the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string) error {
	var run gooseFunc
	switch command {
	case "up":
		run = gooseUp
	case "down":
		run = gooseDown
	case "status":
		run = gooseStatus
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := run(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
