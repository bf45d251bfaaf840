// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Supported DATABASE_TYPE values
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DriverName maps a database type to its database/sql driver name
func DriverName(databaseType string) (string, error) {
	switch databaseType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", databaseType)
	}
}

func dialect(databaseType string) (goose.Dialect, error) {
	switch databaseType {
	case TypeSQLite:
		return goose.DialectSQLite3, nil
	case TypePostgres:
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// CreateSchema applies all pending migrations.
// Safe to call multiple times - goose tracks applied versions.
func CreateSchema(ctx context.Context, conn *sql.DB, databaseType string) error {
	d, err := dialect(databaseType)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(d, conn, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "source", r.Source.Path, "duration_ms", r.Duration.Milliseconds())
	}

	return nil
}
