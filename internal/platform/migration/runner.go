// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

// Package migration runs schema migrations on startup.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run applies all pending "up" migrations from the given directory.
//
// The database URL is converted to the pgx5 driver scheme expected by
// golang-migrate. A no-change result is not an error.
func Run(databaseURL, migrationsPath string, logger *slog.Logger) error {
	pgxURL := toPgxURL(databaseURL)

	migrator, err := migrate.New("file://"+migrationsPath, pgxURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, dbErr := migrator.Close()
		if sourceErr != nil {
			logger.Warn("migration_close_source_error", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			logger.Warn("migration_close_db_error", slog.String("error", dbErr.Error()))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migrations_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: failed to apply: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}

	logger.Info("migrations_applied",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// toPgxURL rewrites postgres:// and postgresql:// schemes to pgx5://.
func toPgxURL(databaseURL string) string {
	if after, ok := strings.CutPrefix(databaseURL, "postgres://"); ok {
		return "pgx5://" + after
	}
	if after, ok := strings.CutPrefix(databaseURL, "postgresql://"); ok {
		return "pgx5://" + after
	}
	return databaseURL
}

// migrateLogger adapts slog to the migrate.Logger interface.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, v...))))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
