package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemongo "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// RunPostgresMigrations applies the migrations under dir to databaseURL.
func RunPostgresMigrations(databaseURL, dir string) error {
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			slog.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	return runMigrations(dir, "postgres", driver)
}

// RunMongoMigrations applies the JSON command migrations under dir to the
// named database. It uses its own client since closing the migrate instance
// disconnects it.
func RunMongoMigrations(ctx context.Context, uri, databaseName, dir string) error {
	client, err := NewMongoClient(ctx, uri)
	if err != nil {
		return err
	}
	driver, err := migratemongo.WithInstance(client, &migratemongo.Config{DatabaseName: databaseName})
	if err != nil {
		CloseMongoClient(ctx, client)
		return fmt.Errorf("could not create mongodb driver instance for migrations: %w", err)
	}
	return runMigrations(dir, databaseName, driver)
}

func runMigrations(dir, databaseName string, driver database.Driver) error {
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, databaseName, driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	// Apply all available "up" migrations
	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		slog.Info("No new migrations to apply.", slog.String("dir", dir))
	} else {
		slog.Info("Database migrations applied successfully.", slog.String("dir", dir))
	}
	return nil
}
