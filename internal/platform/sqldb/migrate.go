package sqldb

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func newProvider(db *DB) (*goose.Provider, error) {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	var dialect goose.Dialect
	switch db.Dialect {
	case DialectSQLite:
		dialect = goose.DialectSQLite3
	case DialectPostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", db.Dialect)
	}

	provider, err := goose.NewProvider(dialect, db.DB, migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *DB) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, r := range results {
		log.Debug("applied migration",
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration))
	}
	log.Info("database schema up to date", slog.Int("applied", len(results)))
	return nil
}

// Reset rolls every migration back, leaving an empty schema.
func Reset(ctx context.Context, db *DB) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	results, err := provider.DownTo(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	logger.FromContext(ctx).Info("database schema reset", slog.Int("rolled_back", len(results)))
	return nil
}

// SchemaVersion returns the currently applied migration version.
func SchemaVersion(ctx context.Context, db *DB) (int64, error) {
	provider, err := newProvider(db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}
