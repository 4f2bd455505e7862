package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending goose migration found in migrations, or
// rolls back the most recent one when down is set. goose needs a
// database/sql handle, so it opens its own connection through the pgx
// stdlib driver.
func Migrate(ctx context.Context, dsn string, migrations fs.FS, down bool, log *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	// NewProvider honours StatementBegin/End blocks in the SQL files.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if down {
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		log.Info("migration rolled back", slog.String("migration", res.Source.Path))
		return nil
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", slog.String("migration", r.Source.Path), slog.Duration("took", r.Duration))
	}
	if len(results) == 0 {
		log.Info("schema is up to date")
	}
	return nil
}
