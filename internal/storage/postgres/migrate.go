package postgres

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/hourglass-app/hourglass-backend/internal/storage/postgres/migrations"
)

// Migrate runs the embedded goose migrations against a fresh database/sql
// connection and closes it afterwards.
func Migrate(ctx context.Context, dsn string) error {
	db, err := NewConnection(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}
