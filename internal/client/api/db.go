package api

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docuport/internal/client/migrations"
	"github.com/dmitrijs2005/docuport/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations to the local store.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the client's local SQLite store, applies migrations,
// and returns the metadata repository backing the persisted-token slot.
func InitDatabase(ctx context.Context, dsn string) (metadata.Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return metadata.NewSQLiteRepository(db), nil
}
