package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fuellog/internal/client/migrations"
	"github.com/dmitrijs2005/fuellog/internal/client/repositories/entries"
	"github.com/dmitrijs2005/fuellog/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

// Repositories bundles the stores that live in the local database file.
type Repositories struct {
	Metadata metadata.Repository
	Entries  entries.Repository
	DB       *sql.DB
}

// OpenDatabase opens the SQLite file at dsn and applies pending migrations.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	// One writer keeps ":memory:" databases coherent and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitDatabase opens the local database and wires its repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := OpenDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Entries:  entries.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}

// Close releases the database.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
