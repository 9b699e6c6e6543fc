package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "00001_fuel_rows.sql")
}

func TestUp_UsesEmbeddedDir(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Up(context.Background(), nil))
	assert.Equal(t, ".", gotDir)
}

func TestUp_WrapsError(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}

	err := Up(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "apply migrations")
}
