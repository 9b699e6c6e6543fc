package rows

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fuellog/internal/dbx"
	"github.com/dmitrijs2005/fuellog/internal/server/models"
)

const (
	insertRowQuery = `
		INSERT INTO fuel_rows (id, ts, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING;
	`
	selectRowsQuery = `SELECT id, ts, data FROM fuel_rows ORDER BY ts, id`
)

// PostgresRepository implements Repository over a PostgreSQL database.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append stores the batch in one transaction. Either every row is stored or
// none is.
func (r *PostgresRepository) Append(ctx context.Context, rows []models.Row) ([]string, error) {
	ids := make([]string, 0, len(rows))

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, row := range rows {
			data, err := json.Marshal(row.Data)
			if err != nil {
				return fmt.Errorf("encode row %s: %w", row.ID, err)
			}
			if _, err := tx.ExecContext(ctx, insertRowQuery, row.ID, row.Timestamp, data); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			ids = append(ids, row.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// List returns all rows ordered by timestamp, then id.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Row, error) {
	rows, err := r.db.QueryContext(ctx, selectRowsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to select rows: %w", err)
	}
	defer rows.Close()

	result := []models.Row{}
	for rows.Next() {
		var (
			item models.Row
			data []byte
		)
		if err := rows.Scan(&item.ID, &item.Timestamp, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &item.Data); err != nil {
			return nil, fmt.Errorf("decode row %s: %w", item.ID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
