// Package rows stores sheet rows for the reference endpoint, in PostgreSQL
// or in memory.
package rows

import (
	"context"

	"github.com/dmitrijs2005/fuellog/internal/server/models"
)

// Repository is an append-only table keyed by row id.
//
// Append is idempotent on id: a row whose id is already stored is kept as it
// was and still reported as stored. The returned ids are the ones now durably
// present, in request order.
type Repository interface {
	Append(ctx context.Context, rows []models.Row) ([]string, error)
	List(ctx context.Context) ([]models.Row, error)
}
