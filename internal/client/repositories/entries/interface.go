package entries

import (
	"context"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
)

// Repository describes the local ledger. Implementations must persist every
// mutation before returning.
type Repository interface {
	// Append stores a new entry as given, including its acknowledged flag.
	Append(ctx context.Context, entry *models.Entry) error

	// All returns every entry in no particular order.
	All(ctx context.Context) ([]models.Entry, error)

	// GetByID returns a single entry or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Entry, error)

	// GetAllPending returns entries not yet acknowledged by the remote.
	GetAllPending(ctx context.Context) ([]models.Entry, error)

	// CountPending returns the number of unacknowledged entries.
	CountPending(ctx context.Context) (int, error)

	// MarkAcknowledged sets acknowledged=true for the given ids and returns
	// how many entries changed state.
	MarkAcknowledged(ctx context.Context, ids []string) (int, error)

	// ReplaceAcknowledged atomically drops every acknowledged entry and
	// inserts the given set (forced to acknowledged) in its place.
	ReplaceAcknowledged(ctx context.Context, entries []models.Entry) error
}
