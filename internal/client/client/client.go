package client

import (
	"context"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
)

// Client talks to the sheet endpoint. Every method resolves to either a
// result or a classified error: ErrUnavailable for transport trouble, or an
// error matching ErrRejected when the endpoint refused the request.
type Client interface {
	// Ping checks that the endpoint answers.
	Ping(ctx context.Context) error

	// Append sends a batch and returns the ids the endpoint stored. When the
	// endpoint does not echo ids, every id of the batch is assumed stored.
	Append(ctx context.Context, entries []models.Entry) ([]string, error)

	// List returns the endpoint's canonical rows, normalized and marked
	// acknowledged.
	List(ctx context.Context) ([]models.Entry, error)
}
