package rows

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrijs2005/fuellog/internal/server/models"
)

// MemoryRepository keeps rows in process memory. It backs local runs
// without a database; rows are lost on restart.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]models.Row
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]models.Row)}
}

func (r *MemoryRepository) Append(ctx context.Context, rows []models.Row) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := r.rows[row.ID]; !ok {
			row.Data = maps.Clone(row.Data)
			r.rows[row.ID] = row
		}
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	result := make([]models.Row, 0, len(r.rows))
	for _, row := range r.rows {
		row.Data = maps.Clone(row.Data)
		result = append(result, row)
	}
	r.mu.RUnlock()

	slices.SortFunc(result, func(a, b models.Row) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}
