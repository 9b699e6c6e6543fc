package rows

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/fuellog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_AppendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	ids, err := repo.Append(ctx, []models.Row{
		{ID: "f_1", Timestamp: 10, Data: map[string]any{"place": "Riga"}},
		{ID: "f_1", Timestamp: 11, Data: map[string]any{"place": "Other"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"f_1", "f_1"}, ids)

	ids, err = repo.Append(ctx, []models.Row{{ID: "f_1", Timestamp: 12, Data: map[string]any{"place": "Again"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"f_1"}, ids)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Riga", got[0].Data["place"])
	assert.Equal(t, int64(10), got[0].Timestamp)
}

func TestMemoryRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Append(ctx, []models.Row{
		{ID: "f_c", Timestamp: 30},
		{ID: "f_b", Timestamp: 10},
		{ID: "f_a", Timestamp: 10},
	})
	require.NoError(t, err)

	got, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"f_a", "f_b", "f_c"}, ids)
}

func TestMemoryRepository_DataIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	data := map[string]any{"liters": 40.0}
	_, err := repo.Append(ctx, []models.Row{{ID: "f_1", Data: data}})
	require.NoError(t, err)
	data["liters"] = 1.0

	got, err := repo.List(ctx)
	require.NoError(t, err)
	got[0].Data["liters"] = 2.0

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, again[0].Data["liters"])
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Append(ctx, []models.Row{{ID: "f_1"}})
	require.ErrorIs(t, err, context.Canceled)
	_, err = repo.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

var (
	_ Repository = (*MemoryRepository)(nil)
	_ Repository = (*PostgresRepository)(nil)
)
