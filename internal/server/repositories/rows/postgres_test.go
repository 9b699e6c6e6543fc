package rows

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fuellog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insertRe = regexp.MustCompile(`INSERT INTO fuel_rows .* ON CONFLICT \(id\) DO NOTHING;`).String()
	selectRe = regexp.QuoteMeta(selectRowsQuery)
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func TestPostgresAppend_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertRe).
		WithArgs("f_1", int64(10), []byte(`{"id":"f_1","liters":40}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// already stored: DO NOTHING affects no rows but the id is still reported
	mock.ExpectExec(insertRe).
		WithArgs("f_2", int64(20), []byte(`{"id":"f_2"}`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ids, err := repo.Append(context.Background(), []models.Row{
		{ID: "f_1", Timestamp: 10, Data: map[string]any{"id": "f_1", "liters": 40}},
		{ID: "f_2", Timestamp: 20, Data: map[string]any{"id": "f_2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"f_1", "f_2"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppend_ExecErrorRollsBack(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertRe).
		WithArgs("f_1", int64(10), []byte(`{}`)).
		WillReturnError(errors.New("db is down"))
	mock.ExpectRollback()

	ids, err := repo.Append(context.Background(), []models.Row{{ID: "f_1", Timestamp: 10, Data: map[string]any{}}})
	require.Error(t, err)
	assert.Nil(t, ids)
	assert.Contains(t, err.Error(), "db error: db is down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppend_BeginError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	_, err := repo.Append(context.Background(), []models.Row{{ID: "f_1"}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectRe).WillReturnRows(
		sqlmock.NewRows([]string{"id", "ts", "data"}).
			AddRow("f_1", int64(10), []byte(`{"id":"f_1","odoKm":1000}`)).
			AddRow("f_2", int64(20), []byte(`{"id":"f_2"}`)),
	)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "f_1", got[0].ID)
	assert.Equal(t, int64(10), got[0].Timestamp)
	assert.Equal(t, float64(1000), got[0].Data["odoKm"])
	assert.Equal(t, "f_2", got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_Empty(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectRe).WillReturnRows(sqlmock.NewRows([]string{"id", "ts", "data"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresList_QueryError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectRe).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select rows")
}

func TestPostgresList_BadJSON(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectRe).WillReturnRows(
		sqlmock.NewRows([]string{"id", "ts", "data"}).AddRow("f_1", int64(1), []byte(`{`)),
	)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode row f_1")
}

func TestPostgresList_RowError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectRe).WillReturnRows(
		sqlmock.NewRows([]string{"id", "ts", "data"}).
			AddRow("f_1", int64(1), []byte(`{}`)).
			RowError(0, errors.New("row err")),
	)

	_, err := repo.List(context.Background())
	require.Error(t, err)
}
