package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/dmitrijs2005/fuellog/internal/common"
	"github.com/dmitrijs2005/fuellog/internal/dbx"
)

const entryColumns = `id, ts, date, time, vehicle, place, odometer_km, driven_km_auto, driven_km_final,
	driven_km_manual, liters, avg_calc_lper100, avg_car_lper100, adblue_liters, adblue_lper1000, acknowledged`

const insertEntry = `INSERT INTO entries (` + entryColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a ledger bound to db. The schema is expected to
// be migrated already (see migrations.Up).
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append inserts e. An existing id yields common.ErrDuplicateID.
func (r *SQLiteRepository) Append(ctx context.Context, e *models.Entry) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE id = ?`, e.ID).Scan(&n); err != nil {
			return fmt.Errorf("failed to check entry id: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("append %s: %w", e.ID, common.ErrDuplicateID)
		}
		return insert(ctx, tx, e, e.Acknowledged)
	})
}

// All returns the whole ledger.
func (r *SQLiteRepository) All(ctx context.Context) ([]models.Entry, error) {
	return r.query(ctx, `SELECT `+entryColumns+` FROM entries`)
}

// GetByID returns the entry with the given id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &e, nil
}

// GetAllPending returns entries with acknowledged=0, oldest first.
func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Entry, error) {
	return r.query(ctx, `SELECT `+entryColumns+` FROM entries WHERE acknowledged = 0 ORDER BY ts, id`)
}

func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE acknowledged = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}
	return n, nil
}

// MarkAcknowledged flags the given ids as acknowledged. Unknown ids are ignored.
func (r *SQLiteRepository) MarkAcknowledged(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var changed int64
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, id := range ids {
			res, err := tx.ExecContext(ctx, `UPDATE entries SET acknowledged = 1 WHERE id = ? AND acknowledged = 0`, id)
			if err != nil {
				return fmt.Errorf("failed to acknowledge entry %s: %w", id, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			changed += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(changed), nil
}

// ReplaceAcknowledged drops acknowledged entries and inserts remote in their
// place, skipping ids that are still queued locally and repeated ids.
func (r *SQLiteRepository) ReplaceAcknowledged(ctx context.Context, remote []models.Entry) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE acknowledged = 1`); err != nil {
			return fmt.Errorf("failed to drop acknowledged entries: %w", err)
		}

		taken, err := queuedIDs(ctx, tx)
		if err != nil {
			return err
		}

		for i := range remote {
			e := &remote[i]
			if e.ID == "" {
				continue
			}
			if _, ok := taken[e.ID]; ok {
				continue
			}
			if err := insert(ctx, tx, e, true); err != nil {
				return err
			}
			taken[e.ID] = struct{}{}
		}
		return nil
	})
}

func queuedIDs(ctx context.Context, tx dbx.DBTX) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to select queued ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func insert(ctx context.Context, tx dbx.DBTX, e *models.Entry, acknowledged bool) error {
	_, err := tx.ExecContext(ctx, insertEntry,
		e.ID, e.Timestamp, e.Date, e.Time, e.Vehicle, e.Place,
		nullFloat(e.OdometerKm), nullFloat(e.DrivenKmAuto), nullFloat(e.DrivenKmFinal),
		e.DrivenKmManualOverride, nullFloat(e.Liters),
		nullFloat(e.AvgCalculatedLper100), nullFloat(e.AvgVehicleDisplayedLper100),
		e.AdblueLiters, nullFloat(e.AdblueLper1000Km), acknowledged,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (models.Entry, error) {
	var (
		e                                         models.Entry
		odo, auto, final, liters, avg, car, adAvg sql.NullFloat64
	)
	err := s.Scan(&e.ID, &e.Timestamp, &e.Date, &e.Time, &e.Vehicle, &e.Place,
		&odo, &auto, &final, &e.DrivenKmManualOverride, &liters, &avg, &car,
		&e.AdblueLiters, &adAvg, &e.Acknowledged)
	if err != nil {
		return models.Entry{}, err
	}
	e.OdometerKm = floatPtr(odo)
	e.DrivenKmAuto = floatPtr(auto)
	e.DrivenKmFinal = floatPtr(final)
	e.Liters = floatPtr(liters)
	e.AvgCalculatedLper100 = floatPtr(avg)
	e.AvgVehicleDisplayedLper100 = floatPtr(car)
	e.AdblueLper1000Km = floatPtr(adAvg)
	return e, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return models.Float(v.Float64)
}
