// Package export renders the ledger as an XLSX workbook: one row per entry on
// the "fuel" sheet, using the same column keys as the remote sheet, and
// per-vehicle totals on the "summary" sheet.
package export

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/client/derive"
	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/xuri/excelize/v2"
)

const (
	FuelSheet    = "fuel"
	SummarySheet = "summary"
)

// Columns of the fuel sheet, in order.
var Columns = []string{
	"id", "ts", "date", "time", "vehicle", "place", "odoKm",
	"drivenKmAuto", "drivenKmFinal", "drivenKmManualUsed", "liters",
	"avgCalcLper100", "avgCarLper100", "adblueLiters", "adblueLper1000", "sent",
}

var summaryColumns = []string{
	"vehicle", "entries", "queued", "liters", "drivenKm", "avgLper100", "adblueLiters", "adblueLper1000",
}

// VehicleSummary aggregates a vehicle's entries. Averages only count entries
// that have both a distance and the corresponding volume.
type VehicleSummary struct {
	Vehicle        string
	Entries        int
	Queued         int
	Liters         float64
	DrivenKm       float64
	AvgLper100     *float64
	AdblueLiters   float64
	AdblueLper1000 *float64
}

// Summarize groups entries by vehicle, sorted by vehicle label.
func Summarize(entries []models.Entry) []VehicleSummary {
	type acc struct {
		VehicleSummary
		avgLiters, avgKm, adKm float64
	}
	byVehicle := map[string]*acc{}
	for _, e := range entries {
		a, ok := byVehicle[e.Vehicle]
		if !ok {
			a = &acc{VehicleSummary: VehicleSummary{Vehicle: e.Vehicle}}
			byVehicle[e.Vehicle] = a
		}
		a.Entries++
		if !e.Acknowledged {
			a.Queued++
		}
		if e.Liters != nil {
			a.Liters += *e.Liters
		}
		a.AdblueLiters += e.AdblueLiters

		if e.DrivenKmFinal == nil || *e.DrivenKmFinal <= 0 {
			continue
		}
		a.DrivenKm += *e.DrivenKmFinal
		if e.Liters != nil {
			a.avgLiters += *e.Liters
			a.avgKm += *e.DrivenKmFinal
		}
		if e.AdblueLiters > 0 {
			a.adKm += *e.DrivenKmFinal
		}
	}

	result := make([]VehicleSummary, 0, len(byVehicle))
	for _, a := range byVehicle {
		s := a.VehicleSummary
		s.AvgLper100, _ = derive.Consumption(models.Float(a.avgLiters), 0, models.Float(a.avgKm))
		_, s.AdblueLper1000 = derive.Consumption(nil, a.AdblueLiters, models.Float(a.adKm))
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Vehicle < result[j].Vehicle })
	return result
}

// Write renders entries into w as an XLSX workbook.
func Write(w io.Writer, entries []models.Entry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", FuelSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := setRow(f, FuelSheet, 1, header(Columns)); err != nil {
		return err
	}
	for i, e := range entries {
		if err := setRow(f, FuelSheet, i+2, entryRow(e)); err != nil {
			return err
		}
	}

	if err := setRow(f, SummarySheet, 1, header(summaryColumns)); err != nil {
		return err
	}
	for i, s := range Summarize(entries) {
		row := []any{s.Vehicle, s.Entries, s.Queued, s.Liters, s.DrivenKm, opt(s.AvgLper100), s.AdblueLiters, opt(s.AdblueLper1000)}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Bytes is Write into memory.
func Bytes(entries []models.Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName returns the default export name for t.
func FileName(t time.Time) string {
	return "fuel-" + t.Format("20060102-150405") + ".xlsx"
}

func entryRow(e models.Entry) []any {
	return []any{
		e.ID, e.Timestamp, e.Date, e.Time, e.Vehicle, e.Place, opt(e.OdometerKm),
		opt(e.DrivenKmAuto), opt(e.DrivenKmFinal), e.DrivenKmManualOverride, opt(e.Liters),
		opt(e.AvgCalculatedLper100), opt(e.AvgVehicleDisplayedLper100), e.AdblueLiters,
		opt(e.AdblueLper1000Km), e.Acknowledged,
	}
}

func header(cols []string) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// opt leaves undetermined values as empty cells.
func opt(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
