package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
)

// NormalizeRow converts a sheet row into an acknowledged Entry. Sheets edited
// by hand drift in naming, so legacy and alternative keys are accepted. A row
// without an id gets one from newID, a row without a usable timestamp gets now.
func NormalizeRow(row map[string]any, now time.Time, newID func() string) models.Entry {
	e := models.Entry{
		ID:                         str(row, "id"),
		Date:                       str(row, "date"),
		Time:                       str(row, "time"),
		Place:                      str(row, "place", "city"),
		Vehicle:                    str(row, "vehicle", "plate"),
		OdometerKm:                 num(row, "odoKm", "odo", "odometerKm", "odometer_km"),
		DrivenKmAuto:               num(row, "drivenKmAuto", "driven_km_auto"),
		DrivenKmFinal:              num(row, "drivenKmFinal", "drivenKm", "driven_km_final"),
		DrivenKmManualOverride:     flag(row, "drivenKmManualUsed", "driven_km_manual"),
		Liters:                     num(row, "liters"),
		AvgCalculatedLper100:       num(row, "avgCalcLper100", "avg_calc_lper100"),
		AvgVehicleDisplayedLper100: num(row, "avgCarLper100", "avgCar", "avg_car_lper100"),
		AdblueLper1000Km:           num(row, "adblueLper1000", "adblue_lper1000"),
		Acknowledged:               true,
	}

	if v := num(row, "adblueLiters", "adblue", "adblue_liters"); v != nil {
		e.AdblueLiters = *v
	}
	if e.ID == "" {
		e.ID = newID()
	}
	e.Timestamp = timestamp(row, now)
	return e
}

func lookup(row map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

func str(row map[string]any, keys ...string) string {
	v, ok := lookup(row, keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func num(row map[string]any, keys ...string) *float64 {
	v, ok := lookup(row, keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case float64:
		return models.Float(t)
	case int:
		return models.Float(float64(t))
	case int64:
		return models.Float(float64(t))
	case string:
		return models.ParseNumber(t)
	default:
		return nil
	}
}

func flag(row map[string]any, keys ...string) bool {
	v, ok := lookup(row, keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

// timestamp reads ts/timestamp as Unix milliseconds or an RFC 3339 string.
func timestamp(row map[string]any, now time.Time) int64 {
	if n := num(row, "ts", "timestamp"); n != nil && *n > 0 {
		return int64(*n)
	}
	if v, ok := lookup(row, "ts", "timestamp"); ok {
		if s, isStr := v.(string); isStr {
			if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
				return t.UnixMilli()
			}
		}
	}
	return now.UnixMilli()
}
