package derive

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/dmitrijs2005/fuellog/internal/common"
)

// Required field names, in validation order.
const (
	FieldVehicle  = "vehicle"
	FieldPlace    = "place"
	FieldOdometer = "odometerKm"
	FieldLiters   = "liters"
)

// ValidationError names the first required field that is missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

// Validate checks required fields. Blank strings count as missing.
func Validate(d models.Draft) error {
	switch {
	case strings.TrimSpace(d.Vehicle) == "":
		return &ValidationError{Field: FieldVehicle}
	case strings.TrimSpace(d.Place) == "":
		return &ValidationError{Field: FieldPlace}
	case d.OdometerKm == nil:
		return &ValidationError{Field: FieldOdometer}
	case d.Liters == nil:
		return &ValidationError{Field: FieldLiters}
	}
	return nil
}

// IDFunc mints entry ids.
type IDFunc func() string

// BuildEntry validates d and turns it into a new, unacknowledged entry. The id
// and timestamp are fixed here, before the entry is handed to anything that
// may block.
func BuildEntry(d models.Draft, history []models.Entry, now time.Time, newID IDFunc) (models.Entry, Result, error) {
	d.Vehicle = strings.TrimSpace(d.Vehicle)
	d.Place = strings.TrimSpace(d.Place)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)

	if err := Validate(d); err != nil {
		return models.Entry{}, Result{}, err
	}
	if newID == nil {
		newID = models.NewEntryID
	}

	r := Derive(d, history)

	return models.Entry{
		ID:                         newID(),
		Timestamp:                  now.UnixMilli(),
		Date:                       d.Date,
		Time:                       d.Time,
		Vehicle:                    d.Vehicle,
		Place:                      d.Place,
		OdometerKm:                 d.OdometerKm,
		DrivenKmAuto:               r.DrivenKmAuto,
		DrivenKmFinal:              r.DrivenKmFinal,
		DrivenKmManualOverride:     d.ManualOverride,
		Liters:                     d.Liters,
		AvgCalculatedLper100:       r.AvgCalculatedLper100,
		AvgVehicleDisplayedLper100: d.AvgVehicleDisplayedLper100,
		AdblueLiters:               adblue(d),
		AdblueLper1000Km:           r.AdblueLper1000Km,
	}, r, nil
}

// LocalDateTime formats t as the form's default date and time strings.
func LocalDateTime(t time.Time) (date, clock string) {
	return t.Format("2006-01-02"), t.Format("15:04")
}
