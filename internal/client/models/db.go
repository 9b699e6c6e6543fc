// Package models defines client-side data models used by the fuel log CLI.
package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Entry is one refueling event. It is persisted in the local ledger and sent
// to the sheet endpoint as a row; JSON tags follow the sheet's column keys.
//
// Numeric fields that may be undetermined are pointers: nil means "absent".
type Entry struct {
	// ID is assigned once at creation and is the only merge key between the
	// local ledger and the remote sheet.
	ID string `json:"id"`

	// Timestamp is the creation instant in Unix milliseconds. It orders the
	// history and picks the reference entry, but is not unique.
	Timestamp int64 `json:"ts"`

	// Date and Time are the user-facing strings (YYYY-MM-DD, HH:MM).
	Date string `json:"date"`
	Time string `json:"time"`

	Vehicle string `json:"vehicle"`
	Place   string `json:"place"`

	OdometerKm *float64 `json:"odoKm"`

	// DrivenKmAuto is the delta to the previous odometer reading of the same
	// vehicle. DrivenKmFinal is what consumption math used: the auto value or
	// a manual override.
	DrivenKmAuto           *float64 `json:"drivenKmAuto"`
	DrivenKmFinal          *float64 `json:"drivenKmFinal"`
	DrivenKmManualOverride bool     `json:"drivenKmManualUsed"`

	Liters *float64 `json:"liters"`

	AvgCalculatedLper100       *float64 `json:"avgCalcLper100"`
	AvgVehicleDisplayedLper100 *float64 `json:"avgCarLper100"`

	AdblueLiters     float64  `json:"adblueLiters"`
	AdblueLper1000Km *float64 `json:"adblueLper1000"`

	// Acknowledged is true once the sheet endpoint durably stored the row.
	Acknowledged bool `json:"sent"`
}

// IDPrefix marks ids minted by this client.
const IDPrefix = "f_"

// NewEntryID returns a fresh, globally unique entry id.
func NewEntryID() string {
	return IDPrefix + uuid.NewString()
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// ParseNumber parses user or sheet input. A comma is accepted as the decimal
// separator. Empty, non-numeric and non-finite input yields nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
