// Package derive computes the distance and consumption fields of a fuel entry
// from the draft and the vehicle's history. Everything here is pure; callers
// re-run Derive whenever vehicle, odometer, liters, adblue or the override
// flag changes, because the reference entry depends on all of them.
package derive

import (
	"math"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
)

// Hint tells the form why the distance looks the way it does.
type Hint int

const (
	HintNone Hint = iota
	// HintNoPrevious: first entry for this vehicle, distance not computable.
	HintNoPrevious
	// HintOdometerBelowPrevious: the reading is lower than the reference
	// reading. The caller must ask for a manual distance.
	HintOdometerBelowPrevious
	// HintAuto: distance derived from the reference entry.
	HintAuto
	// HintManual: distance supplied by the user.
	HintManual
)

// Result holds derived fields. Nil pointers mean "undetermined".
type Result struct {
	Reference *models.Entry

	DrivenKmAuto         *float64
	DrivenKmFinal        *float64
	AvgCalculatedLper100 *float64
	AdblueLper1000Km     *float64

	Hint Hint
}

// FindReference returns the newest entry of vehicle that carries an odometer
// reading. Ties on timestamp go to the higher odometer reading, then to the
// greater id, so the pick is stable.
func FindReference(vehicle string, history []models.Entry) *models.Entry {
	var ref *models.Entry
	for i := range history {
		e := &history[i]
		if e.Vehicle != vehicle || e.OdometerKm == nil {
			continue
		}
		if ref == nil || newer(e, ref) {
			ref = e
		}
	}
	if ref == nil {
		return nil
	}
	cp := *ref
	return &cp
}

func newer(a, b *models.Entry) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp > b.Timestamp
	}
	if *a.OdometerKm != *b.OdometerKm {
		return *a.OdometerKm > *b.OdometerKm
	}
	return a.ID > b.ID
}

// AutoDistance returns the driven distance between ref and odometer, or nil
// when there is no reference, no reading, or the reading went backwards.
func AutoDistance(ref *models.Entry, odometer *float64) *float64 {
	if ref == nil || ref.OdometerKm == nil || odometer == nil {
		return nil
	}
	delta := *odometer - *ref.OdometerKm
	if delta < 0 {
		return nil
	}
	return models.Float(delta)
}

// Derive computes all derived fields of d against history.
func Derive(d models.Draft, history []models.Entry) Result {
	var r Result

	if d.Vehicle != "" && d.OdometerKm != nil {
		r.Reference = FindReference(d.Vehicle, history)
		r.DrivenKmAuto = AutoDistance(r.Reference, d.OdometerKm)
	}

	switch {
	case d.ManualOverride:
		if d.DrivenKmOverride != nil && *d.DrivenKmOverride >= 0 {
			r.DrivenKmFinal = d.DrivenKmOverride
		}
		r.Hint = HintManual
	case r.DrivenKmAuto != nil:
		r.DrivenKmFinal = r.DrivenKmAuto
		r.Hint = HintAuto
	case r.Reference != nil:
		r.Hint = HintOdometerBelowPrevious
	case d.OdometerKm != nil && d.Vehicle != "":
		r.Hint = HintNoPrevious
	}

	r.AvgCalculatedLper100, r.AdblueLper1000Km = Consumption(d.Liters, adblue(d), r.DrivenKmFinal)
	return r
}

// Consumption returns liters per 100 km (1 decimal) and adblue liters per
// 1000 km (2 decimals). A zero or absent distance yields nil for both; adblue
// is only computed when some was added.
func Consumption(liters *float64, adblueLiters float64, drivenKm *float64) (avg *float64, adblueAvg *float64) {
	if drivenKm == nil || *drivenKm <= 0 {
		return nil, nil
	}
	if liters != nil {
		avg = models.Float(round(*liters / *drivenKm * 100, 1))
	}
	if adblueLiters > 0 {
		adblueAvg = models.Float(round(adblueLiters / *drivenKm * 1000, 2))
	}
	return avg, adblueAvg
}

func adblue(d models.Draft) float64 {
	if d.AdblueLiters == nil {
		return 0
	}
	return *d.AdblueLiters
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
