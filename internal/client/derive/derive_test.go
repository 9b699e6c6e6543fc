package derive

import (
	"testing"

	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, vehicle string, ts int64, odo *float64) models.Entry {
	return models.Entry{ID: id, Vehicle: vehicle, Timestamp: ts, OdometerKm: odo}
}

func TestFindReference(t *testing.T) {
	history := []models.Entry{
		entry("a", "GPG-830", 100, models.Float(900)),
		entry("b", "GPG-830", 300, models.Float(1000)),
		entry("c", "GPG-830", 400, nil),
		entry("d", "JLN-678", 500, models.Float(5000)),
	}

	ref := FindReference("GPG-830", history)
	require.NotNil(t, ref)
	assert.Equal(t, "b", ref.ID, "newest entry with a reading wins, entries without one are skipped")

	assert.Nil(t, FindReference("LMO-637", history))
	assert.Nil(t, FindReference("GPG-830", nil))
}

func TestFindReference_TieIsStable(t *testing.T) {
	history := []models.Entry{
		entry("f_a", "GPG-830", 100, models.Float(1)),
		entry("f_c", "GPG-830", 100, models.Float(3)),
		entry("f_b", "GPG-830", 100, models.Float(2)),
	}
	for range 5 {
		ref := FindReference("GPG-830", history)
		require.NotNil(t, ref)
		assert.Equal(t, "f_c", ref.ID)
	}
}

func TestFindReference_SameTimestampPrefersHigherOdometer(t *testing.T) {
	// two fill-ups saved within one millisecond; ids are random
	history := []models.Entry{
		entry("f_z", "GPG-830", 100, models.Float(1000)),
		entry("f_a", "GPG-830", 100, models.Float(1200)),
	}
	ref := FindReference("GPG-830", history)
	require.NotNil(t, ref)
	assert.Equal(t, "f_a", ref.ID)

	r := Derive(models.Draft{Vehicle: "GPG-830", OdometerKm: models.Float(1500), Liters: models.Float(30)}, history)
	assert.Equal(t, models.Float(300), r.DrivenKmAuto)

	equal := []models.Entry{
		entry("f_a", "GPG-830", 100, models.Float(1000)),
		entry("f_b", "GPG-830", 100, models.Float(1000)),
	}
	assert.Equal(t, "f_b", FindReference("GPG-830", equal).ID)
}

func TestDerive_Distance(t *testing.T) {
	history := []models.Entry{entry("prev", "GPG-830", 100, models.Float(1000))}

	tests := []struct {
		name     string
		odo      float64
		wantAuto *float64
		wantHint Hint
	}{
		{name: "forward", odo: 1200, wantAuto: models.Float(200), wantHint: HintAuto},
		{name: "equal", odo: 1000, wantAuto: models.Float(0), wantHint: HintAuto},
		{name: "backwards", odo: 950, wantAuto: nil, wantHint: HintOdometerBelowPrevious},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Derive(models.Draft{Vehicle: "GPG-830", OdometerKm: models.Float(tt.odo), Liters: models.Float(40)}, history)
			assert.Equal(t, tt.wantAuto, r.DrivenKmAuto)
			assert.Equal(t, tt.wantAuto, r.DrivenKmFinal)
			assert.Equal(t, tt.wantHint, r.Hint)
			require.NotNil(t, r.Reference)
			assert.Equal(t, "prev", r.Reference.ID)
		})
	}
}

func TestDerive_NoPreviousEntry(t *testing.T) {
	r := Derive(models.Draft{Vehicle: "NEW-1", OdometerKm: models.Float(100), Liters: models.Float(30)}, nil)

	assert.Nil(t, r.Reference)
	assert.Nil(t, r.DrivenKmAuto)
	assert.Nil(t, r.DrivenKmFinal)
	assert.Nil(t, r.AvgCalculatedLper100)
	assert.Equal(t, HintNoPrevious, r.Hint)
}

func TestDerive_OverrideWins(t *testing.T) {
	history := []models.Entry{entry("prev", "GPG-830", 100, models.Float(1000))}

	tests := []struct {
		name      string
		odo       float64
		override  *float64
		wantFinal *float64
	}{
		{name: "override over auto", odo: 1200, override: models.Float(500), wantFinal: models.Float(500)},
		{name: "override where auto undetermined", odo: 900, override: models.Float(300), wantFinal: models.Float(300)},
		{name: "cleared override stays empty", odo: 1200, override: nil, wantFinal: nil},
		{name: "negative override is undetermined", odo: 1200, override: models.Float(-5), wantFinal: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Derive(models.Draft{
				Vehicle:          "GPG-830",
				OdometerKm:       models.Float(tt.odo),
				Liters:           models.Float(40),
				ManualOverride:   true,
				DrivenKmOverride: tt.override,
			}, history)
			assert.Equal(t, tt.wantFinal, r.DrivenKmFinal)
			assert.Equal(t, HintManual, r.Hint)
		})
	}
}

func TestConsumption(t *testing.T) {
	tests := []struct {
		name       string
		liters     *float64
		adblue     float64
		driven     *float64
		wantAvg    *float64
		wantAdblue *float64
	}{
		{name: "basic", liters: models.Float(40), driven: models.Float(500), wantAvg: models.Float(8.0)},
		{name: "rounds to one decimal", liters: models.Float(41.37), driven: models.Float(523), wantAvg: models.Float(7.9)},
		{name: "adblue", liters: models.Float(40), adblue: 1.5, driven: models.Float(700), wantAvg: models.Float(5.7), wantAdblue: models.Float(2.14)},
		{name: "zero distance", liters: models.Float(40), adblue: 1, driven: models.Float(0)},
		{name: "absent distance", liters: models.Float(40), adblue: 1, driven: nil},
		{name: "absent liters", liters: nil, driven: models.Float(100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, ad := Consumption(tt.liters, tt.adblue, tt.driven)
			assert.Equal(t, tt.wantAvg, avg)
			assert.Equal(t, tt.wantAdblue, ad)
		})
	}
}

func TestDerive_ConsumptionFollowsFinalDistance(t *testing.T) {
	history := []models.Entry{entry("prev", "GPG-830", 100, models.Float(1000))}
	d := models.Draft{
		Vehicle:      "GPG-830",
		OdometerKm:   models.Float(1500),
		Liters:       models.Float(40),
		AdblueLiters: models.Float(2),
	}

	r := Derive(d, history)
	assert.Equal(t, models.Float(8.0), r.AvgCalculatedLper100)
	assert.Equal(t, models.Float(4.0), r.AdblueLper1000Km)

	d.OdometerKm = models.Float(1000)
	r = Derive(d, history)
	assert.Equal(t, models.Float(0), r.DrivenKmFinal)
	assert.Nil(t, r.AvgCalculatedLper100)
	assert.Nil(t, r.AdblueLper1000Km)
}

func TestDerive_VehicleChangeSwitchesReference(t *testing.T) {
	history := []models.Entry{
		entry("a", "GPG-830", 100, models.Float(1000)),
		entry("b", "JLN-678", 200, models.Float(50000)),
	}
	d := models.Draft{Vehicle: "GPG-830", OdometerKm: models.Float(1100)}
	assert.Equal(t, models.Float(100), Derive(d, history).DrivenKmAuto)

	d.Vehicle = "JLN-678"
	r := Derive(d, history)
	assert.Nil(t, r.DrivenKmAuto)
	assert.Equal(t, HintOdometerBelowPrevious, r.Hint)
}
