package models

// Draft is the in-progress entry as collected by a form. Derived fields are
// not part of it; they are recomputed from the draft and the ledger.
type Draft struct {
	Date    string
	Time    string
	Vehicle string
	Place   string

	OdometerKm                 *float64
	Liters                     *float64
	AvgVehicleDisplayedLper100 *float64
	AdblueLiters               *float64

	// ManualOverride is set once the user edits the driven distance. While it
	// is set, DrivenKmOverride wins over the derived value, even when nil.
	// A negative override is treated as undetermined.
	ManualOverride   bool
	DrivenKmOverride *float64
}

// Settings is the persisted client configuration blob.
type Settings struct {
	SheetsURL string `json:"sheetsUrl"`
	// LastOK is the RFC3339 instant of the last successful ping.
	LastOK string `json:"lastOk"`
}

// DefaultVehicles seeds the vehicle list on first start.
var DefaultVehicles = []string{"GPG-830", "JLN-678", "LMO-637"}
