package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fuellog/internal/client/client"
	"github.com/dmitrijs2005/fuellog/internal/client/derive"
	"github.com/dmitrijs2005/fuellog/internal/client/models"
	"github.com/dmitrijs2005/fuellog/internal/client/services"
)

var num = services.FormatNumber

func saveMessage(r services.SaveResult) string {
	switch r.Outcome {
	case services.OutcomeConfirmed:
		return "Saved to sheet."
	case services.OutcomeQueued:
		if errors.Is(r.Err, client.ErrNotConfigured) {
			return "Saved to queue (sheet URL missing)."
		}
		return "No connection, saved to queue."
	case services.OutcomeRejected:
		return "Sheet rejected the entry, kept in queue: " + client.Reason(r.Err)
	case services.OutcomeCancelled:
		return "Cancelled."
	default:
		return r.Outcome.String()
	}
}

func syncMessage(r services.SyncResult) string {
	switch r.Outcome {
	case services.OutcomeNothingToSend:
		return "Nothing queued."
	case services.OutcomeConfirmed:
		if r.Remaining > 0 {
			return fmt.Sprintf("Sent %d of %d, %d still queued.", r.Acknowledged, r.Submitted, r.Remaining)
		}
		return fmt.Sprintf("Sent %d.", r.Acknowledged)
	case services.OutcomeQueued:
		if errors.Is(r.Err, client.ErrNotConfigured) {
			return "Sheet URL missing, set it with 'settings url <url>'."
		}
		return "Sending failed: " + client.Reason(r.Err)
	case services.OutcomeRejected:
		return "Sheet rejected the batch: " + client.Reason(r.Err)
	case services.OutcomeCancelled:
		return "Cancelled."
	default:
		return r.Outcome.String()
	}
}

func hintMessage(r derive.Result) string {
	switch r.Hint {
	case derive.HintNoPrevious:
		return "No previous fill-up for this vehicle, driven km not computed yet."
	case derive.HintOdometerBelowPrevious:
		return fmt.Sprintf("Odometer is below the previous reading (%s km), enter driven km manually.",
			num(r.Reference.OdometerKm, -1))
	case derive.HintAuto:
		return fmt.Sprintf("Auto distance: %s km (previous odometer %s km). You can correct it.",
			num(r.DrivenKmAuto, -1), num(r.Reference.OdometerKm, -1))
	case derive.HintManual:
		return "Corrected driven km (based on your value)."
	default:
		return ""
	}
}

func consumptionMessage(r derive.Result) string {
	return fmt.Sprintf("Calculated %s l/100 km • AdBlue %s l/1000 km",
		num(r.AvgCalculatedLper100, 1), num(r.AdblueLper1000Km, 2))
}

// formatEntry renders an entry as three lines for the list command.
func formatEntry(e models.Entry) string {
	var b strings.Builder

	badge := "SHEET"
	if !e.Acknowledged {
		badge = "QUEUED"
	}
	fmt.Fprintf(&b, "%s %s • %s [%s]\n", e.Date, e.Time, dash(e.Place), badge)

	driven := "-"
	if e.DrivenKmFinal != nil {
		driven = num(e.DrivenKmFinal, -1) + " km"
		if e.DrivenKmManualOverride {
			driven += fmt.Sprintf(" (corrected, auto %s)", num(e.DrivenKmAuto, -1))
		}
	}
	fmt.Fprintf(&b, "  %s • Odometer %s km • Driven %s\n", dash(e.Vehicle), num(e.OdometerKm, -1), driven)

	fmt.Fprintf(&b, "  Fuel %s • Calculated %s • Vehicle %s\n",
		unit(e.Liters, -1, "l"), unit(e.AvgCalculatedLper100, 1, "l/100"), unit(e.AvgVehicleDisplayedLper100, -1, "l/100"))

	adblue := "-"
	if e.AdblueLiters > 0 {
		adblue = num(&e.AdblueLiters, -1) + " l"
	}
	fmt.Fprintf(&b, "  AdBlue %s • Consumption %s", adblue, unit(e.AdblueLper1000Km, 2, "l/1000"))
	return b.String()
}

func unit(v *float64, decimals int, u string) string {
	if v == nil {
		return "-"
	}
	return num(v, decimals) + " " + u
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
