package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/fuellog/internal/client/derive"
	"github.com/dmitrijs2005/fuellog/internal/client/models"
)

// Add collects a fill-up from the user, shows the derived distance and
// consumption, and saves it.
func (a *App) Add(ctx context.Context) error {
	d, err := a.inputDraft(ctx)
	if err != nil {
		a.println("error:", err)
		return err
	}

	res, err := a.entryService.Save(ctx, d, a.confirm)
	if err != nil {
		var verr *derive.ValidationError
		if errors.As(err, &verr) {
			a.println("Missing required field:", verr.Field)
		} else {
			a.logger.Error(ctx, "save failed", "error", err)
			a.println("error:", err)
		}
		return err
	}

	a.println(saveMessage(res))
	return nil
}

func (a *App) inputDraft(ctx context.Context) (models.Draft, error) {
	var (
		d   models.Draft
		err error
	)
	date, clock := derive.LocalDateTime(a.now())

	if d.Date, err = GetTextDefault(a.reader, "Date", date, a.out); err != nil {
		return d, err
	}
	if d.Time, err = GetTextDefault(a.reader, "Time", clock, a.out); err != nil {
		return d, err
	}
	if d.Vehicle, err = a.chooseVehicle(ctx); err != nil {
		return d, err
	}
	if d.Place, err = GetSimpleText(a.reader, "Place", a.out); err != nil {
		return d, err
	}
	if d.OdometerKm, err = GetNumber(a.reader, "Odometer (km)", a.out); err != nil {
		return d, err
	}
	if d.Liters, err = GetNumber(a.reader, "Liters", a.out); err != nil {
		return d, err
	}
	if d.AvgVehicleDisplayedLper100, err = GetNumber(a.reader, "Vehicle's own average l/100 km (optional)", a.out); err != nil {
		return d, err
	}
	if d.AdblueLiters, err = GetNumber(a.reader, "AdBlue liters (optional)", a.out); err != nil {
		return d, err
	}

	preview, err := a.entryService.Preview(ctx, d)
	if err != nil {
		return d, err
	}
	if msg := hintMessage(preview); msg != "" {
		a.println(msg)
	}

	prompt := "Driven km"
	if preview.DrivenKmAuto != nil {
		prompt = fmt.Sprintf("Driven km [%s]", num(preview.DrivenKmAuto, -1))
	}
	override, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return d, err
	}
	if override != "" {
		d.ManualOverride = true
		d.DrivenKmOverride = models.ParseNumber(override)
		if preview, err = a.entryService.Preview(ctx, d); err != nil {
			return d, err
		}
		a.println(hintMessage(preview))
	}

	a.println(consumptionMessage(preview))
	return d, nil
}

// chooseVehicle lists the known vehicles and accepts a number from the list
// or a free-form label. Empty input picks the first one.
func (a *App) chooseVehicle(ctx context.Context) (string, error) {
	vehicles := a.settingsService.Vehicles(ctx)
	for i, v := range vehicles {
		a.printf("  %d) %s\n", i+1, v)
	}

	def := ""
	if len(vehicles) > 0 {
		def = "1"
	}
	s, err := GetTextDefault(a.reader, "Vehicle", def, a.out)
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(vehicles) {
		return vehicles[n-1], nil
	}
	return s, nil
}
