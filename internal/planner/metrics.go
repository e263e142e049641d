package planner

import (
	"agro-mission-service/internal/domain"
)

// Planner-level tuning independent of the aircraft profile.
type Options struct {
	// Speeds used for time estimates; the profile carries none.
	TransitSpeedMS float64
	SpraySpeedMS   float64
	// Minimum clearance transits keep from no-fly zones.
	NFZSafetyBufferM float64
}

// DefaultOptions match the mission estimator defaults of the field trials
// (72 km/h transit, 54 km/h spraying, 10 m NFZ clearance).
func DefaultOptions() Options {
	return Options{
		TransitSpeedMS:   20.0,
		SpraySpeedMS:     15.0,
		NFZSafetyBufferM: 10.0,
	}
}

// Aggregate finalizes per-trip length/fuel figures and computes the
// mission-wide metrics. Requires transits already attached. Pure function of
// its inputs.
func Aggregate(ws *Workspace, path domain.CoveragePath, trips []domain.Trip, profile domain.AircraftProfile, opts Options, log *BuildLog) domain.Metrics {
	var lengthTransit, lengthSpray, fuel, fert float64

	for ti := range trips {
		sprayLen := 0.0
		for i := trips[ti].StartIdx; i <= trips[ti].EndIdx; i++ {
			sprayLen += path.Swaths[i].LengthM
		}
		transitLen := trips[ti].TransitLengthM()

		trips[ti].LengthM = transitLen + sprayLen
		trips[ti].FuelUsedL = trips[ti].LengthM / 1000 * profile.FuelBurnLPerKm

		lengthTransit += transitLen
		lengthSpray += sprayLen
		fuel += trips[ti].FuelUsedL
		fert += trips[ti].MixUsedL

		if profile.FuelReserveL > 0 && trips[ti].FuelUsedL > profile.FuelReserveL {
			log.Appendf("trip %d fuel use %.2fL exceeds reserve margin %.2fL",
				ti, trips[ti].FuelUsedL, profile.FuelReserveL)
		}
	}

	sprayedHa := 0.0
	for _, t := range trips {
		for i := t.StartIdx; i <= t.EndIdx; i++ {
			sprayedHa += path.Swaths[i].LengthM * profile.SprayWidthM / 10_000
		}
	}

	timeTransitMin := lengthTransit / clampSpeed(opts.TransitSpeedMS) / 60
	timeSprayMin := lengthSpray / clampSpeed(opts.SpraySpeedMS) / 60

	m := domain.Metrics{
		LengthTotalM:   lengthTransit + lengthSpray,
		LengthTransitM: lengthTransit,
		LengthSprayM:   lengthSpray,
		TimeTotalMin:   timeTransitMin + timeSprayMin,
		TimeTransitMin: timeTransitMin,
		TimeSprayMin:   timeSprayMin,
		FuelL:          fuel,
		FertL:          fert,
		FieldAreaHa:    ws.Field.Area() / 10_000,
		SprayedAreaHa:  sprayedHa,
	}

	log.Appendf("metrics: total=%.0fm transit=%.0fm spray=%.0fm fuel=%.2fL fert=%.2fL sprayed=%.3fha",
		m.LengthTotalM, m.LengthTransitM, m.LengthSprayM, m.FuelL, m.FertL, m.SprayedAreaHa)
	return m
}

func clampSpeed(ms float64) float64 {
	if ms < 0.1 {
		return 0.1
	}
	return ms
}
