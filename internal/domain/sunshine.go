package domain

import "math"

// wattsToMJ converts a mean power density in W/m² held for a full day into
// MJ/m²/day (86400 s/day ÷ 1e6 J/MJ).
const wattsToMJ = 0.0864

// MeanDailyRadiation reduces raw global-radiation samples (W/m²) to a daily
// radiation total in MJ/m²/day. Returns 0 for an empty slice.
func MeanDailyRadiation(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s.Value
	}
	return sum / float64(len(samples)) * wattsToMJ
}

// SunshineFromRadiation estimates sunshine hours from a measured daily
// global radiation total (MJ/m²/day) by inverting the Ångström-Prescott
// relation: n = N * (Rs/Ra - a) / b, clamped to [0, N]. A non-positive Ra
// degenerates to 0 hours.
func (c Coefficients) SunshineFromRadiation(globalRadiation, latitudeDeg float64, dayOfYear int) (float64, error) {
	ra, daylightHours, _, err := c.ExtraterrestrialRadiation(latitudeDeg, dayOfYear)
	if err != nil {
		return 0, err
	}
	if ra <= 0 {
		return 0, nil
	}

	n := daylightHours * (globalRadiation/ra - c.AngstromA) / c.AngstromB
	return clamp(n, 0, daylightHours), nil
}

// SunshineFromCloudLayers estimates sunshine hours from layered cloud cover
// in octas. Low and medium layers combine into an effective cover, high
// clouds contribute with a reduced weight, and the remaining clear fraction
// scales the maximum daylight hours.
func (c Coefficients) SunshineFromCloudLayers(latitudeDeg float64, dayOfYear int, cover CloudCover) (float64, error) {
	_, daylightHours, _, err := c.ExtraterrestrialRadiation(latitudeDeg, dayOfYear)
	if err != nil {
		return 0, err
	}

	low := clamp(cover.Low, 0, 8)
	medium := clamp(cover.Medium, 0, 8)
	high := clamp(cover.High, 0, 8)

	effectiveLowMedium := low + 0.875*(8-low)/8*medium
	effectiveTotal := effectiveLowMedium + 0.25*(8-effectiveLowMedium)/8*high

	fraction := clamp(1-effectiveTotal/8, 0, 1)
	return daylightHours * fraction, nil
}

// SunshineFromTemperatureRange estimates sunshine hours from the daily
// temperature range (Hargreaves): fraction = k * sqrt(Tmax - Tmin), with k
// depending on whether the location is coastal. Least accurate of the
// estimators; used as the last fallback before giving up.
func (c Coefficients) SunshineFromTemperatureRange(latitudeDeg float64, dayOfYear int, tMin, tMax float64, coastal bool) (float64, error) {
	_, daylightHours, _, err := c.ExtraterrestrialRadiation(latitudeDeg, dayOfYear)
	if err != nil {
		return 0, err
	}

	k := c.HargreavesInland
	if coastal {
		k = c.HargreavesCoastal
	}

	fraction := clamp(k*math.Sqrt(math.Max(0, tMax-tMin)), 0, 1)
	return daylightHours * fraction, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
