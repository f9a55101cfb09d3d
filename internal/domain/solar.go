package domain

import (
	"fmt"
	"math"
)

// DomainError reports an input combination outside the mathematical domain
// of a solar-geometry formula. It currently occurs only for polar day/night,
// where the sunset hour angle acos argument leaves [-1, 1]. The underlying
// math.Acos would silently return NaN, so the condition is detected and
// surfaced instead.
type DomainError struct {
	Op    string  // failing operation, e.g. "sunset hour angle"
	Value float64 // offending acos argument
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: acos argument %.6f outside [-1, 1] (polar day or night)", e.Op, e.Value)
}

// SolarDeclination returns the solar declination in radians for a day of
// the year (1-366).
func (c Coefficients) SolarDeclination(dayOfYear int) float64 {
	return c.DeclinationAmplitude * math.Sin(2*math.Pi/365*float64(dayOfYear)-c.DeclinationPhase)
}

// ExtraterrestrialRadiation computes the top-of-atmosphere solar radiation
// Ra (MJ/m²/day), the maximum daylight hours N, and the sunset hour angle
// ωs (radians) for a latitude and day of year, per FAO-56.
//
// At latitudes where the sun never rises or never sets on the given day,
// |tan(lat)*tan(decl)| exceeds 1 and a *DomainError is returned.
func (c Coefficients) ExtraterrestrialRadiation(latitudeDeg float64, dayOfYear int) (ra, daylightHours, sunsetAngle float64, err error) {
	phi := latitudeDeg * math.Pi / 180
	decl := c.SolarDeclination(dayOfYear)

	// Inverse relative distance Earth-Sun.
	dr := 1 + c.OrbitEccentricity*math.Cos(2*math.Pi*float64(dayOfYear)/365)

	cosArg := -math.Tan(phi) * math.Tan(decl)
	if cosArg < -1 || cosArg > 1 {
		return 0, 0, 0, &DomainError{Op: "sunset hour angle", Value: cosArg}
	}
	omegaS := math.Acos(cosArg)

	ra = (24 * 60 / math.Pi) * c.SolarConstant * dr *
		(omegaS*math.Sin(phi)*math.Sin(decl) + math.Cos(phi)*math.Cos(decl)*math.Sin(omegaS))

	daylightHours = 24 / math.Pi * omegaS

	return ra, daylightHours, omegaS, nil
}

// SolarRadiationResult holds the radiation terms derived from sunshine
// duration and solar geometry.
type SolarRadiationResult struct {
	Ra            float64 `json:"ra"`             // extraterrestrial radiation (MJ/m²/day)
	DaylightHours float64 `json:"n_max"`          // maximum possible sunshine hours N
	SunshineRatio float64 `json:"sunshine_ratio"` // n/N, 0 when N <= 0
	Rs            float64 `json:"rs"`             // observed solar radiation, Ångström-Prescott (MJ/m²/day)
	Rso           float64 `json:"rso"`            // clear-sky solar radiation (MJ/m²/day)
}

// SolarRadiation derives observed and clear-sky solar radiation from
// sunshine hours via the Ångström-Prescott relation.
func (c Coefficients) SolarRadiation(latitudeDeg, altitudeM float64, dayOfYear int, sunshineHours float64) (SolarRadiationResult, error) {
	ra, daylightHours, _, err := c.ExtraterrestrialRadiation(latitudeDeg, dayOfYear)
	if err != nil {
		return SolarRadiationResult{}, err
	}

	ratio := 0.0
	if daylightHours > 0 {
		ratio = sunshineHours / daylightHours
	}

	return SolarRadiationResult{
		Ra:            ra,
		DaylightHours: daylightHours,
		SunshineRatio: ratio,
		Rs:            (c.AngstromA + c.AngstromB*ratio) * ra,
		Rso:           (c.ClearSkyCoeff + c.AltitudeFactor*altitudeM) * ra,
	}, nil
}
