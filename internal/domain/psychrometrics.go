package domain

import "math"

// SaturationVaporPressure returns the saturation vapor pressure in kPa at
// the given temperature (°C) using the Tetens formula. Valid for any real
// temperature; absurd inputs yield physically meaningless values rather
// than an error.
func (c Coefficients) SaturationVaporPressure(tempC float64) float64 {
	return c.TetensA * math.Exp(c.TetensB*tempC/(tempC+c.TetensC))
}

// VaporPressures holds the vapor pressure terms derived from daily
// temperature and humidity extremes.
type VaporPressures struct {
	EsTMax float64 `json:"es_tmax"` // saturation vapor pressure at Tmax (kPa)
	EsTMin float64 `json:"es_tmin"` // saturation vapor pressure at Tmin (kPa)
	EsMean float64 `json:"es"`      // mean saturation vapor pressure (kPa)
	Ea     float64 `json:"ea"`      // actual vapor pressure (kPa)
	VPD    float64 `json:"vpd"`     // vapor pressure deficit es - ea (kPa)
}

// ComputeVaporPressures derives all vapor pressure terms from the daily
// temperature and relative-humidity extremes. The caller is responsible for
// passing max/min in the right order.
func (c Coefficients) ComputeVaporPressures(tMax, tMin, rhMax, rhMin float64) VaporPressures {
	esTMax := c.SaturationVaporPressure(tMax)
	esTMin := c.SaturationVaporPressure(tMin)

	esMean := (esTMax + esTMin) / 2
	ea := (esTMax*rhMax/100 + esTMin*rhMin/100) / 2

	return VaporPressures{
		EsTMax: esTMax,
		EsTMin: esTMin,
		EsMean: esMean,
		Ea:     ea,
		VPD:    esMean - ea,
	}
}

// SlopeVaporPressureCurve returns the slope Δ of the saturation vapor
// pressure curve at the given mean temperature, in kPa/°C.
func (c Coefficients) SlopeVaporPressureCurve(tMeanC float64) float64 {
	return 4096 * c.SaturationVaporPressure(tMeanC) / math.Pow(tMeanC+c.TetensC, 2)
}

// PsychrometricConstant returns γ in kPa/°C for the given air pressure in
// kPa. Linear in pressure.
func (c Coefficients) PsychrometricConstant(pressureKPa float64) float64 {
	return c.PsychrometricCoeff * pressureKPa
}

// AdjustWindSpeed converts a 10 m wind speed from km/h to m/s and estimates
// the 2 m wind speed with a fixed log-profile factor.
func (c Coefficients) AdjustWindSpeed(u10KMH float64) (u10MS, u2MS float64) {
	u10MS = u10KMH / 3.6
	u2MS = c.WindHeightFactor * u10MS
	return u10MS, u2MS
}
