package domain

// Components holds the final evaporation value together with every
// intermediate of the calculation. The intermediates are kept for
// write-back metadata, auditing, and tests; nothing mutates them after
// construction.
type Components struct {
	Total       float64 `json:"evaporation_total"`     // mm/day
	Aerodynamic float64 `json:"aerodynamic_component"` // mm/day
	Radiation   float64 `json:"radiation_component"`   // mm/day

	U10MS float64 `json:"u10_ms"` // wind speed at 10 m (m/s)
	U2MS  float64 `json:"u2_ms"`  // wind speed at 2 m (m/s)

	VaporPressures

	TMean            float64 `json:"t_mean"` // °C
	Delta            float64 `json:"delta"`  // slope of vapor pressure curve (kPa/°C)
	Gamma            float64 `json:"gamma"`  // psychrometric constant (kPa/°C)
	LambdaDeltaGamma float64 `json:"lambda_delta_gamma"`

	SolarRadiationResult

	Rns float64 `json:"rns"` // net shortwave radiation (MJ/m²/day)
	Rnl float64 `json:"rnl"` // net longwave radiation (MJ/m²/day)
	Rn  float64 `json:"rn"`  // net radiation (MJ/m²/day)
}

// AerodynamicComponent returns the wind/VPD-driven evaporation term in
// mm/day. lambdaDeltaGamma is λ(Δ+γ) as computed in Evaporation.
func (c Coefficients) AerodynamicComponent(gamma, u2, vpd, lambdaDeltaGamma float64) float64 {
	return gamma * c.AerodynamicCoeff * (1 + c.WindFunctionB*u2) * vpd / lambdaDeltaGamma
}

// RadiationComponent returns the energy-driven evaporation term in mm/day.
func (c Coefficients) RadiationComponent(delta, rn, lambdaDeltaGamma float64) float64 {
	return delta * rn / lambdaDeltaGamma
}

// Evaporation computes daily lake evaporation with the Shuttleworth
// combination method. sunshineHours must already be resolved (measured or
// estimated); weather.SunshineHours is ignored here.
//
// The total is exactly the sum of the two components, with no rounding or
// clamping. Either component can be negative under extreme inputs (for
// example a negative net radiation); callers decide how to treat that. The
// only error condition is a polar day/night *DomainError from the solar
// geometry.
func (c Coefficients) Evaporation(weather WeatherAggregate, geometry Geometry, albedo float64, dayOfYear int, sunshineHours float64) (Components, error) {
	u10MS, u2MS := c.AdjustWindSpeed(weather.WindSpeed)

	vp := c.ComputeVaporPressures(weather.TMax, weather.TMin, weather.RHMax, weather.RHMin)

	tMean := (weather.TMax + weather.TMin) / 2
	delta := c.SlopeVaporPressureCurve(tMean)
	gamma := c.PsychrometricConstant(weather.AirPressure)
	lambdaDeltaGamma := c.LatentHeat * (delta + gamma)

	solar, err := c.SolarRadiation(geometry.Latitude, geometry.Altitude, dayOfYear, sunshineHours)
	if err != nil {
		return Components{}, err
	}

	rns, rnl, rn := c.NetRadiation(solar.Rs, solar.Rso, weather.TMax, weather.TMin, vp.Ea, albedo)

	aero := c.AerodynamicComponent(gamma, u2MS, vp.VPD, lambdaDeltaGamma)
	rad := c.RadiationComponent(delta, rn, lambdaDeltaGamma)

	return Components{
		Total:                aero + rad,
		Aerodynamic:          aero,
		Radiation:            rad,
		U10MS:                u10MS,
		U2MS:                 u2MS,
		VaporPressures:       vp,
		TMean:                tMean,
		Delta:                delta,
		Gamma:                gamma,
		LambdaDeltaGamma:     lambdaDeltaGamma,
		SolarRadiationResult: solar,
		Rns:                  rns,
		Rnl:                  rnl,
		Rn:                   rn,
	}, nil
}
