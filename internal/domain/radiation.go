package domain

import "math"

// kelvinOffset converts °C to K for the Stefan-Boltzmann term (FAO-56 uses
// 273.16 rather than 273.15 here).
const kelvinOffset = 273.16

// NetRadiation computes net shortwave, net longwave, and net radiation in
// MJ/m²/day.
//
// The Rs/Rso cloud factor falls back to 0 when Rso is not positive. The
// longwave cloud term 1.35*(Rs/Rso) - 0.35 is not clamped: sensor noise can
// push Rs slightly above Rso, and the extra longwave loss is propagated
// unchanged.
func (c Coefficients) NetRadiation(rs, rso, tMax, tMin, ea, albedo float64) (rns, rnl, rn float64) {
	rns = (1 - albedo) * rs

	cloudRatio := 0.0
	if rso > 0 {
		cloudRatio = rs / rso
	}

	tMaxK4 := math.Pow(tMax+kelvinOffset, 4)
	tMinK4 := math.Pow(tMin+kelvinOffset, 4)

	rnl = c.StefanBoltzmann * (tMaxK4 + tMinK4) / 2 *
		(c.NetLWEmissivityA - c.NetLWEmissivityB*math.Sqrt(ea)) *
		(c.NetLWCloudA*cloudRatio - c.NetLWCloudB)

	return rns, rnl, rns - rnl
}
