// Package domain implements the Shuttleworth combination method for daily
// lake evaporation, together with the value records exchanged with the
// KISTERS-style time-series portal.
//
// # Method
//
// The Shuttleworth equation estimates open-water evaporation as the sum of
// two terms computed from daily weather aggregates:
//
//	E = Ea + Er
//
//	Ea (aerodynamic): driven by wind speed and the vapor pressure deficit.
//	Er (radiation):   driven by the net radiation available at the surface.
//
// Supporting sub-calculations follow FAO-56 conventions: Tetens saturation
// vapor pressure, the psychrometric constant, solar declination and
// extraterrestrial radiation from day-of-year and latitude, and the
// Ångström-Prescott relation between sunshine duration and solar radiation.
//
// Reference: Shuttleworth, W.J. (1993). Evaporation. In: Maidment, D.R. (ed.)
// Handbook of Hydrology, McGraw-Hill, New York.
//
// # Units
//
// Temperatures are °C, humidity is percent, wind speed input is km/h at 10 m
// height, air pressure is kPa, radiation values are MJ/m²/day, sunshine and
// daylight are hours, and evaporation is mm/day. Cloud cover uses octas
// (eighths of sky covered, 0 = clear, 8 = overcast).
//
// # Input trust
//
// The numeric functions trust their inputs: values outside physical ranges
// (RH above 100 %, t_min above t_max) produce physically meaningless but
// well-defined output. Range validation belongs to [Validate], which the
// pipeline runs before calculating. The two exceptions are guarded
// explicitly: division by a zero clear-sky radiation or day length falls
// back to a zero ratio, and a polar day/night latitude–declination
// combination returns a [DomainError] instead of a NaN from math.Acos.
//
// # Portal metadata
//
// Target series are discovered through a "lakeEvaporation" metadata object
// on the portal time series. Its fields reference the input sensor series
// using tsId(...), tsPath(...) or exchangeId(...) notation:
//
//	{
//	  "lakeEvaporation": {
//	    "Temps":             "tsId(123)",
//	    "RHTs":              "tsPath(/site/rh)",
//	    "WSpeedTs":          "exchangeId(ws-1)",
//	    "AirPressureTs":     "tsId(456)",
//	    "hoursOfSunshineTs": "tsId(789)",   // optional
//	    "globalRadiationTs": "tsId(1011)"   // optional
//	  }
//	}
package domain
