package domain

import "strings"

// SourceUnits names the units the portal delivers each sensor in. Empty
// fields mean the canonical unit (°C, km/h, kPa) and need no conversion.
type SourceUnits struct {
	Temperature string `json:"temperature,omitempty"`
	WindSpeed   string `json:"wind_speed,omitempty"`
	AirPressure string `json:"air_pressure,omitempty"`
}

// ConvertUnits normalizes an aggregate to the canonical units of the
// calculation: temperatures to °C, wind speed to km/h, pressure to kPa.
// Unrecognized unit names are treated as already canonical.
func ConvertUnits(agg WeatherAggregate, units SourceUnits) WeatherAggregate {
	agg.TMin = toCelsius(agg.TMin, units.Temperature)
	agg.TMax = toCelsius(agg.TMax, units.Temperature)
	agg.WindSpeed = toKMH(agg.WindSpeed, units.WindSpeed)
	agg.AirPressure = toKPa(agg.AirPressure, units.AirPressure)
	return agg
}

func toCelsius(v float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "fahrenheit", "f":
		return (v - 32) * 5 / 9
	case "kelvin", "k":
		return v - 273.15
	default:
		return v
	}
}

func toKMH(v float64, unit string) float64 {
	// Via m/s as the intermediate, matching the converter the sensors are
	// calibrated against.
	var ms float64
	switch strings.ToLower(unit) {
	case "", "km/h", "kmh", "kph":
		return v
	case "mph", "mi/h":
		ms = v * 0.44704
	case "knots", "kt":
		ms = v * 0.514444
	default:
		ms = v // assume m/s
	}
	return ms * 3.6
}

func toKPa(v float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "hpa", "hecto", "hectopascal", "mbar", "millibar":
		return v / 10
	case "pa", "pascal":
		return v / 1000
	case "atm", "atmosphere":
		return v * 101.325
	case "mmhg", "torr":
		return v * 0.133322
	default:
		return v
	}
}
