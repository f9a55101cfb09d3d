package domain

import (
	"errors"
	"fmt"
)

// Validate checks a converted daily aggregate against physical ranges before
// it reaches the numeric core. The pressure bound is a soft sanity check
// (roughly high-altitude to deep-depression sea level), not a hard physical
// constraint.
func Validate(agg WeatherAggregate) error {
	var errs []error

	if agg.TMin > agg.TMax {
		errs = append(errs, fmt.Errorf("t_min %.2f above t_max %.2f", agg.TMin, agg.TMax))
	}
	if agg.RHMin < 0 || agg.RHMin > 100 {
		errs = append(errs, fmt.Errorf("rh_min %.2f outside [0, 100]", agg.RHMin))
	}
	if agg.RHMax < 0 || agg.RHMax > 100 {
		errs = append(errs, fmt.Errorf("rh_max %.2f outside [0, 100]", agg.RHMax))
	}
	if agg.WindSpeed < 0 {
		errs = append(errs, fmt.Errorf("wind_speed %.2f negative", agg.WindSpeed))
	}
	if agg.AirPressure <= 50 || agg.AirPressure >= 120 {
		errs = append(errs, fmt.Errorf("air_pressure %.2f kPa outside plausible range (50, 120)", agg.AirPressure))
	}
	if agg.SunshineHours != nil && *agg.SunshineHours < 0 {
		errs = append(errs, fmt.Errorf("sunshine_hours %.2f negative", *agg.SunshineHours))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid daily aggregate: %w", errors.Join(errs...))
	}
	return nil
}
