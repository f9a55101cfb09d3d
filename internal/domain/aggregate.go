package domain

import (
	"errors"
	"fmt"
)

// Aggregate reduces one day of raw sensor samples to the daily extremes and
// means the evaporation calculation needs. Samples without data simply leave
// their aggregate absent; missing required sensors are reported by Validate,
// not here. Sunshine hours are summed because the sensor reports per-interval
// durations.
func Aggregate(raw RawDay) WeatherAggregate {
	var agg WeatherAggregate

	if len(raw.Temperature) > 0 {
		agg.TMin, agg.TMax = minMax(raw.Temperature)
	}
	if len(raw.Humidity) > 0 {
		agg.RHMin, agg.RHMax = minMax(raw.Humidity)
	}
	if len(raw.WindSpeed) > 0 {
		agg.WindSpeed = mean(raw.WindSpeed)
	}
	if len(raw.AirPressure) > 0 {
		agg.AirPressure = mean(raw.AirPressure)
	}
	if len(raw.SunshineHours) > 0 {
		total := 0.0
		for _, s := range raw.SunshineHours {
			total += s.Value
		}
		agg.SunshineHours = &total
	}

	return agg
}

// CompletenessThreshold is the minimum fraction of expected samples a sensor
// must deliver for the day to be processed.
const CompletenessThreshold = 0.75

// CheckCompleteness verifies that each required sensor delivered at least
// the threshold fraction of the expected sample count.
func CheckCompleteness(raw RawDay, expectedSamples int) error {
	if expectedSamples <= 0 {
		return nil
	}

	required := map[string][]Sample{
		"temperature":  raw.Temperature,
		"humidity":     raw.Humidity,
		"wind_speed":   raw.WindSpeed,
		"air_pressure": raw.AirPressure,
	}

	var errs []error
	minimum := int(CompletenessThreshold * float64(expectedSamples))
	for name, samples := range required {
		if len(samples) < minimum {
			errs = append(errs, fmt.Errorf("%s: %d of %d expected samples", name, len(samples), expectedSamples))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("incomplete sensor data: %w", errors.Join(errs...))
	}
	return nil
}

func minMax(samples []Sample) (lo, hi float64) {
	lo, hi = samples[0].Value, samples[0].Value
	for _, s := range samples[1:] {
		if s.Value < lo {
			lo = s.Value
		}
		if s.Value > hi {
			hi = s.Value
		}
	}
	return lo, hi
}

func mean(samples []Sample) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s.Value
	}
	return sum / float64(len(samples))
}
