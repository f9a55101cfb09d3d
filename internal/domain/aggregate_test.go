package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesOf(values ...float64) []Sample {
	base := time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC)
	out := make([]Sample, len(values))
	for i, v := range values {
		out[i] = Sample{Timestamp: base.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func TestAggregate(t *testing.T) {
	raw := RawDay{
		Temperature:   samplesOf(17, 21.5, 33, 28.2),
		Humidity:      samplesOf(60, 40, 25, 31),
		WindSpeed:     samplesOf(20, 30, 25),
		AirPressure:   samplesOf(99.8, 100.0),
		SunshineHours: samplesOf(0.5, 1.0, 0.75),
	}

	agg := Aggregate(raw)

	assert.Equal(t, 17.0, agg.TMin)
	assert.Equal(t, 33.0, agg.TMax)
	assert.Equal(t, 25.0, agg.RHMin)
	assert.Equal(t, 60.0, agg.RHMax)
	assert.InDelta(t, 25.0, agg.WindSpeed, 1e-9)
	assert.InDelta(t, 99.9, agg.AirPressure, 1e-9)

	require.NotNil(t, agg.SunshineHours)
	assert.InDelta(t, 2.25, *agg.SunshineHours, 1e-9)
}

func TestAggregate_NoSunshineSensor(t *testing.T) {
	agg := Aggregate(RawDay{Temperature: samplesOf(10, 20)})

	assert.Nil(t, agg.SunshineHours)
	assert.Equal(t, 10.0, agg.TMin)
	assert.Equal(t, 20.0, agg.TMax)
}

func TestCheckCompleteness(t *testing.T) {
	full := RawDay{
		Temperature: samplesOf(1, 2, 3, 4),
		Humidity:    samplesOf(1, 2, 3, 4),
		WindSpeed:   samplesOf(1, 2, 3, 4),
		AirPressure: samplesOf(1, 2, 3, 4),
	}

	t.Run("complete day passes", func(t *testing.T) {
		assert.NoError(t, CheckCompleteness(full, 4))
	})

	t.Run("sparse sensor fails", func(t *testing.T) {
		sparse := full
		sparse.Humidity = samplesOf(1)
		err := CheckCompleteness(sparse, 4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "humidity")
	})

	t.Run("missing sensor fails", func(t *testing.T) {
		missing := full
		missing.WindSpeed = nil
		err := CheckCompleteness(missing, 4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wind_speed")
	})

	t.Run("unknown expectation passes everything", func(t *testing.T) {
		assert.NoError(t, CheckCompleteness(RawDay{}, 0))
	})
}

func TestConvertUnits(t *testing.T) {
	t.Run("fahrenheit and mph and hpa", func(t *testing.T) {
		agg := ConvertUnits(WeatherAggregate{
			TMin:        50,   // °F
			TMax:        89.6, // °F
			WindSpeed:   10,   // mph
			AirPressure: 999,  // hPa
		}, SourceUnits{Temperature: "fahrenheit", WindSpeed: "mph", AirPressure: "hPa"})

		assert.InDelta(t, 10, agg.TMin, 1e-9)
		assert.InDelta(t, 32, agg.TMax, 1e-9)
		assert.InDelta(t, 16.09344, agg.WindSpeed, 1e-6)
		assert.InDelta(t, 99.9, agg.AirPressure, 1e-9)
	})

	t.Run("meters per second", func(t *testing.T) {
		agg := ConvertUnits(WeatherAggregate{WindSpeed: 5}, SourceUnits{WindSpeed: "m/s"})
		assert.InDelta(t, 18, agg.WindSpeed, 1e-9)
	})

	t.Run("canonical units untouched", func(t *testing.T) {
		in := WeatherAggregate{TMin: 17, TMax: 33, WindSpeed: 25, AirPressure: 99.9}
		assert.Equal(t, in, ConvertUnits(in, SourceUnits{}))
	})
}

func TestValidate(t *testing.T) {
	valid := WeatherAggregate{TMin: 17, TMax: 33, RHMin: 25, RHMax: 60, WindSpeed: 25, AirPressure: 99.9}

	t.Run("valid aggregate", func(t *testing.T) {
		assert.NoError(t, Validate(valid))
	})

	tests := []struct {
		name    string
		mutate  func(*WeatherAggregate)
		wantMsg string
	}{
		{"inverted temperatures", func(w *WeatherAggregate) { w.TMin, w.TMax = 33, 17 }, "t_min"},
		{"humidity above 100", func(w *WeatherAggregate) { w.RHMax = 105 }, "rh_max"},
		{"negative humidity", func(w *WeatherAggregate) { w.RHMin = -1 }, "rh_min"},
		{"negative wind", func(w *WeatherAggregate) { w.WindSpeed = -4 }, "wind_speed"},
		{"implausible pressure", func(w *WeatherAggregate) { w.AirPressure = 200 }, "air_pressure"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := valid
			tc.mutate(&w)
			err := Validate(w)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}

	t.Run("negative sunshine", func(t *testing.T) {
		w := valid
		negative := -2.0
		w.SunshineHours = &negative
		require.Error(t, Validate(w))
	})
}
