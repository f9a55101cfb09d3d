package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanDailyRadiation(t *testing.T) {
	base := time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC)

	t.Run("converts mean watts to daily megajoules", func(t *testing.T) {
		samples := []Sample{
			{Timestamp: base, Value: 100},
			{Timestamp: base.Add(time.Hour), Value: 300},
			{Timestamp: base.Add(2 * time.Hour), Value: 200},
		}
		// Mean 200 W/m² held for a day: 200 * 0.0864 = 17.28 MJ/m²/day.
		assert.InDelta(t, 17.28, MeanDailyRadiation(samples), 1e-9)
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Zero(t, MeanDailyRadiation(nil))
	})
}

func TestSunshineFromRadiation(t *testing.T) {
	coeffs := DefaultCoefficients()

	t.Run("moderate radiation lies strictly inside the day", func(t *testing.T) {
		n, err := coeffs.SunshineFromRadiation(20, 51, 170)
		require.NoError(t, err)

		_, daylight, _, err := coeffs.ExtraterrestrialRadiation(51, 170)
		require.NoError(t, err)

		assert.Greater(t, n, 0.0)
		assert.Less(t, n, daylight)
	})

	t.Run("round trips the forward relation", func(t *testing.T) {
		// Build Rs from a known sunshine duration, then invert it.
		r, err := coeffs.SolarRadiation(51, 0, 170, 10)
		require.NoError(t, err)

		n, err := coeffs.SunshineFromRadiation(r.Rs, 51, 170)
		require.NoError(t, err)
		assert.InDelta(t, 10, n, 1e-9)
	})

	t.Run("zero radiation clamps to zero", func(t *testing.T) {
		n, err := coeffs.SunshineFromRadiation(0, 51, 170)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("extreme radiation clamps to day length", func(t *testing.T) {
		n, err := coeffs.SunshineFromRadiation(100, 51, 170)
		require.NoError(t, err)

		_, daylight, _, err := coeffs.ExtraterrestrialRadiation(51, 170)
		require.NoError(t, err)
		assert.InDelta(t, daylight, n, 1e-9)
	})

	t.Run("polar latitude propagates the domain error", func(t *testing.T) {
		_, err := coeffs.SunshineFromRadiation(20, 80, 170)
		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
	})
}

func TestSunshineFromCloudLayers(t *testing.T) {
	coeffs := DefaultCoefficients()
	daylightAt := func(t *testing.T) float64 {
		t.Helper()
		_, daylight, _, err := coeffs.ExtraterrestrialRadiation(51, 170)
		require.NoError(t, err)
		return daylight
	}

	t.Run("clear sky gives the full day", func(t *testing.T) {
		n, err := coeffs.SunshineFromCloudLayers(51, 170, CloudCover{})
		require.NoError(t, err)
		assert.InDelta(t, daylightAt(t), n, 1e-9)
	})

	t.Run("full low overcast gives zero", func(t *testing.T) {
		n, err := coeffs.SunshineFromCloudLayers(51, 170, CloudCover{Low: 8})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("high clouds attenuate less than low clouds", func(t *testing.T) {
		lowOnly, err := coeffs.SunshineFromCloudLayers(51, 170, CloudCover{Low: 4})
		require.NoError(t, err)
		highOnly, err := coeffs.SunshineFromCloudLayers(51, 170, CloudCover{High: 4})
		require.NoError(t, err)

		assert.Greater(t, highOnly, lowOnly)
	})

	t.Run("moderate cover lies strictly inside the day", func(t *testing.T) {
		n, err := coeffs.SunshineFromCloudLayers(51, 170, CloudCover{Low: 2, Medium: 3, High: 4})
		require.NoError(t, err)

		assert.Greater(t, n, 0.0)
		assert.Less(t, n, daylightAt(t))
	})

	t.Run("out of range octas are clamped", func(t *testing.T) {
		n, err := coeffs.SunshineFromCloudLayers(51, 170, CloudCover{Low: -3, Medium: 12, High: 0})
		require.NoError(t, err)

		// Same as medium fully overcast.
		want, err := coeffs.SunshineFromCloudLayers(51, 170, CloudCover{Medium: 8})
		require.NoError(t, err)
		assert.InDelta(t, want, n, 1e-9)
	})
}

func TestSunshineFromTemperatureRange(t *testing.T) {
	coeffs := DefaultCoefficients()

	t.Run("wider range means more sunshine", func(t *testing.T) {
		narrow, err := coeffs.SunshineFromTemperatureRange(51, 170, 15, 18, false)
		require.NoError(t, err)
		wide, err := coeffs.SunshineFromTemperatureRange(51, 170, 10, 28, false)
		require.NoError(t, err)

		assert.Greater(t, wide, narrow)
	})

	t.Run("coastal coefficient estimates less than inland", func(t *testing.T) {
		inland, err := coeffs.SunshineFromTemperatureRange(51, 170, 12, 26, false)
		require.NoError(t, err)
		coastal, err := coeffs.SunshineFromTemperatureRange(51, 170, 12, 26, true)
		require.NoError(t, err)

		assert.Greater(t, inland, coastal)
	})

	t.Run("inverted range degenerates to zero", func(t *testing.T) {
		n, err := coeffs.SunshineFromTemperatureRange(51, 170, 20, 18, false)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("huge range clamps to the day length", func(t *testing.T) {
		n, err := coeffs.SunshineFromTemperatureRange(51, 170, -20, 30, false)
		require.NoError(t, err)

		_, daylight, _, err := coeffs.ExtraterrestrialRadiation(51, 170)
		require.NoError(t, err)
		assert.InDelta(t, daylight, n, 1e-9)
	})
}
