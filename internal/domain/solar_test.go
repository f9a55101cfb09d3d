package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolarDeclination(t *testing.T) {
	coeffs := DefaultCoefficients()

	assert.InDelta(t, 0.408758, coeffs.SolarDeclination(170), 1e-6)

	// Declination is positive near the June solstice, negative near the
	// December solstice.
	assert.Positive(t, coeffs.SolarDeclination(172))
	assert.Negative(t, coeffs.SolarDeclination(355))
}

func TestExtraterrestrialRadiation(t *testing.T) {
	coeffs := DefaultCoefficients()

	t.Run("reference latitude and day", func(t *testing.T) {
		ra, daylight, sunset, err := coeffs.ExtraterrestrialRadiation(51, 170)
		require.NoError(t, err)

		assert.InDelta(t, 41.738019, ra, 1e-6)
		assert.InDelta(t, 16.311642, daylight, 1e-6)
		assert.Positive(t, sunset)
		assert.Less(t, sunset, 3.141593)
	})

	t.Run("equator has near twelve hour days", func(t *testing.T) {
		for _, day := range []int{1, 80, 170, 266, 355} {
			_, daylight, _, err := coeffs.ExtraterrestrialRadiation(0, day)
			require.NoError(t, err)
			assert.InDelta(t, 12, daylight, 0.01, "day %d", day)
		}
	})

	t.Run("polar day fails", func(t *testing.T) {
		_, _, _, err := coeffs.ExtraterrestrialRadiation(80, 170)
		require.Error(t, err)

		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Greater(t, domainErr.Value, 1.0)
		assert.Contains(t, err.Error(), "polar")
	})

	t.Run("polar night fails", func(t *testing.T) {
		_, _, _, err := coeffs.ExtraterrestrialRadiation(-80, 170)
		require.Error(t, err)

		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Less(t, domainErr.Value, -1.0)
	})
}

func TestSolarRadiation(t *testing.T) {
	coeffs := DefaultCoefficients()

	t.Run("reference scenario", func(t *testing.T) {
		r, err := coeffs.SolarRadiation(51, 23, 170, 16)
		require.NoError(t, err)

		assert.InDelta(t, 30.904801, r.Rs, 1e-6)
		assert.InDelta(t, 31.322714, r.Rso, 1e-6)
		assert.InDelta(t, 16.0/16.311642409852674, r.SunshineRatio, 1e-6)
	})

	t.Run("zero sunshine yields baseline radiation", func(t *testing.T) {
		r, err := coeffs.SolarRadiation(51, 23, 170, 0)
		require.NoError(t, err)

		assert.Zero(t, r.SunshineRatio)
		// Ångström a-coefficient alone: diffuse radiation under full overcast.
		assert.InDelta(t, 0.25*r.Ra, r.Rs, 1e-9)
	})

	t.Run("altitude raises clear sky radiation", func(t *testing.T) {
		sea, err := coeffs.SolarRadiation(51, 0, 170, 10)
		require.NoError(t, err)
		mountain, err := coeffs.SolarRadiation(51, 2000, 170, 10)
		require.NoError(t, err)

		assert.Greater(t, mountain.Rso, sea.Rso)
	})
}
