package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

var calcFlags struct {
	tMin        float64
	tMax        float64
	rhMin       float64
	rhMax       float64
	windSpeed   float64
	airPressure float64
	latitude    float64
	altitude    float64
	albedo      float64
	dayOfYear   int
	sunshine    float64
	angstromA   float64
	angstromB   float64
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute daily lake evaporation",
	Long: `Compute daily lake evaporation for a single day from aggregated
weather values and print every intermediate of the calculation.`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	f := calcCmd.Flags()
	f.Float64Var(&calcFlags.tMin, "t-min", 0, "daily minimum temperature (°C)")
	f.Float64Var(&calcFlags.tMax, "t-max", 0, "daily maximum temperature (°C)")
	f.Float64Var(&calcFlags.rhMin, "rh-min", 0, "daily minimum relative humidity (%)")
	f.Float64Var(&calcFlags.rhMax, "rh-max", 0, "daily maximum relative humidity (%)")
	f.Float64Var(&calcFlags.windSpeed, "wind", 0, "daily mean wind speed at 10 m (km/h)")
	f.Float64Var(&calcFlags.airPressure, "pressure", 101.3, "daily mean air pressure (kPa)")
	f.Float64Var(&calcFlags.latitude, "lat", 0, "latitude (degrees)")
	f.Float64Var(&calcFlags.altitude, "altitude", 0, "altitude above sea level (m)")
	f.Float64Var(&calcFlags.albedo, "albedo", domain.DefaultAlbedo, "surface albedo")
	f.IntVar(&calcFlags.dayOfYear, "day", 0, "day of year (1-366)")
	f.Float64Var(&calcFlags.sunshine, "sunshine", 0, "sunshine duration (hours)")
	f.Float64Var(&calcFlags.angstromA, "angstrom-a", 0.25, "Ångström-Prescott coefficient a")
	f.Float64Var(&calcFlags.angstromB, "angstrom-b", 0.50, "Ångström-Prescott coefficient b")

	for _, name := range []string{"t-min", "t-max", "rh-min", "rh-max", "wind", "lat", "day"} {
		_ = calcCmd.MarkFlagRequired(name)
	}
}

func runCalc(cmd *cobra.Command, args []string) error {
	weather := domain.WeatherAggregate{
		TMin:        calcFlags.tMin,
		TMax:        calcFlags.tMax,
		RHMin:       calcFlags.rhMin,
		RHMax:       calcFlags.rhMax,
		WindSpeed:   calcFlags.windSpeed,
		AirPressure: calcFlags.airPressure,
	}
	if err := domain.Validate(weather); err != nil {
		return err
	}

	geometry := domain.Geometry{
		Latitude: calcFlags.latitude,
		Altitude: calcFlags.altitude,
	}

	coeffs := domain.DefaultCoefficients()
	coeffs.AngstromA = calcFlags.angstromA
	coeffs.AngstromB = calcFlags.angstromB

	c, err := coeffs.Evaporation(weather, geometry, calcFlags.albedo, calcFlags.dayOfYear, calcFlags.sunshine)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Evaporation total      %8.3f mm/day\n", c.Total)
	fmt.Fprintf(out, "  aerodynamic term     %8.3f mm/day\n", c.Aerodynamic)
	fmt.Fprintf(out, "  radiation term       %8.3f mm/day\n", c.Radiation)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Wind u10 / u2          %8.3f / %.3f m/s\n", c.U10MS, c.U2MS)
	fmt.Fprintf(out, "T mean                 %8.3f °C\n", c.TMean)
	fmt.Fprintf(out, "es(Tmax) / es(Tmin)    %8.3f / %.3f kPa\n", c.EsTMax, c.EsTMin)
	fmt.Fprintf(out, "es / ea / VPD          %8.3f / %.3f / %.3f kPa\n", c.EsMean, c.Ea, c.VPD)
	fmt.Fprintf(out, "delta / gamma          %8.4f / %.4f kPa/°C\n", c.Delta, c.Gamma)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Ra                     %8.3f MJ/m²/day\n", c.Ra)
	fmt.Fprintf(out, "Daylight hours N       %8.3f h (n/N = %.3f)\n", c.DaylightHours, c.SunshineRatio)
	fmt.Fprintf(out, "Rs / Rso               %8.3f / %.3f MJ/m²/day\n", c.Rs, c.Rso)
	fmt.Fprintf(out, "Rns / Rnl / Rn         %8.3f / %.3f / %.3f MJ/m²/day\n", c.Rns, c.Rnl, c.Rn)
	return nil
}
