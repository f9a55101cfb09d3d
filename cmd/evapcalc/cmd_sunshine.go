package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

var sunshineFlags struct {
	latitude  float64
	dayOfYear int
	angstromA float64
	angstromB float64

	radiation float64

	cloudLow    float64
	cloudMedium float64
	cloudHigh   float64

	tMin    float64
	tMax    float64
	coastal bool
}

var sunshineCmd = &cobra.Command{
	Use:   "sunshine",
	Short: "Estimate sunshine duration",
	Long: `Estimate daily sunshine duration when no sunshine sensor exists,
using one of the fallback estimators of the evaporation pipeline.`,
}

var sunshineRadiationCmd = &cobra.Command{
	Use:   "radiation",
	Short: "Estimate from measured global radiation",
	Long:  `Invert the Ångström-Prescott relation on a measured daily global radiation total.`,
	RunE:  runSunshineRadiation,
}

var sunshineCloudsCmd = &cobra.Command{
	Use:   "clouds",
	Short: "Estimate from layered cloud cover",
	Long:  `Estimate sunshine duration from low, medium, and high cloud cover in octas.`,
	RunE:  runSunshineClouds,
}

var sunshineTemperatureCmd = &cobra.Command{
	Use:   "temperature",
	Short: "Estimate from the daily temperature range",
	Long:  `Estimate sunshine duration from the daily temperature range (Hargreaves).`,
	RunE:  runSunshineTemperature,
}

func init() {
	rootCmd.AddCommand(sunshineCmd)
	sunshineCmd.AddCommand(sunshineRadiationCmd)
	sunshineCmd.AddCommand(sunshineCloudsCmd)
	sunshineCmd.AddCommand(sunshineTemperatureCmd)

	pf := sunshineCmd.PersistentFlags()
	pf.Float64Var(&sunshineFlags.latitude, "lat", 0, "latitude (degrees)")
	pf.IntVar(&sunshineFlags.dayOfYear, "day", 0, "day of year (1-366)")
	pf.Float64Var(&sunshineFlags.angstromA, "angstrom-a", 0.25, "Ångström-Prescott coefficient a")
	pf.Float64Var(&sunshineFlags.angstromB, "angstrom-b", 0.50, "Ångström-Prescott coefficient b")
	_ = sunshineCmd.MarkPersistentFlagRequired("lat")
	_ = sunshineCmd.MarkPersistentFlagRequired("day")

	sunshineRadiationCmd.Flags().Float64Var(&sunshineFlags.radiation, "rs", 0, "daily global radiation (MJ/m²/day)")
	_ = sunshineRadiationCmd.MarkFlagRequired("rs")

	cf := sunshineCloudsCmd.Flags()
	cf.Float64Var(&sunshineFlags.cloudLow, "low", 0, "low cloud cover (octas)")
	cf.Float64Var(&sunshineFlags.cloudMedium, "medium", 0, "medium cloud cover (octas)")
	cf.Float64Var(&sunshineFlags.cloudHigh, "high", 0, "high cloud cover (octas)")

	tf := sunshineTemperatureCmd.Flags()
	tf.Float64Var(&sunshineFlags.tMin, "t-min", 0, "daily minimum temperature (°C)")
	tf.Float64Var(&sunshineFlags.tMax, "t-max", 0, "daily maximum temperature (°C)")
	tf.BoolVar(&sunshineFlags.coastal, "coastal", false, "location is within ~50 km of a coast")
	_ = sunshineTemperatureCmd.MarkFlagRequired("t-min")
	_ = sunshineTemperatureCmd.MarkFlagRequired("t-max")
}

func sunshineCoefficients() domain.Coefficients {
	coeffs := domain.DefaultCoefficients()
	coeffs.AngstromA = sunshineFlags.angstromA
	coeffs.AngstromB = sunshineFlags.angstromB
	return coeffs
}

func runSunshineRadiation(cmd *cobra.Command, args []string) error {
	hours, err := sunshineCoefficients().SunshineFromRadiation(
		sunshineFlags.radiation, sunshineFlags.latitude, sunshineFlags.dayOfYear)
	if err != nil {
		return err
	}
	return printSunshine(cmd, hours)
}

func runSunshineClouds(cmd *cobra.Command, args []string) error {
	hours, err := sunshineCoefficients().SunshineFromCloudLayers(
		sunshineFlags.latitude, sunshineFlags.dayOfYear, domain.CloudCover{
			Low:    sunshineFlags.cloudLow,
			Medium: sunshineFlags.cloudMedium,
			High:   sunshineFlags.cloudHigh,
		})
	if err != nil {
		return err
	}
	return printSunshine(cmd, hours)
}

func runSunshineTemperature(cmd *cobra.Command, args []string) error {
	hours, err := sunshineCoefficients().SunshineFromTemperatureRange(
		sunshineFlags.latitude, sunshineFlags.dayOfYear,
		sunshineFlags.tMin, sunshineFlags.tMax, sunshineFlags.coastal)
	if err != nil {
		return err
	}
	return printSunshine(cmd, hours)
}

func printSunshine(cmd *cobra.Command, hours float64) error {
	_, daylight, _, err := sunshineCoefficients().ExtraterrestrialRadiation(
		sunshineFlags.latitude, sunshineFlags.dayOfYear)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sunshine duration  %6.2f h (of %.2f h possible)\n", hours, daylight)
	return nil
}
