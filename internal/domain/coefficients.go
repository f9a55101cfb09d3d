package domain

// DefaultAlbedo is the reflectance used for open water when a location does
// not override it. Typical range for water is 0.05–0.30.
const DefaultAlbedo = 0.23

// Coefficients bundles the physical constants and empirical coefficients of
// the Shuttleworth method. All formulas are methods on this struct so that
// regional calibrations (notably the Ångström-Prescott a/b pair) can be
// injected per call instead of living in package-level state.
type Coefficients struct {
	// Tetens saturation vapor pressure: es = A * exp(B*T / (T + C)).
	TetensA float64 // kPa
	TetensB float64
	TetensC float64 // °C

	LatentHeat      float64 // λ, latent heat of vaporization (MJ/kg)
	SolarConstant   float64 // Gsc (MJ/m²/min)
	StefanBoltzmann float64 // σ (MJ/K⁴/m²/day)

	// Wind profile and aerodynamic term.
	WindHeightFactor float64 // 10 m → 2 m log-profile factor
	AerodynamicCoeff float64 // 6.43 in Shuttleworth's wind function
	WindFunctionB    float64 // 0.536, wind-speed slope of the wind function

	PsychrometricCoeff float64 // γ = coeff * pressure (kPa/°C per kPa)

	// Ångström-Prescott: Rs = (a + b*n/N) * Ra.
	AngstromA float64
	AngstromB float64

	// Clear-sky radiation: Rso = (coeff + altitudeFactor*z) * Ra.
	ClearSkyCoeff  float64
	AltitudeFactor float64 // per meter of elevation

	// Net longwave: σ * T⁴ * (ea1 - ea2*sqrt(ea)) * (cf1*Rs/Rso - cf2).
	NetLWEmissivityA float64
	NetLWEmissivityB float64
	NetLWCloudA      float64
	NetLWCloudB      float64

	// Solar geometry.
	OrbitEccentricity    float64 // inverse Earth–Sun distance amplitude
	DeclinationAmplitude float64 // radians
	DeclinationPhase     float64 // radians

	// Hargreaves sunshine-fraction coefficients (k * sqrt(Tmax-Tmin)).
	HargreavesInland  float64
	HargreavesCoastal float64
}

// DefaultCoefficients returns the standard Shuttleworth/FAO-56 coefficient
// set.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		TetensA:              0.6108,
		TetensB:              17.27,
		TetensC:              237.3,
		LatentHeat:           2.45,
		SolarConstant:        0.0820,
		StefanBoltzmann:      4.903e-9,
		WindHeightFactor:     0.748,
		AerodynamicCoeff:     6.43,
		WindFunctionB:        0.536,
		PsychrometricCoeff:   0.665e-3,
		AngstromA:            0.25,
		AngstromB:            0.50,
		ClearSkyCoeff:        0.75,
		AltitudeFactor:       2e-5,
		NetLWEmissivityA:     0.34,
		NetLWEmissivityB:     0.14,
		NetLWCloudA:          1.35,
		NetLWCloudB:          0.35,
		OrbitEccentricity:    0.033,
		DeclinationAmplitude: 0.409,
		DeclinationPhase:     1.39,
		HargreavesInland:     0.19,
		HargreavesCoastal:    0.16,
	}
}
