package sgp4

import "math"

// Orbit holds Brouwer mean orbital elements at one instant. Angles are in
// rad, the mean motion in rad/min.
type Orbit struct {
	Inclination       float64
	RightAscension    float64
	Eccentricity      float64
	ArgumentOfPerigee float64
	MeanAnomaly       float64
	MeanMotion        float64
}

// Prediction is the result of a propagation: position in km and velocity in
// km/s, both in the True Equator Mean Equinox (TEME) frame of epoch.
type Prediction struct {
	Position [3]float64
	Velocity [3]float64
}

// Constants holds every quantity that can be computed once from the epoch
// elements: the orbital regime, the secular rates, the drag coefficients and,
// for deep-space satellites, the third-body and resonance coefficients.
// A Constants value is immutable after construction and can be shared freely
// between goroutines propagating to different times.
type Constants struct {
	geopotential *Geopotential
	mode         Mode

	rightAscensionDot    float64
	argumentOfPerigeeDot float64
	meanAnomalyDot       float64

	c1     float64
	c4     float64
	xnodcf float64 // secular right ascension t² coefficient
	t2cof  float64 // 3/2 C₁

	method method
	orbit0 Orbit
}

// Geopotential returns the gravity model the propagator was built with.
func (c *Constants) Geopotential() *Geopotential {
	return c.geopotential
}

// method is the orbital regime decided at initialization. The concrete type
// never changes for a given Constants bundle; all propagation formulas
// dispatch on it.
type method interface {
	isMethod()
}

type nearEarthMethod struct {
	a0 float64

	// short-period coefficients frozen at the epoch inclination
	aycof  float64
	x1mth2 float64
	x7thm1 float64
	xlcof  float64
	x3thm1 float64

	// nil below the 220 km perigee threshold
	high *highAltitude
}

func (*nearEarthMethod) isMethod() {}

// highAltitude holds the higher-order drag terms that only apply above the
// 220 km perigee threshold.
type highAltitude struct {
	c5    float64
	d2    float64
	d3    float64
	d4    float64
	eta   float64
	sinM0 float64
	t3cof float64
	t4cof float64
	t5cof float64

	// nil when the epoch eccentricity is at most 10⁻⁴
	elliptic *ellipticCoeffs
}

type ellipticCoeffs struct {
	delM0  float64 // (1 + η cos M₀)³
	omgcof float64
	xmcof  float64
}

type deepSpaceMethod struct {
	eccentricityDot float64
	inclinationDot  float64
	solar           perturbations
	lunar           perturbations

	// semi-major axis used directly when the orbit is not resonant
	a0 float64

	// nil outside the geosynchronous and Molniya mean-motion windows
	resonant *resonantTerms
}

func (*deepSpaceMethod) isMethod() {}

type resonantTerms struct {
	lambda0    float64 // resonance angle at epoch
	lambdaDot0 float64 // its derivative, minus the epoch mean motion
	gsto       float64 // Greenwich sidereal time at epoch
	resonance  resonance
}

// resonance selects the derivative expression used by the integrator.
type resonance interface {
	isResonance()
}

// oneDayResonance covers the geosynchronous band.
type oneDayResonance struct {
	del1 float64
	del2 float64
	del3 float64
}

func (*oneDayResonance) isResonance() {}

// halfDayResonance covers the Molniya band, a fixed sum over the ten
// (l, m, p, k) index tuples (2,2,0,-1), (2,2,1,1), (3,2,1,0), (3,2,2,2),
// (4,4,1,0), (4,4,2,2), (5,2,2,0), (5,2,3,2), (5,4,2,1), (5,4,3,3).
type halfDayResonance struct {
	d2201 float64
	d2211 float64
	d3210 float64
	d3222 float64
	d4410 float64
	d4422 float64
	d5220 float64
	d5232 float64
	d5421 float64
	d5433 float64

	omgdot float64 // secular argument of perigee rate, drives the per-step phase
}

func (*halfDayResonance) isResonance() {}

// OrbitFromKozaiElements converts Kozai mean elements, the convention used by
// TLE and OMM records, to the Brouwer convention used internally. The
// conversion is closed-form. Angles are in rad and kozaiMeanMotion in
// rad/min.
func OrbitFromKozaiElements(geopotential *Geopotential, inclination, rightAscension, eccentricity,
	argumentOfPerigee, meanAnomaly, kozaiMeanMotion float64) (Orbit, error) {
	if kozaiMeanMotion <= 0.0 {
		return Orbit{}, newError("the Kozai mean motion must be positive")
	}
	a1 := math.Pow(geopotential.Ke/kozaiMeanMotion, 2.0/3.0)
	cosI0 := math.Cos(inclination)
	p0 := 0.75 * geopotential.J2 * (3.0*cosI0*cosI0 - 1.0) /
		math.Pow(1.0-eccentricity*eccentricity, 1.5)
	d1 := p0 / (a1 * a1)
	d0 := p0 / math.Pow(a1*(1.0-d1*d1-d1*(1.0/3.0+134.0*d1*d1/81.0)), 2.0)
	meanMotion := kozaiMeanMotion / (1.0 + d0)
	if meanMotion <= 0.0 {
		return Orbit{}, newError("the Brouwer mean motion must be positive")
	}
	return Orbit{
		Inclination:       inclination,
		RightAscension:    rightAscension,
		Eccentricity:      eccentricity,
		ArgumentOfPerigee: argumentOfPerigee,
		MeanAnomaly:       meanAnomaly,
		MeanMotion:        meanMotion,
	}, nil
}
