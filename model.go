package sgp4

import "math"

// Mathematical constants. pi is spelled out rather than taken from math.Pi so
// that every intermediate value stays bit-identical with the historical
// AFSPC-derived implementations.
const (
	pi            = 3.14159265358979323846
	twoPi         = 2 * pi
	deg2rad       = pi / 180.0
	rad2deg       = 180.0 / pi
	minutesPerDay = 1440.0

	// Earth rotation rate in rad/min used by the resonance formulation.
	siderealSpeed = 4.37526908801129966e-3
)

// Geopotential bundles the Earth gravity model constants consumed by the
// propagator. Values are immutable; callers normally pass one of the
// predefined models below.
type Geopotential struct {
	Ae float64 // equatorial radius of the earth in km
	Ke float64 // square root of the earth's gravitational parameter in earth radii³ min⁻²
	J2 float64 // un-normalised second zonal harmonic
	J3 float64 // un-normalised third zonal harmonic
	J4 float64 // un-normalised fourth zonal harmonic
}

// WGS72Old is the WGS 72 model with the low-precision kₑ value found in older
// AFSPC code.
var WGS72Old = Geopotential{
	Ae: 6378.135,
	Ke: 0.0743669161,
	J2: 0.001082616,
	J3: -0.00000253881,
	J4: -0.00000165597,
}

// WGS72 is the model used by the reference AFSPC implementation.
var WGS72 = Geopotential{
	Ae: 6378.135,
	Ke: 0.07436691613317342,
	J2: 0.001082616,
	J3: -0.00000253881,
	J4: -0.00000165597,
}

// WGS84 is the recommended model for new applications.
var WGS84 = Geopotential{
	Ae: 6378.137,
	Ke: 0.07436685316871385,
	J2: 0.00108262998905,
	J3: -0.00000253215306,
	J4: -0.00000161098761,
}

// Mode selects between the modern expressions and the ones used by the
// historical AFSPC implementation. It controls the UT1 to J2000 epoch
// conversion, the sidereal time expression, and the discontinuity handling in
// the low-inclination deep-space (Lyddane) formulas. The mode is fixed when a
// Constants bundle is built and never changes afterwards.
type Mode int

const (
	// ModeIAU uses the IAU sidereal time expression and the accurate epoch
	// conversion. This is the right choice for new applications.
	ModeIAU Mode = iota

	// ModeAFSPC reproduces the AFSPC implementation bit for bit, including
	// its sidereal time expression and its Lyddane discontinuity.
	ModeAFSPC
)

func (m Mode) epochToSiderealTime(epoch float64) float64 {
	if m == ModeAFSPC {
		return AFSPCEpochToSiderealTime(epoch)
	}
	return IAUEpochToSiderealTime(epoch)
}

// AFSPCEpochToSiderealTime returns the Greenwich sidereal time in rad at the
// given epoch, expressed in years since UTC 1 January 2000 12h00 (J2000),
// using the expression of the AFSPC implementation.
func AFSPCEpochToSiderealTime(epoch float64) float64 {
	d1970 := (epoch+30.0)*365.25 + 1.0
	return remEuclid(1.7321343856509374+
		1.72027916940703639e-2*math.Floor(d1970+1.0e-8)+
		(1.72027916940703639e-2+twoPi)*(d1970-math.Floor(d1970+1.0e-8))+
		d1970*d1970*5.07551419432269442e-15, twoPi)
}

// IAUEpochToSiderealTime returns the Greenwich sidereal time in rad at the
// given epoch, expressed in years since UTC 1 January 2000 12h00 (J2000),
// using the IAU expression.
func IAUEpochToSiderealTime(epoch float64) float64 {
	c2000 := epoch / 100.0
	return remEuclid((-6.2e-6*c2000*c2000*c2000+
		0.093104*c2000*c2000+
		(876600.0*3600.0+8640184.812866)*c2000+
		67310.54841)*(pi/180.0)/240.0, twoPi)
}

// remEuclid returns the remainder of x/y shifted into [0, y).
func remEuclid(x, y float64) float64 {
	r := math.Mod(x, y)
	if r < 0 {
		r += y
	}
	return r
}
