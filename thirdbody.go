package sgp4

import "math"

// solar orbital constants in the TEME frame
const (
	solarEccentricity            = 0.01675
	solarMeanMotion              = 1.19459e-5  // rad/min
	solarPerturbationCoefficient = 2.9864797e-6
)

// lunar orbital constants in the TEME frame
const (
	lunarEccentricity            = 0.05490
	lunarMeanMotion              = 1.5835218e-4 // rad/min
	lunarPerturbationCoefficient = 4.7968065e-7
)

// perturbations holds the time-independent coefficients of the long-period
// periodic effects of a third body (the Sun or the Moon) on the satellite
// orbit.
type perturbations struct {
	kx0  float64
	kx1  float64
	kx2  float64
	kx3  float64
	kx4  float64
	kx5  float64
	kx6  float64
	kx7  float64
	kx8  float64
	kx9  float64
	kx10 float64
	kx11 float64

	thirdBodyMeanAnomaly0 float64
}

// dots holds the secular rates contributed by a third body.
type dots struct {
	inclination       float64
	rightAscension    float64
	eccentricity      float64
	argumentOfPerigee float64
	meanAnomaly       float64
}

// perturbationsAndDots evaluates the third-body interaction between the
// satellite orbit and a perturbing body given by its inclination, relative
// right ascension, eccentricity, argument of perigee, perturbation
// coefficient, mean motion and epoch mean anomaly. beta0sq and beta0 are
// 1 - e₀² and its square root.
func perturbationsAndDots(inclination0, eccentricity0, argumentOfPerigee0, n0,
	bodyInclinationSine, bodyInclinationCosine,
	deltaRightAscensionSine, deltaRightAscensionCosine,
	bodyEccentricity, bodyArgumentOfPerigeeSine, bodyArgumentOfPerigeeCosine,
	bodyPerturbationCoefficient, bodyMeanMotion, bodyMeanAnomaly0,
	beta0sq, beta0 float64) (perturbations, dots) {
	a1 := bodyArgumentOfPerigeeCosine*deltaRightAscensionCosine +
		bodyArgumentOfPerigeeSine*bodyInclinationCosine*deltaRightAscensionSine
	a3 := -bodyArgumentOfPerigeeSine*deltaRightAscensionCosine +
		bodyArgumentOfPerigeeCosine*bodyInclinationCosine*deltaRightAscensionSine
	a7 := -bodyArgumentOfPerigeeCosine*deltaRightAscensionSine +
		bodyArgumentOfPerigeeSine*bodyInclinationCosine*deltaRightAscensionCosine
	a8 := bodyArgumentOfPerigeeSine * bodyInclinationSine
	a9 := bodyArgumentOfPerigeeSine*deltaRightAscensionSine +
		bodyArgumentOfPerigeeCosine*bodyInclinationCosine*deltaRightAscensionCosine
	a10 := bodyArgumentOfPerigeeCosine * bodyInclinationSine

	cosI0 := math.Cos(inclination0)
	sinI0 := math.Sin(inclination0)
	a2 := cosI0*a7 + sinI0*a8
	a4 := cosI0*a9 + sinI0*a10
	a5 := -sinI0*a7 + cosI0*a8
	a6 := -sinI0*a9 + cosI0*a10

	cosW0 := math.Cos(argumentOfPerigee0)
	sinW0 := math.Sin(argumentOfPerigee0)
	x1 := a1*cosW0 + a2*sinW0
	x2 := a3*cosW0 + a4*sinW0
	x3 := -a1*sinW0 + a2*cosW0
	x4 := -a3*sinW0 + a4*cosW0
	x5 := a5 * sinW0
	x6 := a6 * sinW0
	x7 := a5 * cosW0
	x8 := a6 * cosW0

	esq := eccentricity0 * eccentricity0
	z31 := 12.0*x1*x1 - 3.0*x3*x3
	z32 := 24.0*x1*x2 - 6.0*x3*x4
	z33 := 12.0*x2*x2 - 3.0*x4*x4
	z11 := -6.0*a1*a5 + esq*(-24.0*x1*x7-6.0*x3*x5)
	z12 := -6.0*(a1*a6+a3*a5) +
		esq*(-24.0*(x2*x7+x1*x8)-6.0*(x3*x6+x4*x5))
	z13 := -6.0*a3*a6 + esq*(-24.0*x2*x8-6.0*x4*x6)
	z21 := 6.0*a2*a5 + esq*(24.0*x1*x5-6.0*x3*x7)
	z22 := 6.0*(a4*a5+a2*a6) +
		esq*(24.0*(x2*x5+x1*x6)-6.0*(x4*x7+x3*x8))
	z23 := 6.0*a4*a6 + esq*(24.0*x2*x6-6.0*x4*x8)
	z1 := (3.0*(a1*a1+a2*a2)+z31*esq)*2.0 + beta0sq*z31
	z2 := (6.0*(a1*a3+a2*a4)+z32*esq)*2.0 + beta0sq*z32
	z3 := (3.0*(a3*a3+a4*a4)+z33*esq)*2.0 + beta0sq*z33

	lx0 := bodyPerturbationCoefficient / n0
	lx1 := -0.5 * lx0 / beta0
	lx2 := lx0 * beta0
	lx3 := -15.0 * eccentricity0 * lx2

	// the node rate is singular for equatorial orbits
	var bodyRightAscensionDot float64
	if inclination0 >= 5.2359877e-2 && inclination0 <= pi-5.2359877e-2 {
		bodyRightAscensionDot = -bodyMeanMotion * lx1 * (z21 + z23) / sinI0
	}
	return perturbations{
			kx0:                   2.0 * lx3 * (x2*x3 + x1*x4),
			kx1:                   2.0 * lx3 * (x2*x4 - x1*x3),
			kx2:                   2.0 * lx1 * z12,
			kx3:                   2.0 * lx1 * (z13 - z11),
			kx4:                   -2.0 * lx0 * z2,
			kx5:                   -2.0 * lx0 * (z3 - z1),
			kx6:                   -2.0 * lx0 * (-21.0 - 9.0*esq) * bodyEccentricity,
			kx7:                   2.0 * lx2 * z32,
			kx8:                   2.0 * lx2 * (z33 - z31),
			kx9:                   -18.0 * lx2 * bodyEccentricity,
			kx10:                  -2.0 * lx1 * z22,
			kx11:                  -2.0 * lx1 * (z23 - z21),
			thirdBodyMeanAnomaly0: bodyMeanAnomaly0,
		}, dots{
			inclination:    lx1 * bodyMeanMotion * (z11 + z13),
			rightAscension: bodyRightAscensionDot,
			eccentricity:   lx3 * bodyMeanMotion * (x1*x3 + x2*x4),
			argumentOfPerigee: lx2*bodyMeanMotion*(z31+z33-6.0) -
				cosI0*bodyRightAscensionDot,
			meanAnomaly: -bodyMeanMotion * lx0 * (z1 + z3 - 14.0 - 6.0*esq),
		}
}

// longPeriodPeriodicEffects evaluates the third-body periodic corrections at
// t minutes since epoch. It returns the eccentricity, inclination and mean
// anomaly deltas followed by the two intermediate terms folded into the
// argument of perigee and right ascension.
func (p *perturbations) longPeriodPeriodicEffects(bodyEccentricity, bodyMeanMotion, t float64) (float64, float64, float64, float64, float64) {
	bodyMeanAnomaly := p.thirdBodyMeanAnomaly0 + bodyMeanMotion*t
	fx := bodyMeanAnomaly + 2.0*bodyEccentricity*math.Sin(bodyMeanAnomaly)
	sinFx, cosFx := math.Sincos(fx)
	f2 := 0.5*sinFx*sinFx - 0.25
	f3 := -0.5 * sinFx * cosFx
	return p.kx0*f2 + p.kx1*f3,
		p.kx2*f2 + p.kx3*f3,
		p.kx4*f2 + p.kx5*f3 + p.kx6*sinFx,
		p.kx7*f2 + p.kx8*f3 + p.kx9*sinFx,
		p.kx10*f2 + p.kx11*f3
}
