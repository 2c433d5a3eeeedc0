package sgp4

import "math"

// NewConstants initializes a propagator from epoch quantities.
//
// epoch is the number of years since UTC 2000 January 1 12h00 (J2000) and
// dragTerm the radiation pressure coefficient B* in earth radii⁻¹. orbit0
// holds the Brouwer mean elements at epoch, usually obtained through
// OrbitFromKozaiElements. Records parsed from TLE or OMM data can use the
// NewConstantsFromTLE and NewConstantsFromOMM convenience constructors
// instead.
func NewConstants(geopotential *Geopotential, mode Mode, epoch, dragTerm float64, orbit0 Orbit) (*Constants, error) {
	if orbit0.Eccentricity < 0.0 || orbit0.Eccentricity >= 1.0 {
		return nil, newError("the eccentricity must be in the range [0, 1[")
	}

	cosI0 := math.Cos(orbit0.Inclination)
	sinI0 := math.Sin(orbit0.Inclination)
	beta0sq := 1.0 - orbit0.Eccentricity*orbit0.Eccentricity
	x3thm1 := 3.0*cosI0*cosI0 - 1.0
	a0 := math.Pow(geopotential.Ke/orbit0.MeanMotion, 2.0/3.0)

	// perigee distance in earth radii
	perigee := a0 * (1.0 - orbit0.Eccentricity)

	// the density function fitting altitude s and (q₀ - s)⁴ depend on the
	// perigee height in km
	perigeeHeight := geopotential.Ae * (perigee - 1.0)
	var sAlt float64
	switch {
	case perigeeHeight < 98.0:
		sAlt = 20.0
	case perigeeHeight < 156.0:
		sAlt = perigeeHeight - 78.0
	default:
		sAlt = 78.0
	}
	s := sAlt/geopotential.Ae + 1.0
	qoms24 := math.Pow((120.0-sAlt)/geopotential.Ae, 4.0)

	xi := 1.0 / (a0 - s)
	coef := qoms24 * math.Pow(xi, 4.0)
	eta := a0 * orbit0.Eccentricity * xi
	psisq := math.Abs(1.0 - eta*eta)
	coef1 := coef / math.Pow(psisq, 3.5)

	c1 := dragTerm * (coef1 * orbit0.MeanMotion *
		(a0*(1.0+1.5*eta*eta+orbit0.Eccentricity*eta*(4.0+eta*eta)) +
			0.375*geopotential.J2*xi/psisq*x3thm1*
				(8.0+3.0*eta*eta*(8.0+eta*eta))))

	pinvsq := 1.0 / ((a0 * beta0sq) * (a0 * beta0sq))
	beta0 := math.Sqrt(beta0sq)
	temp1 := 1.5 * geopotential.J2 * pinvsq * orbit0.MeanMotion
	temp2 := 0.5 * temp1 * geopotential.J2 * pinvsq
	temp3 := -0.46875 * geopotential.J4 * pinvsq * pinvsq * orbit0.MeanMotion

	xnodot := -temp1*cosI0 +
		(0.5*temp2*(4.0-19.0*cosI0*cosI0)+2.0*temp3*(3.0-7.0*cosI0*cosI0))*cosI0

	omgdot := -0.5*temp1*(1.0-5.0*cosI0*cosI0) +
		0.0625*temp2*(7.0-114.0*cosI0*cosI0+395.0*math.Pow(cosI0, 4.0)) +
		temp3*(3.0-36.0*cosI0*cosI0+49.0*math.Pow(cosI0, 4.0))

	xmdot := orbit0.MeanMotion +
		0.5*temp1*beta0*x3thm1 +
		0.0625*temp2*beta0*(13.0-78.0*cosI0*cosI0+137.0*math.Pow(cosI0, 4.0))

	c4 := dragTerm * (2.0 * orbit0.MeanMotion * coef1 * a0 * beta0sq *
		(eta*(2.0+0.5*eta*eta) +
			orbit0.Eccentricity*(0.5+2.0*eta*eta) -
			geopotential.J2*xi/(a0*psisq)*
				(-3.0*x3thm1*(1.0-2.0*orbit0.Eccentricity*eta+
					eta*eta*(1.5-0.5*orbit0.Eccentricity*eta))+
					0.75*(1.0-cosI0*cosI0)*
						(2.0*eta*eta-orbit0.Eccentricity*eta*(1.0+eta*eta))*
						math.Cos(2.0*orbit0.ArgumentOfPerigee))))

	xnodcf := 3.5 * beta0sq * (-temp1 * cosI0) * c1
	t2cof := 1.5 * c1

	c := &Constants{
		geopotential:         geopotential,
		mode:                 mode,
		rightAscensionDot:    xnodot,
		argumentOfPerigeeDot: omgdot,
		meanAnomalyDot:       xmdot,
		c1:                   c1,
		c4:                   c4,
		xnodcf:               xnodcf,
		t2cof:                t2cof,
		orbit0:               orbit0,
	}
	if orbit0.MeanMotion > twoPi/225.0 {
		c.method = newNearEarthMethod(geopotential, dragTerm, orbit0,
			cosI0, sinI0, a0, s, xi, eta, c1, beta0sq, perigee, coef, coef1, x3thm1)
	} else {
		initDeepSpace(c, epoch, cosI0, sinI0, a0, beta0, beta0sq, omgdot)
	}
	return c, nil
}
