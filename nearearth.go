package sgp4

import "math"

func newNearEarthMethod(geopotential *Geopotential, dragTerm float64, orbit0 Orbit,
	cosI0, sinI0, a0, s, xi, eta, c1, beta0sq, perigee, coef, coef1, x3thm1 float64) *nearEarthMethod {
	m := &nearEarthMethod{
		a0:     a0,
		aycof:  -0.5 * (geopotential.J3 / geopotential.J2) * sinI0,
		x1mth2: 1.0 - cosI0*cosI0,
		x7thm1: 7.0*cosI0*cosI0 - 1.0,
		x3thm1: x3thm1,
	}
	if math.Abs(1.0+cosI0) > 1.5e-12 {
		m.xlcof = -0.25 * (geopotential.J3 / geopotential.J2) * sinI0 *
			(3.0 + 5.0*cosI0) / (1.0 + cosI0)
	} else {
		m.xlcof = -0.25 * (geopotential.J3 / geopotential.J2) * sinI0 *
			(3.0 + 5.0*cosI0) / 1.5e-12
	}

	// the higher-order drag terms are dropped below a 220 km perigee
	if perigee < 220.0/geopotential.Ae+1.0 {
		return m
	}

	d2 := 4.0 * a0 * xi * c1 * c1
	temp := d2 * xi * c1 / 3.0
	d3 := (17.0*a0 + s) * temp
	d4 := 0.5 * temp * a0 * xi * (221.0*a0 + 31.0*s) * c1

	high := &highAltitude{
		c5: dragTerm * (2.0 * coef1 * a0 * beta0sq *
			(1.0 + 2.75*(eta*eta+eta*orbit0.Eccentricity) +
				eta*orbit0.Eccentricity*eta*eta)),
		d2:    d2,
		d3:    d3,
		d4:    d4,
		eta:   eta,
		sinM0: math.Sin(orbit0.MeanAnomaly),
		t3cof: d2 + 2.0*c1*c1,
		t4cof: 0.25 * (3.0*d3 + c1*(12.0*d2+10.0*c1*c1)),
		t5cof: 0.2 * (3.0*d4 + 12.0*c1*d3 + 6.0*d2*d2 +
			15.0*c1*c1*(2.0*d2+c1*c1)),
	}
	if orbit0.Eccentricity > 1.0e-4 {
		high.elliptic = &ellipticCoeffs{
			delM0: math.Pow(1.0+eta*math.Cos(orbit0.MeanAnomaly), 3.0),
			omgcof: dragTerm * (-2.0 * coef * xi *
				(geopotential.J3 / geopotential.J2) *
				orbit0.MeanMotion * sinI0 / orbit0.Eccentricity) *
				math.Cos(orbit0.ArgumentOfPerigee),
			xmcof: -2.0 / 3.0 * coef * dragTerm / (orbit0.Eccentricity * eta),
		}
	}
	m.high = high
	return m
}

// nearEarthOrbitalElements applies the secular gravity and drag effects to
// the epoch elements. It returns the osculating-free mean elements at t, the
// semi-major axis and the five inclination functions used by the short-period
// corrections.
func (c *Constants) nearEarthOrbitalElements(m *nearEarthMethod, t, p22, p23 float64) (Orbit, float64, float64, float64, float64, float64, float64) {
	p24 := c.orbit0.MeanAnomaly + c.meanAnomalyDot*t
	var argumentOfPerigee, meanAnomaly, a, p27 float64
	if m.high == nil {
		argumentOfPerigee = p23
		meanAnomaly = p24 + c.orbit0.MeanMotion*c.t2cof*t*t
		a = m.a0 * math.Pow(1.0-c.c1*t, 2.0)
		p27 = c.orbit0.Eccentricity - c.c4*t
	} else {
		high := m.high
		p26 := p24
		argumentOfPerigee = p23
		if high.elliptic != nil {
			p25 := high.elliptic.xmcof*
				(math.Pow(1.0+high.eta*math.Cos(p24), 3.0)-high.elliptic.delM0) +
				high.elliptic.omgcof*t
			argumentOfPerigee = p23 - p25
			p26 = p24 + p25
		}
		meanAnomaly = p26 + c.orbit0.MeanMotion*
			(c.t2cof*t*t+high.t3cof*t*t*t+t*t*t*t*(high.t4cof+t*high.t5cof))
		a = m.a0 * math.Pow(1.0-c.c1*t-high.d2*t*t-high.d3*t*t*t-high.d4*t*t*t*t, 2.0)
		p27 = c.orbit0.Eccentricity - (c.c4*t + high.c5*(math.Sin(p26)-high.sinM0))
	}
	orbit := Orbit{
		Inclination:       c.orbit0.Inclination,
		RightAscension:    p22,
		Eccentricity:      math.Max(p27, 1.0e-6),
		ArgumentOfPerigee: argumentOfPerigee,
		MeanAnomaly:       meanAnomaly,
		MeanMotion:        c.geopotential.Ke / math.Pow(a, 1.5),
	}
	return orbit, a, m.aycof, m.x1mth2, m.x7thm1, m.xlcof, m.x3thm1
}
