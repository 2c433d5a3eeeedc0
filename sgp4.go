package sgp4

import "math"

// InitialState returns a fresh deep space resonance integrator state, or nil
// if the orbit is not resonant. See ResonanceState for when carrying the
// state between calls pays off.
func (c *Constants) InitialState() *ResonanceState {
	if m, ok := c.method.(*deepSpaceMethod); ok && m.resonant != nil {
		return &ResonanceState{
			t:          0.0,
			meanMotion: c.orbit0.MeanMotion,
			lambda:     m.resonant.lambda0,
		}
	}
	return nil
}

// Propagate calculates the position and velocity at t minutes since epoch
// (which can be positive, negative or zero).
func (c *Constants) Propagate(t float64) Prediction {
	return c.PropagateFromState(t, c.InitialState())
}

// PropagateFromState calculates the position and velocity at t minutes since
// epoch, re-using a resonance state obtained from InitialState. The
// propagation times must be monotonic if the same state is used repeatedly;
// passing nil seeds a fresh state. For non-resonant orbits the state is
// ignored and the behavior is identical to Propagate.
func (c *Constants) PropagateFromState(t float64, state *ResonanceState) Prediction {
	p22 := c.orbit0.RightAscension + c.rightAscensionDot*t + c.xnodcf*t*t
	p23 := c.orbit0.ArgumentOfPerigee + c.argumentOfPerigeeDot*t

	var (
		orbit                   Orbit
		a                       float64
		p32, p33, p34, p35, p36 float64
	)
	switch m := c.method.(type) {
	case *nearEarthMethod:
		orbit, a, p32, p33, p34, p35, p36 = c.nearEarthOrbitalElements(m, t, p22, p23)
	case *deepSpaceMethod:
		if m.resonant != nil && state == nil {
			state = c.InitialState()
		}
		orbit, a, p32, p33, p34, p35, p36 = c.deepSpaceOrbitalElements(m, state, t, p22, p23)
	}

	p37 := 1.0 / (a * (1.0 - orbit.Eccentricity*orbit.Eccentricity))
	axn := orbit.Eccentricity * math.Cos(orbit.ArgumentOfPerigee)
	ayn := orbit.Eccentricity*math.Sin(orbit.ArgumentOfPerigee) + p37*p32
	p38 := math.Mod(orbit.MeanAnomaly+orbit.ArgumentOfPerigee+p37*p35*axn, twoPi)

	ew := solveKepler(p38, axn, ayn)
	sinEw, cosEw := math.Sincos(ew)

	p39 := axn*axn + ayn*ayn
	pl := a * (1.0 - p39)
	p40 := axn*sinEw - ayn*cosEw
	r := a * (1.0 - (axn*cosEw + ayn*sinEw))
	rDot := math.Sqrt(a) * p40 / r
	b := math.Sqrt(1.0 - p39)
	p41 := p40 / (1.0 + b)
	p42 := a / r * (sinEw - ayn - axn*p41)
	p43 := a / r * (cosEw - axn + ayn*p41)
	u := math.Atan2(p42, p43)
	p44 := 2.0 * p43 * p42
	p45 := 1.0 - 2.0*p42*p42
	p46 := 0.5 * c.geopotential.J2 / pl / pl

	rk := r*(1.0-1.5*p46*b*p36) + 0.5*(0.5*c.geopotential.J2/pl)*p33*p45
	uk := u - 0.25*p46*p34*p44
	inclinationK := orbit.Inclination +
		1.5*p46*math.Cos(orbit.Inclination)*math.Sin(orbit.Inclination)*p45
	rightAscensionK := orbit.RightAscension + 1.5*p46*math.Cos(orbit.Inclination)*p44
	rkDot := rDot - orbit.MeanMotion*(0.5*c.geopotential.J2/pl)*p33*p44/c.geopotential.Ke
	rfkDot := math.Sqrt(pl)/r +
		orbit.MeanMotion*(0.5*c.geopotential.J2/pl)*(p33*p45+1.5*p36)/c.geopotential.Ke

	sinUk, cosUk := math.Sincos(uk)
	sinIk, cosIk := math.Sincos(inclinationK)
	sinOk, cosOk := math.Sincos(rightAscensionK)

	u0 := -sinOk*cosIk*sinUk + cosOk*cosUk
	u1 := cosOk*cosIk*sinUk + sinOk*cosUk
	u2 := sinIk * sinUk

	vScale := c.geopotential.Ae * c.geopotential.Ke / 60.0
	return Prediction{
		Position: [3]float64{
			rk * u0 * c.geopotential.Ae,
			rk * u1 * c.geopotential.Ae,
			rk * u2 * c.geopotential.Ae,
		},
		Velocity: [3]float64{
			(rkDot*u0 + rfkDot*(-sinOk*cosIk*cosUk-cosOk*sinUk)) * vScale,
			(rkDot*u1 + rfkDot*(cosOk*cosIk*cosUk-sinOk*sinUk)) * vScale,
			(rkDot*u2 + rfkDot*(sinIk*cosUk)) * vScale,
		},
	}
}

// solveKepler solves Kepler's equation for E + ω by Newton's method seeded
// with u = M + ω. Corrections are clamped to [-0.95, 0.95] and iteration
// stops after ten steps whether or not the residual converged.
func solveKepler(u, axn, ayn float64) float64 {
	ew := u
	for i := 0; i < 10; i++ {
		sinEw, cosEw := math.Sincos(ew)
		delta := (u - ayn*cosEw + axn*sinEw - ew) /
			(1.0 - cosEw*axn - sinEw*ayn)
		if math.Abs(delta) < 1.0e-12 {
			break
		}
		if delta < -0.95 {
			delta = -0.95
		} else if delta > 0.95 {
			delta = 0.95
		}
		ew += delta
	}
	return ew
}
