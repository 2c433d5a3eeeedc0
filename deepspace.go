package sgp4

import "math"

// resonance integrator time step in minutes
const deltaT = 720.0

// earth gravity resonance longitudes and phases
const (
	lambda31 = 0.13130908
	lambda22 = 2.8843198
	lambda33 = 0.37448087
	g22      = 5.7686396
	g32      = 0.95240898
	g44      = 1.8014998
	g52      = 1.0508330
	g54      = 4.4108898
)

// ResonanceState is the state of the deep space resonance integrator.
//
// For most orbits SGP4 propagation is stateless and predictions at different
// times are always calculated from the epoch quantities. Resonant deep space
// orbits (geosynchronous or Molniya) use an integrator with a 720 min time
// step to estimate the resonance effects of Earth gravity. When the
// propagation times are monotonic, a few operations per prediction can be
// saved by re-using the state through PropagateFromState. The state must be
// reset with InitialState if the target times are non-monotonic.
type ResonanceState struct {
	t          float64
	meanMotion float64
	lambda     float64
}

// T returns the integrator's time in minutes since epoch. It changes
// monotonically in 720 min increments or decrements, depending on the
// propagation time sign.
func (s *ResonanceState) T() float64 {
	return s.t
}

func (s *ResonanceState) integrate(geopotential *Geopotential, argumentOfPerigee0, lambdaDot0 float64,
	r resonance, gsto, t, p22, p23 float64) (float64, float64) {
	siderealTime := math.Mod(gsto+t*siderealSpeed, twoPi)
	step := deltaT
	if t <= 0.0 {
		step = -deltaT
	}
	for {
		lambdaDot := s.meanMotion + lambdaDot0
		var niDot, niDdot float64
		switch res := r.(type) {
		case *oneDayResonance:
			niDot = res.del1*math.Sin(s.lambda-lambda31) +
				res.del2*math.Sin(2.0*(s.lambda-lambda22)) +
				res.del3*math.Sin(3.0*(s.lambda-lambda33))
			niDdot = (res.del1*math.Cos(s.lambda-lambda31) +
				2.0*res.del2*math.Cos(2.0*(s.lambda-lambda22)) +
				3.0*res.del3*math.Cos(3.0*(s.lambda-lambda33))) * lambdaDot
		case *halfDayResonance:
			omegaI := argumentOfPerigee0 + res.omgdot*s.t
			niDot = res.d2201*math.Sin(2.0*omegaI+s.lambda-g22) +
				res.d2211*math.Sin(s.lambda-g22) +
				res.d3210*math.Sin(omegaI+s.lambda-g32) +
				res.d3222*math.Sin(-omegaI+s.lambda-g32) +
				res.d4410*math.Sin(2.0*omegaI+2.0*s.lambda-g44) +
				res.d4422*math.Sin(2.0*s.lambda-g44) +
				res.d5220*math.Sin(omegaI+s.lambda-g52) +
				res.d5232*math.Sin(-omegaI+s.lambda-g52) +
				res.d5421*math.Sin(omegaI+2.0*s.lambda-g54) +
				res.d5433*math.Sin(-omegaI+2.0*s.lambda-g54)
			niDdot = (res.d2201*math.Cos(2.0*omegaI+s.lambda-g22) +
				res.d2211*math.Cos(s.lambda-g22) +
				res.d3210*math.Cos(omegaI+s.lambda-g32) +
				res.d3222*math.Cos(-omegaI+s.lambda-g32) +
				res.d5220*math.Cos(omegaI+s.lambda-g52) +
				res.d5232*math.Cos(-omegaI+s.lambda-g52) +
				2.0*(res.d4410*math.Cos(2.0*omegaI+2.0*s.lambda-g44)+
					res.d4422*math.Cos(2.0*s.lambda-g44)+
					res.d5421*math.Cos(omegaI+2.0*s.lambda-g54)+
					res.d5433*math.Cos(-omegaI+2.0*s.lambda-g54))) * lambdaDot
		}
		var done bool
		if t > 0.0 {
			done = t-step < s.t
		} else {
			done = t-step > s.t
		}
		if done {
			dt := t - s.t
			a := math.Pow(geopotential.Ke/
				(s.meanMotion+niDot*dt+niDdot*dt*dt*0.5), 2.0/3.0)
			var p29 float64
			switch r.(type) {
			case *oneDayResonance:
				p29 = s.lambda + lambdaDot*dt + niDot*dt*dt*0.5 -
					p22 - p23 + siderealTime
			case *halfDayResonance:
				p29 = s.lambda + lambdaDot*dt + niDot*dt*dt*0.5 -
					2.0*p22 + 2.0*siderealTime
			}
			return a, p29
		}
		s.t += step
		s.meanMotion += niDot*step + niDdot*(deltaT*deltaT/2.0)
		s.lambda += lambdaDot*step + niDot*(deltaT*deltaT/2.0)
	}
}

// initDeepSpace completes a Constants bundle for orbits with a period of
// 225 min or more. It folds the solar and lunar secular rates into the
// gravity rates and classifies the orbit against the geosynchronous and
// Molniya resonance windows.
func initDeepSpace(c *Constants, epoch, cosI0, sinI0, a0, beta0, beta0sq, omgdot float64) {
	orbit0 := c.orbit0

	// days since 1900 January 0.5
	d1900 := (epoch + 100.0) * 365.25

	solarPerturbations, solarDots := perturbationsAndDots(
		orbit0.Inclination,
		orbit0.Eccentricity,
		orbit0.ArgumentOfPerigee,
		orbit0.MeanMotion,
		0.39785416,
		0.91744867,
		math.Sin(orbit0.RightAscension),
		math.Cos(orbit0.RightAscension),
		solarEccentricity,
		-0.98088458,
		0.1945905,
		solarPerturbationCoefficient,
		solarMeanMotion,
		math.Mod(6.2565837+0.017201977*d1900, twoPi),
		beta0sq,
		beta0,
	)

	lunarRightAscensionEpsilon := math.Mod(4.5236020-9.2422029e-4*d1900, twoPi)
	lunarInclinationCosine := 0.91375164 - 0.03568096*math.Cos(lunarRightAscensionEpsilon)
	lunarInclinationSine := math.Sqrt(1.0 - lunarInclinationCosine*lunarInclinationCosine)
	lunarRightAscensionSine := 0.089683511 * math.Sin(lunarRightAscensionEpsilon) / lunarInclinationSine
	lunarRightAscensionCosine := math.Sqrt(1.0 - lunarRightAscensionSine*lunarRightAscensionSine)
	lunarArgumentOfPerigee := 5.8351514 + 0.001944368*d1900 +
		math.Atan2(0.39785416*math.Sin(lunarRightAscensionEpsilon)/lunarInclinationSine,
			lunarRightAscensionCosine*math.Cos(lunarRightAscensionEpsilon)+
				0.91744867*lunarRightAscensionSine*math.Sin(lunarRightAscensionEpsilon)) -
		lunarRightAscensionEpsilon

	lunarPerturbations, lunarDots := perturbationsAndDots(
		orbit0.Inclination,
		orbit0.Eccentricity,
		orbit0.ArgumentOfPerigee,
		orbit0.MeanMotion,
		lunarInclinationSine,
		lunarInclinationCosine,
		math.Sin(orbit0.RightAscension)*lunarRightAscensionCosine-
			math.Cos(orbit0.RightAscension)*lunarRightAscensionSine,
		lunarRightAscensionCosine*math.Cos(orbit0.RightAscension)+
			lunarRightAscensionSine*math.Sin(orbit0.RightAscension),
		lunarEccentricity,
		math.Sin(lunarArgumentOfPerigee),
		math.Cos(lunarArgumentOfPerigee),
		lunarPerturbationCoefficient,
		lunarMeanMotion,
		math.Mod(-1.1151842+0.228027132*d1900, twoPi),
		beta0sq,
		beta0,
	)

	c.rightAscensionDot += solarDots.rightAscension + lunarDots.rightAscension
	c.argumentOfPerigeeDot += solarDots.argumentOfPerigee + lunarDots.argumentOfPerigee
	c.meanAnomalyDot += solarDots.meanAnomaly + lunarDots.meanAnomaly

	m := &deepSpaceMethod{
		eccentricityDot: solarDots.eccentricity + lunarDots.eccentricity,
		inclinationDot:  solarDots.inclination + lunarDots.inclination,
		solar:           solarPerturbations,
		lunar:           lunarPerturbations,
		a0:              a0,
	}

	oneDay := orbit0.MeanMotion < 0.0052359877 && orbit0.MeanMotion > 0.0034906585
	halfDay := orbit0.MeanMotion >= 8.26e-3 && orbit0.MeanMotion <= 9.24e-3 &&
		orbit0.Eccentricity >= 0.5
	if oneDay || halfDay {
		gsto := c.mode.epochToSiderealTime(epoch)
		if oneDay {
			p17 := 3.0 * (orbit0.MeanMotion / a0) * (orbit0.MeanMotion / a0)
			esq := orbit0.Eccentricity * orbit0.Eccentricity
			m.resonant = &resonantTerms{
				lambda0: math.Mod(orbit0.MeanAnomaly+orbit0.RightAscension+
					orbit0.ArgumentOfPerigee-gsto, twoPi),
				lambdaDot0: c.meanAnomalyDot + c.argumentOfPerigeeDot + c.rightAscensionDot -
					siderealSpeed - orbit0.MeanMotion,
				gsto: gsto,
				resonance: &oneDayResonance{
					del1: p17 *
						(0.9375*sinI0*sinI0*(1.0+3.0*cosI0) - 0.75*(1.0+cosI0)) *
						(1.0 + 2.0*esq) * 2.1460748e-6 / a0,
					del2: 2.0 * p17 * (0.75 * (1.0 + cosI0) * (1.0 + cosI0)) *
						(1.0 + esq*(-2.5+0.8125*esq)) * 1.7891679e-6,
					del3: 3.0 * p17 * (1.875 * math.Pow(1.0+cosI0, 3.0)) *
						(1.0 + esq*(-6.0+6.60937*esq)) * 2.2123015e-7 / a0,
				},
			}
		} else {
			p18 := 3.0 * orbit0.MeanMotion * orbit0.MeanMotion / (a0 * a0)
			p19 := p18 / a0
			p20 := p19 / a0
			p21 := p20 / a0
			e0 := orbit0.Eccentricity
			f220 := 0.75 * (1.0 + 2.0*cosI0 + cosI0*cosI0)

			// G and D coefficients keep the 1980 AFSPC polynomial fits,
			// including their known deviations from the Kaula expansion
			var g211, g310, g322, g410, g422 float64
			if e0 <= 0.65 {
				g211 = 3.616 - 13.247*e0 + 16.29*e0*e0
				g310 = -19.302 + 117.39*e0 - 228.419*e0*e0 + 156.591*e0*e0*e0
				g322 = -18.9068 + 109.7927*e0 - 214.6334*e0*e0 + 146.5816*e0*e0*e0
				g410 = -41.122 + 242.694*e0 - 471.094*e0*e0 + 313.953*e0*e0*e0
				g422 = -146.407 + 841.88*e0 - 1629.014*e0*e0 + 1083.435*e0*e0*e0
			} else {
				g211 = -72.099 + 331.819*e0 - 508.738*e0*e0 + 266.724*e0*e0*e0
				g310 = -346.844 + 1582.851*e0 - 2415.925*e0*e0 + 1246.113*e0*e0*e0
				g322 = -342.585 + 1554.908*e0 - 2366.899*e0*e0 + 1215.972*e0*e0*e0
				g410 = -1052.797 + 4758.686*e0 - 7193.992*e0*e0 + 3651.957*e0*e0*e0
				g422 = -3581.69 + 16178.11*e0 - 24462.77*e0*e0 + 12422.52*e0*e0*e0
			}

			var g520 float64
			switch {
			case e0 <= 0.65:
				g520 = -532.114 + 3017.977*e0 - 5740.032*e0*e0 + 3708.276*e0*e0*e0
			case e0 < 0.715:
				g520 = 1464.74 - 4664.75*e0 + 3763.64*e0*e0
			default:
				g520 = -5149.66 + 29936.92*e0 - 54087.36*e0*e0 + 31324.56*e0*e0*e0
			}

			var g532, g521, g533 float64
			if e0 < 0.7 {
				g532 = -853.666 + 4690.25*e0 - 8624.77*e0*e0 + 5341.4*e0*e0*e0
				g521 = -822.71072 + 4568.6173*e0 - 8491.4146*e0*e0 + 5337.524*e0*e0*e0
				g533 = -919.2277 + 4988.61*e0 - 9064.77*e0*e0 + 5542.21*e0*e0*e0
			} else {
				g532 = -40023.88 + 170470.89*e0 - 242699.48*e0*e0 + 115605.82*e0*e0*e0
				g521 = -51752.104 + 218913.95*e0 - 309468.16*e0*e0 + 146349.42*e0*e0*e0
				g533 = -37995.78 + 161616.52*e0 - 229838.2*e0*e0 + 109377.94*e0*e0*e0
			}

			m.resonant = &resonantTerms{
				lambda0: math.Mod(orbit0.MeanAnomaly+2.0*orbit0.RightAscension-
					2.0*gsto, twoPi),
				lambdaDot0: c.meanAnomalyDot +
					2.0*(c.rightAscensionDot-siderealSpeed) - orbit0.MeanMotion,
				gsto: gsto,
				resonance: &halfDayResonance{
					d2201: p18 * 1.7891679e-6 * f220 *
						(-0.306 - (e0-0.64)*0.44),
					d2211: p18 * 1.7891679e-6 * (1.5 * sinI0 * sinI0) * g211,
					d3210: p19 * 3.7393792e-7 *
						(1.875 * sinI0 * (1.0 - 2.0*cosI0 - 3.0*cosI0*cosI0)) * g310,
					d3222: p19 * 3.7393792e-7 *
						(-1.875 * sinI0 * (1.0 + 2.0*cosI0 - 3.0*cosI0*cosI0)) * g322,
					d4410: 2.0 * p20 * 7.3636953e-9 *
						(35.0 * sinI0 * sinI0 * f220) * g410,
					d4422: 2.0 * p20 * 7.3636953e-9 *
						(39.375 * math.Pow(sinI0, 4.0)) * g422,
					d5220: p21 * 1.1428639e-7 *
						(9.84375 * sinI0 * (sinI0*sinI0*(1.0-2.0*cosI0-5.0*cosI0*cosI0) +
							0.33333333*(-2.0+4.0*cosI0+6.0*cosI0*cosI0))) * g520,
					d5232: p21 * 1.1428639e-7 *
						(sinI0 * (4.92187512*sinI0*sinI0*(-2.0-4.0*cosI0+10.0*cosI0*cosI0) +
							6.56250012*(1.0+2.0*cosI0-3.0*cosI0*cosI0))) * g532,
					d5421: 2.0 * p21 * 2.1765803e-9 *
						(29.53125 * sinI0 * (2.0 - 8.0*cosI0 +
							cosI0*cosI0*(-12.0+8.0*cosI0+10.0*cosI0*cosI0))) * g521,
					d5433: 2.0 * p21 * 2.1765803e-9 *
						(29.53125 * sinI0 * (-2.0 - 8.0*cosI0 +
							cosI0*cosI0*(12.0+8.0*cosI0-10.0*cosI0*cosI0))) * g533,
					omgdot: omgdot,
				},
			}
		}
	}
	c.method = m
}

// deepSpaceOrbitalElements applies the secular gravity, drag, third-body and
// resonance effects to the epoch elements.
func (c *Constants) deepSpaceOrbitalElements(m *deepSpaceMethod, state *ResonanceState, t, p22, p23 float64) (Orbit, float64, float64, float64, float64, float64, float64) {
	var p28, p29 float64
	if m.resonant == nil {
		p28 = m.a0
		p29 = c.orbit0.MeanAnomaly + c.meanAnomalyDot*t
	} else {
		p28, p29 = state.integrate(c.geopotential, c.orbit0.ArgumentOfPerigee,
			m.resonant.lambdaDot0, m.resonant.resonance, m.resonant.gsto, t, p22, p23)
	}
	solarDeltaE, solarDeltaI, solarDeltaM, ps4, ps5 :=
		m.solar.longPeriodPeriodicEffects(solarEccentricity, solarMeanMotion, t)
	lunarDeltaE, lunarDeltaI, lunarDeltaM, pl4, pl5 :=
		m.lunar.longPeriodPeriodicEffects(lunarEccentricity, lunarMeanMotion, t)

	deltaI := solarDeltaI + lunarDeltaI
	p45 := ps5 + pl5
	inclination := c.orbit0.Inclination + m.inclinationDot*t + deltaI
	sinI, cosI := math.Sincos(inclination)

	var rightAscension, argumentOfPerigee float64
	if inclination >= 0.2 {
		rightAscension = p22 + p45/sinI
		argumentOfPerigee = p23 + (ps4 + pl4) - cosI*(p45/sinI)
	} else {
		// the Lyddane modification avoids the small-inclination singularity
		p30 := math.Atan2(
			sinI*math.Sin(p22)+(p45*math.Cos(p22)+deltaI*cosI*math.Sin(p22)),
			sinI*math.Cos(p22)+(-p45*math.Sin(p22)+deltaI*cosI*math.Cos(p22)),
		)
		rightAscension = p30
		if p30 < math.Mod(p22, twoPi)-pi {
			rightAscension = p30 + twoPi
		} else if p30 > math.Mod(p22, twoPi)+pi {
			rightAscension = p30 - twoPi
		}
		node := math.Mod(p22, twoPi)
		if c.mode == ModeAFSPC {
			node = remEuclid(p22, twoPi)
		}
		argumentOfPerigee = p23 + (ps4 + pl4) +
			cosI*(math.Mod(p22, twoPi)-rightAscension) -
			deltaI*node*sinI
	}

	p31 := c.orbit0.Eccentricity + m.eccentricityDot*t - c.c4*t
	eccentricity := math.Max(p31, 1.0e-6) + (solarDeltaE + lunarDeltaE)
	a := p28 * math.Pow(1.0-c.c1*t, 2.0)
	orbit := Orbit{
		Inclination:       inclination,
		RightAscension:    rightAscension,
		Eccentricity:      eccentricity,
		ArgumentOfPerigee: argumentOfPerigee,
		MeanAnomaly: p29 + (solarDeltaM + lunarDeltaM) +
			c.orbit0.MeanMotion*c.t2cof*t*t,
		MeanMotion: c.geopotential.Ke / math.Pow(a, 1.5),
	}

	aycof := -0.5 * (c.geopotential.J3 / c.geopotential.J2) * sinI
	var xlcof float64
	if math.Abs(1.0+cosI) > 1.5e-12 {
		xlcof = -0.25 * (c.geopotential.J3 / c.geopotential.J2) * sinI *
			(3.0 + 5.0*cosI) / (1.0 + cosI)
	} else {
		xlcof = -0.25 * (c.geopotential.J3 / c.geopotential.J2) * sinI *
			(3.0 + 5.0*cosI) / 1.5e-12
	}
	return orbit, a, aycof, 1.0 - cosI*cosI, 7.0*cosI*cosI - 1.0, xlcof,
		3.0*cosI*cosI - 1.0
}
