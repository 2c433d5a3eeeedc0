package sgp4

import (
	"fmt"
	"time"
)

// PassDataPoint stores the look angles at a single instant during a pass.
type PassDataPoint struct {
	Timestamp time.Time
	Azimuth   float64 // degrees
	Elevation float64 // degrees
	Range     float64 // km
	RangeRate float64 // km/s
}

// PassDetails describes a single satellite pass over a ground station.
type PassDetails struct {
	AOS              time.Time // acquisition of signal
	LOS              time.Time // loss of signal
	AOSAzimuth       float64   // degrees
	LOSAzimuth       float64   // degrees
	MaxElevation     float64   // degrees
	MaxElevationAz   float64   // degrees
	MaxElevationTime time.Time
	Duration         time.Duration
	DataPoints       []PassDataPoint
}

func (s *Satellite) observationAt(t time.Time, loc *Location) (*Observation, error) {
	state := s.StateAt(t)
	return state.LookAngle(loc)
}

// refineCrossing finds the time where the elevation crosses threshold
// between t1 and t2 by bisection. rising selects an AOS or LOS crossing.
func (s *Satellite) refineCrossing(loc *Location, t1, t2 time.Time, threshold float64, rising bool) time.Time {
	for i := 0; i < 30 && t2.Sub(t1) > 10*time.Millisecond; i++ {
		mid := t1.Add(t2.Sub(t1) / 2)
		obs, err := s.observationAt(mid, loc)
		if err != nil {
			return mid
		}
		above := obs.LookAngles.Elevation >= threshold
		if above == rising {
			t2 = mid
		} else {
			t1 = mid
		}
	}
	return t1.Add(t2.Sub(t1) / 2)
}

// refineMaxElevation narrows down the elevation maximum around a coarse
// estimate by ternary search.
func (s *Satellite) refineMaxElevation(loc *Location, t1, t2 time.Time) (time.Time, *Observation) {
	elevationAt := func(t time.Time) float64 {
		obs, err := s.observationAt(t, loc)
		if err != nil {
			return -90.0
		}
		return obs.LookAngles.Elevation
	}
	for i := 0; i < 40 && t2.Sub(t1) > 100*time.Millisecond; i++ {
		third := t2.Sub(t1) / 3
		left := t1.Add(third)
		right := t2.Add(-third)
		if elevationAt(left) < elevationAt(right) {
			t1 = left
		} else {
			t2 = right
		}
	}
	peak := t1.Add(t2.Sub(t1) / 2)
	obs, _ := s.observationAt(peak, loc)
	return peak, obs
}

// GeneratePasses predicts the passes of the satellite over loc between start
// and stop, sampling elevation every step, and keeps the passes culminating
// at minElevation degrees or higher. DataPoints are recorded at the sampling
// resolution for plotting.
func (s *Satellite) GeneratePasses(loc *Location, start, stop time.Time, step time.Duration, minElevation float64) ([]PassDetails, error) {
	if start.After(stop) {
		return nil, fmt.Errorf("start time must be before stop time")
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive")
	}

	var passes []PassDetails
	var current *PassDetails
	var wasAboveHorizon bool

	for t := start; !t.After(stop); t = t.Add(step) {
		obs, err := s.observationAt(t, loc)
		if err != nil {
			return nil, fmt.Errorf("look angle at %s: %w", t.Format(time.RFC3339), err)
		}
		aboveHorizon := obs.LookAngles.Elevation >= 0.0

		if aboveHorizon && current == nil {
			aos := t
			if !wasAboveHorizon && t.After(start) {
				aos = s.refineCrossing(loc, t.Add(-step), t, 0.0, true)
			}
			aosObs, err := s.observationAt(aos, loc)
			if err != nil {
				aosObs = obs
			}
			current = &PassDetails{
				AOS:              aos,
				AOSAzimuth:       aosObs.LookAngles.Azimuth,
				MaxElevation:     aosObs.LookAngles.Elevation,
				MaxElevationAz:   aosObs.LookAngles.Azimuth,
				MaxElevationTime: aos,
			}
		}
		if current != nil {
			if aboveHorizon {
				current.DataPoints = append(current.DataPoints, PassDataPoint{
					Timestamp: t,
					Azimuth:   obs.LookAngles.Azimuth,
					Elevation: obs.LookAngles.Elevation,
					Range:     obs.LookAngles.Range,
					RangeRate: obs.LookAngles.RangeRate,
				})
				if obs.LookAngles.Elevation > current.MaxElevation {
					current.MaxElevation = obs.LookAngles.Elevation
					current.MaxElevationAz = obs.LookAngles.Azimuth
					current.MaxElevationTime = t
				}
			} else {
				los := s.refineCrossing(loc, t.Add(-step), t, 0.0, false)
				losObs, err := s.observationAt(los, loc)
				if err != nil {
					losObs = obs
				}
				current.LOS = los
				current.LOSAzimuth = losObs.LookAngles.Azimuth
				s.finishPass(loc, current, step)
				if current.MaxElevation >= minElevation {
					passes = append(passes, *current)
				}
				current = nil
			}
		}
		wasAboveHorizon = aboveHorizon
	}

	// pass still in progress at the end of the window
	if current != nil {
		current.LOS = stop
		if obs, err := s.observationAt(stop, loc); err == nil {
			current.LOSAzimuth = obs.LookAngles.Azimuth
		}
		s.finishPass(loc, current, step)
		if current.MaxElevation >= minElevation {
			passes = append(passes, *current)
		}
	}
	return passes, nil
}

func (s *Satellite) finishPass(loc *Location, pass *PassDetails, step time.Duration) {
	peakStart := pass.MaxElevationTime.Add(-step)
	if peakStart.Before(pass.AOS) {
		peakStart = pass.AOS
	}
	peakEnd := pass.MaxElevationTime.Add(step)
	if peakEnd.After(pass.LOS) {
		peakEnd = pass.LOS
	}
	peak, obs := s.refineMaxElevation(loc, peakStart, peakEnd)
	if obs != nil && obs.LookAngles.Elevation > pass.MaxElevation {
		pass.MaxElevation = obs.LookAngles.Elevation
		pass.MaxElevationAz = obs.LookAngles.Azimuth
		pass.MaxElevationTime = peak
	}
	pass.Duration = pass.LOS.Sub(pass.AOS)
}
