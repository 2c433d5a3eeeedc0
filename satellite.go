package sgp4

import (
	"fmt"
	"time"
)

// NewConstantsFromTLE initializes a propagator from a parsed TLE record.
// This is the recommended constructor for new applications; it uses the WGS84
// model, the IAU sidereal time expression and the accurate UTC to J2000
// conversion.
func NewConstantsFromTLE(tle *TLE) (*Constants, error) {
	return constantsFromElements(&WGS84, ModeIAU, tle.Epoch(), tle)
}

// NewConstantsFromTLEAFSPC initializes a propagator reproducing the AFSPC
// implementation: the WGS72 model, the AFSPC sidereal time expression and the
// AFSPC UTC to J2000 conversion.
func NewConstantsFromTLEAFSPC(tle *TLE) (*Constants, error) {
	return constantsFromElements(&WGS72, ModeAFSPC, tle.EpochAFSPC(), tle)
}

// NewConstantsFromOMM initializes a propagator from an OMM record with the
// same conventions as NewConstantsFromTLE.
func NewConstantsFromOMM(omm *OMM) (*Constants, error) {
	epoch, err := omm.EpochJ2000()
	if err != nil {
		return nil, err
	}
	tle, err := omm.ToTLE()
	if err != nil {
		return nil, err
	}
	return constantsFromElements(&WGS84, ModeIAU, epoch, tle)
}

// NewConstantsFromOMMAFSPC initializes a propagator from an OMM record with
// the same conventions as NewConstantsFromTLEAFSPC.
func NewConstantsFromOMMAFSPC(omm *OMM) (*Constants, error) {
	epoch, err := omm.EpochJ2000AFSPC()
	if err != nil {
		return nil, err
	}
	tle, err := omm.ToTLE()
	if err != nil {
		return nil, err
	}
	return constantsFromElements(&WGS72, ModeAFSPC, epoch, tle)
}

func constantsFromElements(geopotential *Geopotential, mode Mode, epoch float64, tle *TLE) (*Constants, error) {
	orbit0, err := OrbitFromKozaiElements(
		geopotential,
		tle.Inclination*deg2rad,
		tle.RightAscension*deg2rad,
		tle.Eccentricity,
		tle.ArgOfPerigee*deg2rad,
		tle.MeanAnomaly*deg2rad,
		tle.MeanMotion*(pi/720.0),
	)
	if err != nil {
		return nil, err
	}
	return NewConstants(geopotential, mode, epoch, tle.Bstar, orbit0)
}

// Satellite binds a propagator to its identity and epoch, giving a
// wall-clock API on top of the minutes-since-epoch one.
type Satellite struct {
	Name    string
	NoradID int
	Epoch   time.Time

	*Constants
}

// SatelliteFromTLE builds a Satellite from a TLE string (two or three
// lines).
func SatelliteFromTLE(input string) (*Satellite, error) {
	tle, err := ParseTLE(input)
	if err != nil {
		return nil, err
	}
	constants, err := NewConstantsFromTLE(tle)
	if err != nil {
		return nil, fmt.Errorf("initializing propagator for %d: %w", tle.SatelliteNumber, err)
	}
	return &Satellite{
		Name:      tle.Name,
		NoradID:   tle.SatelliteNumber,
		Epoch:     tle.EpochTime(),
		Constants: constants,
	}, nil
}

// SatelliteFromOMM builds a Satellite from a parsed OMM record.
func SatelliteFromOMM(omm *OMM) (*Satellite, error) {
	constants, err := NewConstantsFromOMM(omm)
	if err != nil {
		return nil, fmt.Errorf("initializing propagator for %d: %w", omm.NoradCatID, err)
	}
	epoch, err := omm.EpochTime()
	if err != nil {
		return nil, err
	}
	return &Satellite{
		Name:      omm.ObjectName,
		NoradID:   omm.NoradCatID,
		Epoch:     epoch,
		Constants: constants,
	}, nil
}

// StateAt propagates to an absolute time.
func (s *Satellite) StateAt(t time.Time) Eci {
	prediction := s.Propagate(t.Sub(s.Epoch).Minutes())
	return Eci{
		DateTime: t,
		Position: Vector{
			X: prediction.Position[0],
			Y: prediction.Position[1],
			Z: prediction.Position[2],
		},
		Velocity: Vector{
			X: prediction.Velocity[0],
			Y: prediction.Velocity[1],
			Z: prediction.Velocity[2],
		},
	}
}
