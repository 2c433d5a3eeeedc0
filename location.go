package sgp4

import (
	"math"
	"time"
)

// ErrLocationNil is returned when the location is nil.
var ErrLocationNil = newError("location cannot be nil")

// ErrInvalidLocationLatitude is returned for latitudes outside [-90, 90].
var ErrInvalidLocationLatitude = newError("invalid location latitude")

// Location represents a ground station or observation point on Earth.
type Location struct {
	Latitude  float64 // degrees, North positive
	Longitude float64 // degrees, East positive
	Altitude  float64 // meters above sea level
}

// TopocentricCoords represents the position of a satellite relative to an
// observation point in a local horizontal coordinate system.
type TopocentricCoords struct {
	Azimuth   float64 // degrees clockwise from true North (0° to 360°)
	Elevation float64 // degrees above the local horizon (-90° to 90°)
	Range     float64 // distance in km from observer to satellite
	RangeRate float64 // rate of change of range in km/s (positive = moving away)
}

// SatellitePosition is the geodetic position of the satellite.
type SatellitePosition struct {
	Latitude  float64 // degrees
	Longitude float64 // degrees
	Altitude  float64 // km above the ellipsoid
	Timestamp time.Time
}

// Observation combines a satellite geodetic position and the look angles
// from a ground station.
type Observation struct {
	SatellitePos SatellitePosition
	LookAngles   TopocentricCoords
}

// ecef returns the observer's earth-fixed cartesian coordinates in km.
func (loc *Location) ecef() (x, y, z float64) {
	latRad := loc.Latitude * deg2rad
	lonRad := loc.Longitude * deg2rad
	altKm := loc.Altitude / 1000.0
	e2 := earthFlattening * (2.0 - earthFlattening)

	sinLat := math.Sin(latRad)
	cosLat := math.Cos(latRad)
	n := earthRadiusKm / math.Sqrt(1.0-e2*sinLat*sinLat)

	x = (n + altKm) * cosLat * math.Cos(lonRad)
	y = (n + altKm) * cosLat * math.Sin(lonRad)
	z = (n*(1.0-e2) + altKm) * sinLat
	return x, y, z
}

// LookAngle calculates the topocentric coordinates of a satellite state
// relative to the given observation location.
func (eci *Eci) LookAngle(loc *Location) (*Observation, error) {
	if loc == nil {
		return nil, ErrLocationNil
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return nil, ErrInvalidLocationLatitude
	}

	gmst := eci.GreenwichSiderealTime()
	sinGmst, cosGmst := math.Sincos(gmst)

	// rotate the observer into the inertial frame
	obsXecef, obsYecef, obsZecef := loc.ecef()
	obsX := obsXecef*cosGmst - obsYecef*sinGmst
	obsY := obsXecef*sinGmst + obsYecef*cosGmst
	obsZ := obsZecef

	rx := eci.Position.X - obsX
	ry := eci.Position.Y - obsY
	rz := eci.Position.Z - obsZ
	rng := math.Sqrt(rx*rx + ry*ry + rz*rz)
	if rng == 0 {
		rng = 1e-9
	}

	// rotate the range vector into the topocentric-horizon frame using the
	// local sidereal time
	latRad := loc.Latitude * deg2rad
	lst := gmst + loc.Longitude*deg2rad
	sinLat, cosLat := math.Sincos(latRad)
	sinLst, cosLst := math.Sincos(lst)

	topS := sinLat*cosLst*rx + sinLat*sinLst*ry - cosLat*rz
	topE := -sinLst*rx + cosLst*ry
	topZ := cosLat*cosLst*rx + cosLat*sinLst*ry + sinLat*rz

	// azimuth clockwise from north: atan2(E, N) with N = -S
	azimuth := math.Atan2(topE, -topS) * rad2deg
	if azimuth < 0.0 {
		azimuth += 360.0
	}
	elevation := math.Asin(topZ/rng) * rad2deg

	// observer velocity from the earth rotation
	deltaVX := eci.Velocity.X + earthRotationRate*obsY
	deltaVY := eci.Velocity.Y - earthRotationRate*obsX
	deltaVZ := eci.Velocity.Z
	rangeRate := (rx*deltaVX + ry*deltaVY + rz*deltaVZ) / rng

	satLat, satLon, satAlt := eci.ToGeodetic()
	return &Observation{
		SatellitePos: SatellitePosition{
			Latitude:  satLat,
			Longitude: satLon,
			Altitude:  satAlt,
			Timestamp: eci.DateTime,
		},
		LookAngles: TopocentricCoords{
			Azimuth:   azimuth,
			Elevation: elevation,
			Range:     rng,
			RangeRate: rangeRate,
		},
	}, nil
}
