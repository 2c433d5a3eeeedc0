package sgp4

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// WGS84 ellipsoid shape for the geodetic conversions.
const (
	earthRadiusKm   = 6378.137
	earthFlattening = 1.0 / 298.257223563
)

// sidereal rotation rate of the earth in rad/s
const earthRotationRate = 7.2921150e-5

// Vector holds cartesian components. Position vectors are in km, velocity
// vectors in km/s.
type Vector struct {
	X, Y, Z float64
}

// Eci is a satellite state in the True Equator Mean Equinox frame, stamped
// with the time it was propagated to.
type Eci struct {
	DateTime time.Time
	Position Vector
	Velocity Vector
}

// GreenwichSiderealTime returns the Greenwich Mean Sidereal Time in rad at
// the state's timestamp.
func (eci *Eci) GreenwichSiderealTime() float64 {
	jd := julian.TimeToJD(eci.DateTime.UTC())
	t := (jd - 2451545.0) / 36525.0
	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*t*t -
		t*t*t/38710000.0
	return remEuclid(gmst, 360.0) * deg2rad
}

// ToGeodetic converts the state to geodetic latitude and longitude in
// degrees and altitude in km above the WGS84 ellipsoid.
func (eci *Eci) ToGeodetic() (lat, lon, alt float64) {
	e2 := earthFlattening * (2.0 - earthFlattening)
	gmst := eci.GreenwichSiderealTime()
	x, y, z := eci.Position.X, eci.Position.Y, eci.Position.Z

	lon = wrapLongitude(math.Atan2(y, x) - gmst)
	r := math.Sqrt(x*x + y*y)
	lat = math.Atan2(z, r)

	// fixed-point iteration on the geodetic latitude
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		c := 1.0 / math.Sqrt(1.0-e2*sinLat*sinLat)
		next := math.Atan2(z+earthRadiusKm*c*e2*sinLat, r)
		if math.Abs(next-lat) < 1e-10 {
			lat = next
			break
		}
		lat = next
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := earthRadiusKm / math.Sqrt(1.0-e2*sinLat*sinLat)
	if math.Abs(cosLat) < 1e-10 {
		alt = math.Abs(z) - earthRadiusKm*math.Sqrt(1.0-e2)
	} else {
		alt = r/cosLat - n
	}
	return lat * rad2deg, lon * rad2deg, alt
}

func wrapLongitude(lon float64) float64 {
	lon = math.Mod(lon, twoPi)
	if lon > pi {
		lon -= twoPi
	} else if lon < -pi {
		lon += twoPi
	}
	return lon
}
