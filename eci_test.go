package sgp4

import (
	"math"
	"testing"
	"time"
)

func TestGreenwichSiderealTime(t *testing.T) {
	// 2004 April 6 07:51:28.386 UTC; the published GMST is 312.8098943
	// degrees
	eci := &Eci{DateTime: time.Date(2004, 4, 6, 7, 51, 28, 386000000, time.UTC)}
	got := eci.GreenwichSiderealTime()
	want := 312.8098943 * deg2rad
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("GreenwichSiderealTime() = %.9f rad, want %.9f", got, want)
	}
}

// geodeticToEci is the inverse of ToGeodetic, used to exercise round trips.
func geodeticToEci(latDeg, lonDeg, altKm float64, dt time.Time) Vector {
	latRad := latDeg * deg2rad
	lonRad := lonDeg * deg2rad
	e2 := earthFlattening * (2.0 - earthFlattening)

	sinLat := math.Sin(latRad)
	cosLat := math.Cos(latRad)
	n := earthRadiusKm / math.Sqrt(1.0-e2*sinLat*sinLat)

	ecefX := (n + altKm) * cosLat * math.Cos(lonRad)
	ecefY := (n + altKm) * cosLat * math.Sin(lonRad)
	ecefZ := (n*(1.0-e2) + altKm) * sinLat

	gmst := (&Eci{DateTime: dt}).GreenwichSiderealTime()
	return Vector{
		X: ecefX*math.Cos(gmst) - ecefY*math.Sin(gmst),
		Y: ecefX*math.Sin(gmst) + ecefY*math.Cos(gmst),
		Z: ecefZ,
	}
}

func TestToGeodeticRoundTrip(t *testing.T) {
	dt := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		lat  float64
		lon  float64
		alt  float64
	}{
		{"Equator prime meridian", 0.0, 0.0, 0.0},
		{"Equator 90E", 0.0, 90.0, 400.0},
		{"Mid latitude", 46.83, -71.25, 550.0},
		{"Southern hemisphere", -33.87, 151.21, 700.0},
		{"Near date line", 10.0, 179.9, 400.0},
		{"High latitude", 80.0, 30.0, 800.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eci := &Eci{DateTime: dt, Position: geodeticToEci(tt.lat, tt.lon, tt.alt, dt)}
			lat, lon, alt := eci.ToGeodetic()
			if math.Abs(lat-tt.lat) > 1e-4 {
				t.Errorf("latitude = %.6f, want %.6f", lat, tt.lat)
			}
			if math.Abs(lon-tt.lon) > 1e-4 {
				t.Errorf("longitude = %.6f, want %.6f", lon, tt.lon)
			}
			if math.Abs(alt-tt.alt) > 1e-3 {
				t.Errorf("altitude = %.6f, want %.6f", alt, tt.alt)
			}
		})
	}
}

func TestToGeodeticPoles(t *testing.T) {
	dt := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, tt := range []struct {
		name string
		lat  float64
		alt  float64
	}{
		{"North pole", 90.0, 700.0},
		{"South pole", -90.0, 200.0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			eci := &Eci{DateTime: dt, Position: geodeticToEci(tt.lat, 0.0, tt.alt, dt)}
			lat, _, alt := eci.ToGeodetic()
			if math.Abs(lat-tt.lat) > 1e-4 {
				t.Errorf("latitude = %.6f, want %.6f", lat, tt.lat)
			}
			if math.Abs(alt-tt.alt) > 1e-3 {
				t.Errorf("altitude = %.6f, want %.6f", alt, tt.alt)
			}
		})
	}
}

func TestWrapLongitude(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.0, 0.0},
		{pi / 2.0, pi / 2.0},
		{pi + 0.1, -pi + 0.1},
		{-pi - 0.1, pi - 0.1},
		{twoPi, 0.0},
	}
	for _, tt := range tests {
		if got := wrapLongitude(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("wrapLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
