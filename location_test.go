package sgp4

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestLookAngleOverhead(t *testing.T) {
	dt := time.Date(2025, 3, 21, 6, 0, 0, 0, time.UTC)
	loc := &Location{Latitude: 46.83, Longitude: -71.25, Altitude: 0}

	// satellite 500 km straight above the observer
	eci := &Eci{DateTime: dt, Position: geodeticToEci(loc.Latitude, loc.Longitude, 500.0, dt)}
	obs, err := eci.LookAngle(loc)
	if err != nil {
		t.Fatalf("LookAngle() error = %v", err)
	}

	if math.Abs(obs.LookAngles.Elevation-90.0) > 0.1 {
		t.Errorf("elevation = %.3f, want ~90", obs.LookAngles.Elevation)
	}
	if math.Abs(obs.LookAngles.Range-500.0) > 5.0 {
		t.Errorf("range = %.3f km, want ~500", obs.LookAngles.Range)
	}
	if math.Abs(obs.SatellitePos.Latitude-loc.Latitude) > 0.01 {
		t.Errorf("satellite latitude = %.4f, want %.4f", obs.SatellitePos.Latitude, loc.Latitude)
	}
}

func TestLookAngleAzimuth(t *testing.T) {
	dt := time.Date(2025, 3, 21, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		locLat float64
		locLon float64
		satLat float64
		satLon float64
		wantAz float64
	}{
		{"Due north", 45.0, 10.0, 50.0, 10.0, 0.0},
		{"Due south", 45.0, 10.0, 40.0, 10.0, 180.0},
		{"Due east", 0.0, 0.0, 0.0, 5.0, 90.0},
		{"Due west", 0.0, 0.0, 0.0, -5.0, 270.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := &Location{Latitude: tt.locLat, Longitude: tt.locLon}
			eci := &Eci{DateTime: dt, Position: geodeticToEci(tt.satLat, tt.satLon, 800.0, dt)}
			obs, err := eci.LookAngle(loc)
			if err != nil {
				t.Fatalf("LookAngle() error = %v", err)
			}

			diff := math.Abs(obs.LookAngles.Azimuth - tt.wantAz)
			if diff > 180.0 {
				diff = 360.0 - diff
			}
			if diff > 1.0 {
				t.Errorf("azimuth = %.3f, want %.1f (±1)", obs.LookAngles.Azimuth, tt.wantAz)
			}
			if obs.LookAngles.Elevation <= 0.0 {
				t.Errorf("elevation = %.3f, want above the horizon", obs.LookAngles.Elevation)
			}
		})
	}
}

func TestLookAngleErrors(t *testing.T) {
	eci := &Eci{
		DateTime: time.Date(2025, 3, 21, 6, 0, 0, 0, time.UTC),
		Position: Vector{X: 7000, Y: 0, Z: 0},
	}

	if _, err := eci.LookAngle(nil); err != ErrLocationNil {
		t.Errorf("LookAngle(nil) error = %v, want ErrLocationNil", err)
	}
	if _, err := eci.LookAngle(&Location{Latitude: 91.0}); err != ErrInvalidLocationLatitude {
		t.Errorf("LookAngle() error = %v, want ErrInvalidLocationLatitude", err)
	}
	if _, err := eci.LookAngle(&Location{Latitude: -91.0}); err != ErrInvalidLocationLatitude {
		t.Errorf("LookAngle() error = %v, want ErrInvalidLocationLatitude", err)
	}

	// observer validation reports the same domain error type as element
	// validation
	var domainErr *Error
	if _, err := eci.LookAngle(nil); !errors.As(err, &domainErr) {
		t.Errorf("LookAngle(nil) error = %T, want *Error", err)
	}
}

func TestLookAngleRangeRate(t *testing.T) {
	satellite, err := SatelliteFromTLE(issTLE2020)
	if err != nil {
		t.Fatalf("SatelliteFromTLE() error = %v", err)
	}
	loc := &Location{Latitude: 30.6715, Longitude: -104.0227, Altitude: 2070}

	// the range rate matches the finite difference of the range
	t0 := satellite.Epoch.Add(10 * time.Minute)
	t1 := t0.Add(time.Second)

	state0 := satellite.StateAt(t0)
	obs0, err := state0.LookAngle(loc)
	if err != nil {
		t.Fatalf("LookAngle() error = %v", err)
	}
	state1 := satellite.StateAt(t1)
	obs1, err := state1.LookAngle(loc)
	if err != nil {
		t.Fatalf("LookAngle() error = %v", err)
	}

	finiteDifference := obs1.LookAngles.Range - obs0.LookAngles.Range
	if math.Abs(obs0.LookAngles.RangeRate-finiteDifference) > 0.05 {
		t.Errorf("range rate = %.4f km/s, finite difference gives %.4f",
			obs0.LookAngles.RangeRate, finiteDifference)
	}
}
