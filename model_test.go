package sgp4

import (
	"math"
	"testing"
)

func TestEpochToSiderealTime(t *testing.T) {
	// 2004 April 6 07:51:28.386 UTC, JD 2453101.8274067827; the published
	// Greenwich mean sidereal time for this instant is 312.8098943 degrees
	jd := 2453101.8274067827
	epoch := (jd - 2451545.0) / 365.25

	iau := IAUEpochToSiderealTime(epoch)
	if want := 5.459562584756135; math.Abs(iau-want) > 1e-12 {
		t.Errorf("IAUEpochToSiderealTime(%v) = %.15f, want %.15f", epoch, iau, want)
	}

	// the AFSPC expression agrees to within a fraction of a milliarcsecond
	afspc := AFSPCEpochToSiderealTime(epoch)
	if math.Abs(afspc-iau) > 1e-9 {
		t.Errorf("AFSPCEpochToSiderealTime(%v) = %.15f, IAU gives %.15f", epoch, afspc, iau)
	}

	if got := ModeIAU.epochToSiderealTime(epoch); got != iau {
		t.Errorf("ModeIAU.epochToSiderealTime = %v, want %v", got, iau)
	}
	if got := ModeAFSPC.epochToSiderealTime(epoch); got != afspc {
		t.Errorf("ModeAFSPC.epochToSiderealTime = %v, want %v", got, afspc)
	}
}

func TestRemEuclid(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		y    float64
		want float64
	}{
		{"Positive in range", 1.0, twoPi, 1.0},
		{"Positive wrapped", twoPi + 1.0, twoPi, 1.0},
		{"Negative", -1.0, twoPi, twoPi - 1.0},
		{"Negative wrapped", -twoPi - 1.0, twoPi, twoPi - 1.0},
		{"Zero", 0.0, twoPi, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := remEuclid(tt.x, tt.y); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("remEuclid(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// math.Mod keeps the sign of x, remEuclid never returns a negative value
	if got := remEuclid(-0.5, twoPi); got < 0 {
		t.Errorf("remEuclid returned a negative value: %v", got)
	}
}

func TestGeopotentialModels(t *testing.T) {
	for _, tt := range []struct {
		name  string
		model Geopotential
		ae    float64
	}{
		{"WGS72 old", WGS72Old, 6378.135},
		{"WGS72", WGS72, 6378.135},
		{"WGS84", WGS84, 6378.137},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if tt.model.Ae != tt.ae {
				t.Errorf("Ae = %v, want %v", tt.model.Ae, tt.ae)
			}
			if tt.model.J2 <= 0 || tt.model.J3 >= 0 || tt.model.J4 >= 0 {
				t.Errorf("unexpected zonal harmonic signs: J2=%v J3=%v J4=%v",
					tt.model.J2, tt.model.J3, tt.model.J4)
			}
			if tt.model.Ke <= 0 {
				t.Errorf("Ke = %v, want > 0", tt.model.Ke)
			}
		})
	}
}
