package sgp4

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

const issTLE2020 = `ISS (ZARYA)
1 25544U 98067A   20194.88612269 -.00002218  00000-0 -31515-4 0  9992
2 25544  51.6461 221.2784 0001413  89.1723 280.4612 15.49507896236008`

const molniyaTLE = `MOLNIYA 1-36
1 08195U 75081A   06176.33215444  .00000099  00000-0  11873-3 0   813
2 08195  64.1586 279.0717 6877146 264.7651  20.2257  2.00491383225656`

func TestNearEarthClassification(t *testing.T) {
	tle, err := ParseTLE(issTLE2020)
	if err != nil {
		t.Fatalf("Failed to parse TLE: %v", err)
	}
	constants, err := NewConstantsFromTLE(tle)
	if err != nil {
		t.Fatalf("NewConstantsFromTLE() error = %v", err)
	}

	method, ok := constants.method.(*nearEarthMethod)
	if !ok {
		t.Fatalf("method = %T, want *nearEarthMethod", constants.method)
	}
	// the ISS perigee is well above 220 km, so the higher order drag terms
	// are retained
	if method.high == nil {
		t.Fatal("high = nil, want the higher order drag terms")
	}
	// e = 0.0001413 is above the 1e-4 threshold
	if method.high.elliptic == nil {
		t.Error("elliptic = nil, want the elliptic correction terms")
	}
	if constants.InitialState() != nil {
		t.Error("InitialState() != nil for a near earth orbit")
	}
}

func TestLowPerigeeClassification(t *testing.T) {
	// circular orbit at roughly 190 km altitude
	orbit, err := OrbitFromKozaiElements(&WGS84, 51.0*deg2rad, 0.0, 0.0005, 0.0, 0.0, 0.0712)
	if err != nil {
		t.Fatalf("OrbitFromKozaiElements() error = %v", err)
	}
	constants, err := NewConstants(&WGS84, ModeIAU, 20.0, 1e-4, orbit)
	if err != nil {
		t.Fatalf("NewConstants() error = %v", err)
	}

	method, ok := constants.method.(*nearEarthMethod)
	if !ok {
		t.Fatalf("method = %T, want *nearEarthMethod", constants.method)
	}
	if method.high != nil {
		t.Error("high != nil, the higher order drag terms should be dropped below 220 km")
	}
}

func TestEllipticThreshold(t *testing.T) {
	// 700 km circular-ish orbit, perigee above the 220 km cutoff
	newConstants := func(eccentricity float64) *Constants {
		orbit, err := OrbitFromKozaiElements(&WGS84, 98.0*deg2rad, 1.0, eccentricity, 2.0, 3.0, 0.0636)
		if err != nil {
			t.Fatalf("OrbitFromKozaiElements() error = %v", err)
		}
		constants, err := NewConstants(&WGS84, ModeIAU, 20.0, 1e-5, orbit)
		if err != nil {
			t.Fatalf("NewConstants() error = %v", err)
		}
		return constants
	}

	// e = 1e-4 is *not* above the threshold
	method := newConstants(1.0e-4).method.(*nearEarthMethod)
	if method.high == nil {
		t.Fatal("high = nil, want the higher order drag terms")
	}
	if method.high.elliptic != nil {
		t.Error("elliptic != nil at the e = 1e-4 boundary")
	}

	method = newConstants(1.1e-4).method.(*nearEarthMethod)
	if method.high == nil {
		t.Fatal("high = nil, want the higher order drag terms")
	}
	if method.high.elliptic == nil {
		t.Error("elliptic = nil just above the e = 1e-4 boundary")
	}
}

func TestDeepSpaceClassification(t *testing.T) {
	t.Run("Molniya half day resonance", func(t *testing.T) {
		tle, err := ParseTLE(molniyaTLE)
		if err != nil {
			t.Fatalf("Failed to parse TLE: %v", err)
		}
		constants, err := NewConstantsFromTLE(tle)
		if err != nil {
			t.Fatalf("NewConstantsFromTLE() error = %v", err)
		}
		method, ok := constants.method.(*deepSpaceMethod)
		if !ok {
			t.Fatalf("method = %T, want *deepSpaceMethod", constants.method)
		}
		if method.resonant == nil {
			t.Fatal("resonant = nil for a Molniya orbit")
		}
		if _, ok := method.resonant.resonance.(*halfDayResonance); !ok {
			t.Errorf("resonance = %T, want *halfDayResonance", method.resonant.resonance)
		}
		if constants.InitialState() == nil {
			t.Error("InitialState() = nil for a resonant orbit")
		}
	})

	t.Run("Geosynchronous one day resonance", func(t *testing.T) {
		orbit, err := OrbitFromKozaiElements(&WGS84, 0.05, 1.0, 0.001, 2.0, 3.0, 2.0*pi/1436.0)
		if err != nil {
			t.Fatalf("OrbitFromKozaiElements() error = %v", err)
		}
		constants, err := NewConstants(&WGS84, ModeIAU, 20.0, 0.0, orbit)
		if err != nil {
			t.Fatalf("NewConstants() error = %v", err)
		}
		method, ok := constants.method.(*deepSpaceMethod)
		if !ok {
			t.Fatalf("method = %T, want *deepSpaceMethod", constants.method)
		}
		if method.resonant == nil {
			t.Fatal("resonant = nil for a geosynchronous orbit")
		}
		if _, ok := method.resonant.resonance.(*oneDayResonance); !ok {
			t.Errorf("resonance = %T, want *oneDayResonance", method.resonant.resonance)
		}
	})

	t.Run("Half synchronous non resonant", func(t *testing.T) {
		// GPS-like: roughly two revolutions per day but nearly circular,
		// so the half day resonance condition e >= 0.5 does not hold
		orbit, err := OrbitFromKozaiElements(&WGS84, 55.0*deg2rad, 1.0, 0.01, 2.0, 3.0, 8.75e-3)
		if err != nil {
			t.Fatalf("OrbitFromKozaiElements() error = %v", err)
		}
		constants, err := NewConstants(&WGS84, ModeIAU, 20.0, 0.0, orbit)
		if err != nil {
			t.Fatalf("NewConstants() error = %v", err)
		}
		method, ok := constants.method.(*deepSpaceMethod)
		if !ok {
			t.Fatalf("method = %T, want *deepSpaceMethod", constants.method)
		}
		if method.resonant != nil {
			t.Error("resonant != nil for a near circular half synchronous orbit")
		}
		if constants.InitialState() != nil {
			t.Error("InitialState() != nil for a non resonant orbit")
		}
	})
}

func TestKozaiToBrouwer(t *testing.T) {
	kozai := 15.49507896 * (pi / 720.0)
	orbit, err := OrbitFromKozaiElements(&WGS84, 51.6461*deg2rad, 1.0, 0.0001413, 2.0, 3.0, kozai)
	if err != nil {
		t.Fatalf("OrbitFromKozaiElements() error = %v", err)
	}

	// the conversion is a small correction and leaves the other elements
	// untouched
	if orbit.MeanMotion == kozai {
		t.Error("Brouwer mean motion equals the Kozai mean motion")
	}
	if math.Abs(orbit.MeanMotion-kozai)/kozai > 1e-3 {
		t.Errorf("Brouwer correction too large: %v vs %v", orbit.MeanMotion, kozai)
	}
	if orbit.Inclination != 51.6461*deg2rad || orbit.RightAscension != 1.0 ||
		orbit.Eccentricity != 0.0001413 || orbit.ArgumentOfPerigee != 2.0 ||
		orbit.MeanAnomaly != 3.0 {
		t.Error("the Kozai conversion modified an element other than the mean motion")
	}
}

func TestInitializationErrors(t *testing.T) {
	if _, err := OrbitFromKozaiElements(&WGS84, 0.9, 1.0, 0.01, 2.0, 3.0, 0.0); err == nil {
		t.Error("expected an error for a non positive Kozai mean motion")
	}
	if _, err := OrbitFromKozaiElements(&WGS84, 0.9, 1.0, 0.01, 2.0, 3.0, -0.01); err == nil {
		t.Error("expected an error for a negative Kozai mean motion")
	}

	orbit := Orbit{Inclination: 0.9, Eccentricity: 1.5, MeanMotion: 0.07}
	if _, err := NewConstants(&WGS84, ModeIAU, 20.0, 0.0, orbit); err == nil {
		t.Error("expected an error for an eccentricity above 1")
	}
	orbit.Eccentricity = -0.1
	if _, err := NewConstants(&WGS84, ModeIAU, 20.0, 0.0, orbit); err == nil {
		t.Error("expected an error for a negative eccentricity")
	}
}

func TestPropagationIsDeterministic(t *testing.T) {
	tle, err := ParseTLE(issTLE2020)
	if err != nil {
		t.Fatalf("Failed to parse TLE: %v", err)
	}

	first, err := NewConstantsFromTLE(tle)
	if err != nil {
		t.Fatalf("NewConstantsFromTLE() error = %v", err)
	}
	second, err := NewConstantsFromTLE(tle)
	if err != nil {
		t.Fatalf("NewConstantsFromTLE() error = %v", err)
	}

	for _, minutes := range []float64{-360.0, 0.0, 123.456, 1440.0} {
		a := first.Propagate(minutes)
		b := second.Propagate(minutes)
		if !floats.Equal(a.Position[:], b.Position[:]) ||
			!floats.Equal(a.Velocity[:], b.Velocity[:]) {
			t.Errorf("t=%v: predictions differ between identical propagators", minutes)
		}
	}
}
