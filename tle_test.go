package sgp4

import (
	"math"
	"testing"
	"time"
)

func TestParseTLE(t *testing.T) {
	issTLE := `ISS (ZARYA)
1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537`

	tle, err := ParseTLE(issTLE)
	if err != nil {
		t.Fatalf("Failed to parse ISS TLE: %v", err)
	}

	tests := []struct {
		name    string
		got     interface{}
		want    interface{}
		epsilon float64
		compare func(got, want interface{}, epsilon float64) bool
	}{
		{"Name", tle.Name, "ISS (ZARYA)", 0, compareExact},
		{"Satellite Number", tle.SatelliteNumber, 25544, 0, compareExact},
		{"Classification", string(tle.Classification), "U", 0, compareExact},
		{"International ID", tle.International, "98067A", 0, compareExact},
		{"Epoch Year", tle.EpochYear, 2008, 0, compareExact},
		{"Epoch Day", tle.EpochDay, 264.51782528, 1e-8, compareFloat},
		{"Mean Motion Dot", tle.MeanMotionDot, -0.00002182, 1e-10, compareFloat},
		{"Mean Motion DDot", tle.MeanMotionDDot, 0.0, 1e-12, compareFloat},
		{"B* Drag Term", tle.Bstar, -0.11606e-4, 1e-10, compareFloat},
		{"Element Set Number", tle.ElementSetNumber, 292, 0, compareExact},

		// Line 2 fields
		{"Inclination", tle.Inclination, 51.6416, 1e-4, compareFloat},
		{"Right Ascension", tle.RightAscension, 247.4627, 1e-4, compareFloat},
		{"Eccentricity", tle.Eccentricity, 0.0006703, 1e-7, compareFloat},
		{"Argument of Perigee", tle.ArgOfPerigee, 130.5360, 1e-4, compareFloat},
		{"Mean Anomaly", tle.MeanAnomaly, 325.0288, 1e-4, compareFloat},
		{"Mean Motion", tle.MeanMotion, 15.72125391, 1e-8, compareFloat},
		{"Revolution Number", tle.RevolutionNumber, 56353, 0, compareExact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.compare(tt.got, tt.want, tt.epsilon) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestParseTLENoName(t *testing.T) {
	// historic highly eccentric orbit, blank international designator
	input := `1 11801U          80230.29629788  .01431103  00000-0  14311-1 0    13
2 11801  46.7916 230.4354 7318036  47.4722  10.4117  2.28537848    13`

	tle, err := ParseTLE(input)
	if err != nil {
		t.Fatalf("Failed to parse TLE: %v", err)
	}

	tests := []struct {
		name    string
		got     interface{}
		want    interface{}
		epsilon float64
		compare func(got, want interface{}, epsilon float64) bool
	}{
		{"Name", tle.Name, "", 0, compareExact},
		{"Satellite Number", tle.SatelliteNumber, 11801, 0, compareExact},
		{"Epoch Year", tle.EpochYear, 1980, 0, compareExact},
		{"Epoch Day", tle.EpochDay, 230.29629788, 1e-8, compareFloat},
		{"Mean Motion Dot", tle.MeanMotionDot, 0.01431103, 1e-8, compareFloat},
		{"B* Drag Term", tle.Bstar, 0.014311, 1e-8, compareFloat},
		{"Element Set Number", tle.ElementSetNumber, 1, 0, compareExact},
		{"Inclination", tle.Inclination, 46.7916, 1e-4, compareFloat},
		{"Eccentricity", tle.Eccentricity, 0.7318036, 1e-7, compareFloat},
		{"Mean Motion", tle.MeanMotion, 2.28537848, 1e-8, compareFloat},
		{"Revolution Number", tle.RevolutionNumber, 1, 0, compareExact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.compare(tt.got, tt.want, tt.epsilon) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func compareExact(got, want interface{}, _ float64) bool {
	return got == want
}

func compareFloat(got, want interface{}, epsilon float64) bool {
	g, ok1 := got.(float64)
	w, ok2 := want.(float64)
	if !ok1 || !ok2 {
		return false
	}
	return math.Abs(g-w) < epsilon
}

func TestInvalidTLE(t *testing.T) {
	tests := []struct {
		name string
		tle  string
	}{
		{
			name: "Empty input",
			tle:  "",
		},
		{
			name: "Single line",
			tle:  "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927",
		},
		{
			name: "Truncated line",
			tle: `1 25544U 98067A   08264.51782528
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537`,
		},
		{
			name: "Wrong line number",
			tle: `3 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537`,
		},
		{
			name: "Bad checksum",
			tle: `1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2920
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537`,
		},
		{
			name: "Unknown classification",
			tle: `1 25544X 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537`,
		},
		{
			name: "Mismatched satellite numbers",
			tle: `1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25545  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563538`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTLE(tt.tle); err == nil {
				t.Errorf("ParseTLE() expected an error")
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	// minus signs count as one
	line1 := "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	if got := checksum(line1); got != 7 {
		t.Errorf("checksum(line1) = %d, want 7", got)
	}
	line2 := "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
	if got := checksum(line2); got != 7 {
		t.Errorf("checksum(line2) = %d, want 7", got)
	}
}

func TestTLEEpoch(t *testing.T) {
	input := `1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537`

	tle, err := ParseTLE(input)
	if err != nil {
		t.Fatalf("Failed to parse TLE: %v", err)
	}

	// 2008-09-20 12:25:40.104 UTC, 3185.01782528 days after J2000
	want := 8.7201035599722
	if got := tle.Epoch(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Epoch() = %.13f, want %.13f", got, want)
	}
	// the AFSPC expression only differs in rounding order
	if got := tle.EpochAFSPC(); math.Abs(got-want) > 1e-9 {
		t.Errorf("EpochAFSPC() = %.13f, want %.13f", got, want)
	}
}

func TestTLEEpochTime(t *testing.T) {
	input := `1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537`

	tle, err := ParseTLE(input)
	if err != nil {
		t.Fatalf("Failed to parse TLE: %v", err)
	}

	got := tle.EpochTime()
	want := time.Date(2008, 9, 20, 12, 25, 40, 0, time.UTC)
	if diff := got.Sub(want); diff < -time.Second || diff > time.Second {
		t.Errorf("EpochTime() = %v, want %v (±1s)", got, want)
	}
}

func TestParseAssumedDecimal(t *testing.T) {
	tests := []struct {
		name     string
		mantissa string
		exponent string
		want     float64
	}{
		{"Positive", " 11606", "-4", 0.11606e-4},
		{"Negative", "-11606", "-4", -0.11606e-4},
		{"Zero", " 00000", "+0", 0.0},
		{"Large exponent", " 14311", "-1", 0.014311},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssumedDecimal(tt.mantissa, tt.exponent)
			if err != nil {
				t.Fatalf("parseAssumedDecimal() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("parseAssumedDecimal() = %g, want %g", got, tt.want)
			}
		})
	}
}
