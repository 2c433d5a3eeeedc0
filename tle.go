package sgp4

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// month end day-of-year boundaries, offset by one so that a strict
// comparison against the truncated day of year yields the month
var monthsEnds = [12]int{32, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
var leapYearMonthsEnds = [12]int{32, 61, 92, 122, 153, 183, 214, 245, 275, 306, 336, 367}

// TLE represents a Two-Line Element set.
type TLE struct {
	// Line 0 (optional name)
	Name string

	// Line 1 fields
	SatelliteNumber  int
	Classification   rune
	International    string // International Designator
	EpochYear        int
	EpochDay         float64
	MeanMotionDot    float64 // first derivative of the mean motion over two, rev/day²
	MeanMotionDDot   float64 // second derivative of the mean motion over six, rev/day³
	Bstar            float64 // B* drag term, 1/EarthRadii
	ElementSetNumber int

	// Line 2 fields
	Inclination      float64 // degrees
	RightAscension   float64 // degrees
	Eccentricity     float64
	ArgOfPerigee     float64 // degrees
	MeanAnomaly      float64 // degrees
	MeanMotion       float64 // rev/day
	RevolutionNumber int
}

// ParseTLE parses a two-line element set string. It accepts either a
// two-line or three-line format (with satellite name).
func ParseTLE(input string) (*TLE, error) {
	lines := strings.Split(strings.TrimSpace(input), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \r")
	}
	if len(lines) < 2 || len(lines) > 3 {
		return nil, fmt.Errorf("invalid TLE: must contain 2 or 3 lines")
	}

	tle := &TLE{}
	startLine := 0
	if len(lines) == 3 {
		tle.Name = strings.TrimSpace(lines[0])
		startLine = 1
	}

	line1 := lines[startLine]
	line2 := lines[startLine+1]
	if len(line1) != 69 {
		return nil, fmt.Errorf("invalid TLE: line 1 must be 69 characters, got %d", len(line1))
	}
	if len(line2) != 69 {
		return nil, fmt.Errorf("invalid TLE: line 2 must be 69 characters, got %d", len(line2))
	}

	if err := tle.parseLine1(line1); err != nil {
		return nil, fmt.Errorf("error parsing line 1: %w", err)
	}
	if err := tle.parseLine2(line2); err != nil {
		return nil, fmt.Errorf("error parsing line 2: %w", err)
	}

	for i, line := range []string{line1, line2} {
		expected := int(line[68] - '0')
		if got := checksum(line); got != expected {
			return nil, fmt.Errorf("checksum mismatch in line %d: expected %d, got %d", i+1, expected, got)
		}
	}
	return tle, nil
}

func (tle *TLE) parseLine1(line string) error {
	if line[0] != '1' {
		return fmt.Errorf("line 1 must begin with '1'")
	}

	var err error
	tle.SatelliteNumber, err = strconv.Atoi(strings.TrimSpace(line[2:7]))
	if err != nil {
		return fmt.Errorf("invalid satellite number: %w", err)
	}

	tle.Classification = rune(line[7])
	switch tle.Classification {
	case 'U', 'C', 'S':
	default:
		return fmt.Errorf("unknown classification %q", tle.Classification)
	}
	tle.International = strings.TrimSpace(line[9:17])

	yearVal, err := strconv.Atoi(strings.TrimSpace(line[18:20]))
	if err != nil {
		return fmt.Errorf("invalid epoch year: %w", err)
	}
	// the two digit year pivot mandated by the TLE format
	if yearVal < 57 {
		tle.EpochYear = 2000 + yearVal
	} else {
		tle.EpochYear = 1900 + yearVal
	}

	tle.EpochDay, err = strconv.ParseFloat(strings.TrimSpace(line[20:32]), 64)
	if err != nil {
		return fmt.Errorf("invalid epoch day: %w", err)
	}

	tle.MeanMotionDot, err = strconv.ParseFloat(strings.TrimSpace(line[33:43]), 64)
	if err != nil {
		return fmt.Errorf("invalid mean motion derivative (%q): %w", line[33:43], err)
	}

	tle.MeanMotionDDot, err = parseAssumedDecimal(line[44:50], line[50:52])
	if err != nil {
		return fmt.Errorf("invalid mean motion second derivative (%q): %w", line[44:52], err)
	}

	tle.Bstar, err = parseAssumedDecimal(line[53:59], line[59:61])
	if err != nil {
		return fmt.Errorf("invalid B* drag term (%q): %w", line[53:61], err)
	}

	tle.ElementSetNumber, err = strconv.Atoi(strings.TrimSpace(line[64:68]))
	if err != nil {
		return fmt.Errorf("invalid element set number: %w", err)
	}
	return nil
}

func (tle *TLE) parseLine2(line string) error {
	if line[0] != '2' {
		return fmt.Errorf("line 2 must begin with '2'")
	}

	satNum, err := strconv.Atoi(strings.TrimSpace(line[2:7]))
	if err != nil {
		return fmt.Errorf("invalid satellite number in line 2: %w", err)
	}
	if satNum != tle.SatelliteNumber {
		return fmt.Errorf("satellite numbers do not match between lines (%d vs %d)", tle.SatelliteNumber, satNum)
	}

	tle.Inclination, err = strconv.ParseFloat(strings.TrimSpace(line[8:16]), 64)
	if err != nil {
		return fmt.Errorf("invalid inclination: %w", err)
	}
	tle.RightAscension, err = strconv.ParseFloat(strings.TrimSpace(line[17:25]), 64)
	if err != nil {
		return fmt.Errorf("invalid right ascension: %w", err)
	}

	// eccentricity has an assumed leading decimal point
	tle.Eccentricity, err = strconv.ParseFloat("0."+strings.TrimSpace(line[26:33]), 64)
	if err != nil {
		return fmt.Errorf("invalid eccentricity (%q): %w", line[26:33], err)
	}

	tle.ArgOfPerigee, err = strconv.ParseFloat(strings.TrimSpace(line[34:42]), 64)
	if err != nil {
		return fmt.Errorf("invalid argument of perigee: %w", err)
	}
	tle.MeanAnomaly, err = strconv.ParseFloat(strings.TrimSpace(line[43:51]), 64)
	if err != nil {
		return fmt.Errorf("invalid mean anomaly: %w", err)
	}
	tle.MeanMotion, err = strconv.ParseFloat(strings.TrimSpace(line[52:63]), 64)
	if err != nil {
		return fmt.Errorf("invalid mean motion: %w", err)
	}
	tle.RevolutionNumber, err = strconv.Atoi(strings.TrimSpace(line[63:68]))
	if err != nil {
		return fmt.Errorf("invalid revolution number: %w", err)
	}
	return nil
}

// parseAssumedDecimal parses the "±XXXXX±E" fixed-point representation used
// by the B* and second derivative fields, where a leading decimal point is
// assumed on the mantissa.
func parseAssumedDecimal(mantissaField, exponentField string) (float64, error) {
	trimmed := strings.TrimSpace(mantissaField)
	var mantissa float64
	var err error
	if strings.HasPrefix(trimmed, "-") {
		mantissa, err = strconv.ParseFloat("-."+trimmed[1:], 64)
	} else {
		mantissa, err = strconv.ParseFloat("."+strings.TrimPrefix(trimmed, "+"), 64)
	}
	if err != nil {
		return 0, err
	}
	exponent, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(exponentField), "+"))
	if err != nil {
		return 0, err
	}
	return mantissa * math.Pow(10.0, float64(exponent)), nil
}

// checksum computes the modulo-10 checksum of the first 68 characters of a
// TLE line: digits count as their value, '-' counts as 1, everything else is
// ignored.
func checksum(line string) int {
	sum := 0
	for i := 0; i < 68; i++ {
		char := line[i]
		if char >= '0' && char <= '9' {
			sum += int(char - '0')
		} else if char == '-' {
			sum++
		}
	}
	return sum % 10
}

// Epoch returns the number of years since UTC 2000 January 1 12h00 (J2000)
// using the accurate day count.
func (tle *TLE) Epoch() float64 {
	return yearsSinceJ2000(tle.EpochYear, tle.EpochDay, false)
}

// EpochAFSPC returns the number of years since J2000 using the expression of
// the AFSPC implementation, which treats every year divisible by four as a
// leap year.
func (tle *TLE) EpochAFSPC() float64 {
	return yearsSinceJ2000(tle.EpochYear, tle.EpochDay, true)
}

func yearsSinceJ2000(year int, day float64, afspc bool) float64 {
	// both branches use the century-less leap year rule carried over from
	// the AFSPC code; it holds for every year between 1901 and 2099
	ends := &monthsEnds
	if year%4 == 0 {
		ends = &leapYearMonthsEnds
	}
	month := 12
	for i, end := range ends {
		if end > int(day) {
			month = i + 1
			break
		}
	}
	dayOfMonth := day
	if month > 1 {
		dayOfMonth = day - float64(ends[month-2]-1)
	}
	jd := float64(367*year-(7*(year+(month+9)/12))/4+275*month/9) + dayOfMonth
	if afspc {
		return (jd + 1721013.5 - 2451545.0) / 365.25
	}
	return (jd - 730531.5) / 365.25
}

// EpochTime returns the time.Time representation of the TLE epoch.
func (tle *TLE) EpochTime() time.Time {
	days := int(tle.EpochDay)
	fractionalDay := tle.EpochDay - float64(days)
	baseDate := time.Date(tle.EpochYear, 1, 1, 0, 0, 0, 0, time.UTC)
	// day 1 means no full day passed since January 1 00:00
	epochBaseDay := baseDate.AddDate(0, 0, days-1)
	totalNanos := int64(math.Round(fractionalDay * 86400.0 * 1e9))
	return epochBaseDay.Add(time.Duration(totalNanos))
}
