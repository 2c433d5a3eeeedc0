package sgp4

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OMM represents an Orbit Mean-elements Message parsed from its JSON
// representation. Fields follow the CCSDS OMM standard and the JSON output of
// Celestrak and space-track.org.
type OMM struct {
	ObjectName         string  `json:"OBJECT_NAME"`
	ObjectID           string  `json:"OBJECT_ID"` // e.g. "1998-067A"
	Epoch              string  `json:"EPOCH"`     // ISO 8601, assumed UTC
	MeanMotion         float64 `json:"MEAN_MOTION"` // rev/day
	Eccentricity       float64 `json:"ECCENTRICITY"`
	Inclination        float64 `json:"INCLINATION"`       // degrees
	RAOfAscNode        float64 `json:"RA_OF_ASC_NODE"`    // degrees
	ArgOfPericenter    float64 `json:"ARG_OF_PERICENTER"` // degrees
	MeanAnomaly        float64 `json:"MEAN_ANOMALY"`      // degrees
	EphemerisType      int     `json:"EPHEMERIS_TYPE"`
	ClassificationType string  `json:"CLASSIFICATION_TYPE"`
	NoradCatID         int     `json:"NORAD_CAT_ID"`
	ElementSetNo       int     `json:"ELEMENT_SET_NO"`
	RevAtEpoch         int     `json:"REV_AT_EPOCH"`
	BStar              float64 `json:"BSTAR"`            // B* drag term, 1/EarthRadii
	MeanMotionDot      float64 `json:"MEAN_MOTION_DOT"`  // rev/day²
	MeanMotionDDot     float64 `json:"MEAN_MOTION_DDOT"` // rev/day³
}

// ParseOMM parses a single OMM object from its JSON representation.
func ParseOMM(jsonData []byte) (*OMM, error) {
	omm := &OMM{}
	if err := json.Unmarshal(jsonData, omm); err != nil {
		return nil, fmt.Errorf("error unmarshalling OMM JSON: %w", err)
	}
	return omm, nil
}

// ParseOMMGroup parses a JSON array of OMM objects, the format returned by
// the Celestrak GP queries.
func ParseOMMGroup(jsonData []byte) ([]OMM, error) {
	var omms []OMM
	if err := json.Unmarshal(jsonData, &omms); err != nil {
		return nil, fmt.Errorf("error unmarshalling OMM group JSON: %w", err)
	}
	return omms, nil
}

// EpochTime returns the time.Time representation of the OMM epoch. OMM epoch
// strings usually carry no timezone designator and are interpreted as UTC.
func (o *OMM) EpochTime() (time.Time, error) {
	value := strings.TrimSuffix(o.Epoch, "Z")
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("error parsing OMM epoch %q", o.Epoch)
}

// epochYearAndDay splits the OMM epoch into the year and the fractional day
// of year used by the J2000 conversion.
func (o *OMM) epochYearAndDay() (int, float64, error) {
	t, err := o.EpochTime()
	if err != nil {
		return 0, 0, err
	}
	startOfDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	day := float64(t.YearDay()) +
		float64(t.Sub(startOfDay).Nanoseconds())/(86400.0*1e9)
	return t.Year(), day, nil
}

// EpochJ2000 returns the number of years since UTC 2000 January 1 12h00
// (J2000).
func (o *OMM) EpochJ2000() (float64, error) {
	year, day, err := o.epochYearAndDay()
	if err != nil {
		return 0, err
	}
	return yearsSinceJ2000(year, day, false), nil
}

// EpochJ2000AFSPC returns the number of years since J2000 using the
// expression of the AFSPC implementation.
func (o *OMM) EpochJ2000AFSPC() (float64, error) {
	year, day, err := o.epochYearAndDay()
	if err != nil {
		return 0, err
	}
	return yearsSinceJ2000(year, day, true), nil
}

// ToTLE converts an OMM object to the equivalent TLE record.
func (o *OMM) ToTLE() (*TLE, error) {
	tle := &TLE{
		Name:             o.ObjectName,
		SatelliteNumber:  o.NoradCatID,
		Classification:   'U',
		MeanMotionDot:    o.MeanMotionDot,
		MeanMotionDDot:   o.MeanMotionDDot,
		Bstar:            o.BStar,
		ElementSetNumber: o.ElementSetNo,
		Inclination:      o.Inclination,
		RightAscension:   o.RAOfAscNode,
		Eccentricity:     o.Eccentricity,
		ArgOfPerigee:     o.ArgOfPericenter,
		MeanAnomaly:      o.MeanAnomaly,
		MeanMotion:       o.MeanMotion,
		RevolutionNumber: o.RevAtEpoch,
	}
	if len(o.ClassificationType) > 0 {
		tle.Classification = rune(o.ClassificationType[0])
	}
	if parts := strings.Split(o.ObjectID, "-"); len(parts) == 2 && len(parts[0]) == 4 {
		tle.International = parts[0][2:] + parts[1]
	}
	year, day, err := o.epochYearAndDay()
	if err != nil {
		return nil, err
	}
	tle.EpochYear = year
	tle.EpochDay = day
	if tle.Eccentricity < 0.0 || tle.Eccentricity >= 1.0 {
		return nil, fmt.Errorf("eccentricity %.10f is out of the range [0, 1)", tle.Eccentricity)
	}
	return tle, nil
}
