// Package astro provides time scales and angle math shared by the chart engine.
package astro

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// UnixEpochJD is the Julian Date of 1970-01-01T00:00:00Z.
	UnixEpochJD = 2440587.5

	// J2000 is the Julian Date of the J2000.0 epoch.
	J2000 = 2451545.0

	msPerDay = 86400000.0
)

// Accepted layouts for the two halves of a birth timestamp.
const (
	DateLayout = "2006-01-02"
	ClockHM    = "15:04"
	ClockHMS   = "15:04:05"
)

// ParseBirthTime combines a calendar date and a time of day into an instant.
// Both are read as UTC. No timezone offset is applied.
func ParseBirthTime(date, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	tod, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(tod), nil
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return day, nil
}

// ParseClock parses HH:MM or HH:MM:SS into an offset from midnight.
func ParseClock(clock string) (time.Duration, error) {
	clock = strings.TrimSpace(clock)

	var (
		tod time.Time
		err error
	)
	switch strings.Count(clock, ":") {
	case 1:
		tod, err = time.ParseInLocation(ClockHM, clock, time.UTC)
	case 2:
		tod, err = time.ParseInLocation(ClockHMS, clock, time.UTC)
	default:
		err = errors.New("want HH:MM or HH:MM:SS")
	}
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", clock, err)
	}

	return time.Duration(tod.Hour())*time.Hour +
		time.Duration(tod.Minute())*time.Minute +
		time.Duration(tod.Second())*time.Second, nil
}

// JulianDate returns the Julian Date for t, computed from its Unix
// millisecond count.
func JulianDate(t time.Time) float64 {
	return float64(t.UnixMilli())/msPerDay + UnixEpochJD
}

// DaysSinceJ2000 returns the number of days elapsed since J2000.0.
func DaysSinceJ2000(jd float64) float64 {
	return jd - J2000
}
