// Package prayer holds the daily prayer schedule and the pure arithmetic built on
// it: block classification, countdowns and clock parsing. Nothing here reads the
// wall clock; every function takes the reference time explicitly.
package prayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Name identifies one of the five daily prayers.
type Name string

const (
	Fajr    Name = "Fajr"
	Dhuhr   Name = "Dhuhr"
	Asr     Name = "Asr"
	Maghrib Name = "Maghrib"
	Isha    Name = "Isha"
)

// Names is the canonical order of the daily prayers.
var Names = [5]Name{Fajr, Dhuhr, Asr, Maghrib, Isha}

var (
	// ErrInvalidClock is returned for clock strings outside HH:MM 00:00-23:59.
	ErrInvalidClock = errors.New("invalid clock time")
	// ErrScheduleOrder is returned when prayer times are not strictly increasing.
	ErrScheduleOrder = errors.New("prayer times are not strictly increasing")
	// ErrUnknownPrayer is returned for names outside the five daily prayers.
	ErrUnknownPrayer = errors.New("unknown prayer name")
	// ErrUnknownBlock is returned for keys outside the five prayer blocks.
	ErrUnknownBlock = errors.New("unknown prayer block")
)

// ParseName accepts a canonical prayer name, case-insensitively.
func ParseName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	for _, n := range Names {
		if strings.EqualFold(trimmed, string(n)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPrayer, raw)
}

// index returns the canonical position of n, or -1.
func (n Name) index() int {
	for i, candidate := range Names {
		if candidate == n {
			return i
		}
	}
	return -1
}

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM". Anything after the first space is dropped, which
// covers timezone suffixes like "05:12 (+03)" returned by timing services.
func ParseClock(raw string) (Clock, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.IndexByte(s, ' '); idx != -1 {
		s = s[:idx]
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}

	if !isDigits(hh, 1, 2) {
		return Clock{}, fmt.Errorf("%w: hour in %q", ErrInvalidClock, raw)
	}
	if !isDigits(mm, 2, 2) {
		return Clock{}, fmt.Errorf("%w: minute in %q", ErrInvalidClock, raw)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour > 23 {
		return Clock{}, fmt.Errorf("%w: hour in %q", ErrInvalidClock, raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute > 59 {
		return Clock{}, fmt.Errorf("%w: minute in %q", ErrInvalidClock, raw)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// isDigits reports whether s is ASCII digits only, between lo and hi of them.
func isDigits(s string, lo, hi int) bool {
	if len(s) < lo || len(s) > hi {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustClock is ParseClock for literals known to be valid.
func MustClock(raw string) Clock {
	c, err := ParseClock(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Seconds returns seconds since midnight.
func (c Clock) Seconds() int {
	return c.Minutes() * 60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Schedule is one calendar day of prayer times, indexed in canonical order.
type Schedule struct {
	Times [5]Clock
}

// Fallback is served whenever the timing service cannot be reached.
var Fallback = Schedule{Times: [5]Clock{
	{Hour: 5, Minute: 30},
	{Hour: 12, Minute: 30},
	{Hour: 15, Minute: 30},
	{Hour: 18, Minute: 0},
	{Hour: 19, Minute: 30},
}}

// NewSchedule validates raw "HH:MM" strings given in canonical order.
func NewSchedule(fajr, dhuhr, asr, maghrib, isha string) (Schedule, error) {
	var s Schedule
	for i, raw := range [5]string{fajr, dhuhr, asr, maghrib, isha} {
		c, err := ParseClock(raw)
		if err != nil {
			return Schedule{}, fmt.Errorf("%s: %w", Names[i], err)
		}
		s.Times[i] = c
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate checks that the five times are strictly increasing within the day.
func (s Schedule) Validate() error {
	for i := 1; i < len(s.Times); i++ {
		if s.Times[i].Minutes() <= s.Times[i-1].Minutes() {
			return fmt.Errorf("%w: %s %s is not after %s %s", ErrScheduleOrder,
				Names[i], s.Times[i], Names[i-1], s.Times[i-1])
		}
	}
	return nil
}

// Time returns the clock time for n.
func (s Schedule) Time(n Name) Clock {
	if i := n.index(); i >= 0 {
		return s.Times[i]
	}
	return Clock{}
}

// Map renders the schedule as name → "HH:MM".
func (s Schedule) Map() map[Name]string {
	out := make(map[Name]string, len(Names))
	for i, n := range Names {
		out[n] = s.Times[i].String()
	}
	return out
}
