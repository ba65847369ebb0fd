// Package astro derives sun and moon signs from a birth date. The moon sign uses a
// linear mean-motion model and is personalization flavor, not an ephemeris.
package astro

import (
	"math"
	"strings"
	"time"
)

// Signs in canonical order, starting at Capricorn
var Signs = []string{
	"capricorn", "aquarius", "pisces", "aries", "taurus", "gemini",
	"cancer", "leo", "virgo", "libra", "scorpio", "sagittarius",
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// ParseBirthDate accepts YYYY-MM-DD or MM/DD/YYYY and returns midnight UTC of that day
func ParseBirthDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// cutovers are the first days of each sign after Capricorn
var cutovers = []struct {
	month time.Month
	day   int
	sign  string
}{
	{time.January, 20, "aquarius"},
	{time.February, 19, "pisces"},
	{time.March, 21, "aries"},
	{time.April, 20, "taurus"},
	{time.May, 21, "gemini"},
	{time.June, 21, "cancer"},
	{time.July, 23, "leo"},
	{time.August, 23, "virgo"},
	{time.September, 23, "libra"},
	{time.October, 23, "scorpio"},
	{time.November, 22, "sagittarius"},
	{time.December, 22, "capricorn"},
}

// SunSignOf returns the tropical sun sign for a date
func SunSignOf(t time.Time) string {
	sign := "capricorn"
	for _, c := range cutovers {
		if t.Month() > c.month || (t.Month() == c.month && t.Day() >= c.day) {
			sign = c.sign
		}
	}
	return sign
}

// SunSign parses a birth date and returns its sun sign
func SunSign(birthDate string) (string, bool) {
	t, ok := ParseBirthDate(birthDate)
	if !ok {
		return "", false
	}
	return SunSignOf(t), true
}

const (
	// moon longitude at 2000-01-01T00:00Z, degrees
	referenceLongitude = 217.28
	// mean synodic motion, degrees per day
	meanMotion = 360 / 29.530588
)

var referenceEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// daysBetween works on Unix seconds; time.Duration saturates past roughly 292 years
func daysBetween(from, to time.Time) float64 {
	return float64(to.Unix()-from.Unix()) / 86400
}

// MoonLongitude estimates the moon's longitude at noon UTC of the birth date.
// The model is re-anchored at January 1 of the birth year to bound drift.
func MoonLongitude(t time.Time) float64 {
	yearStart := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	anchor := normalize(referenceLongitude + meanMotion*daysBetween(referenceEpoch, yearStart))

	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	return normalize(anchor + meanMotion*daysBetween(yearStart, noon))
}

// MoonSignOf maps the estimated longitude onto a sign
func MoonSignOf(t time.Time) string {
	idx := (int(math.Floor(MoonLongitude(t)/30)) + 3) % 12
	return Signs[idx]
}

// MoonSign parses a birth date and returns its approximate moon sign
func MoonSign(birthDate string) (string, bool) {
	t, ok := ParseBirthDate(birthDate)
	if !ok {
		return "", false
	}
	return MoonSignOf(t), true
}

// Age returns completed years between birth and now
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
