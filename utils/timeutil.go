// File: utils/timeutil.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// MinutesOf parses an "HH:mm" 24-hour string into minutes from midnight
// (e.g., 420 for 7:00 AM).
func MinutesOf(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", t)
	}
	return h*60 + m, nil
}

// FormatMinutes renders minutes from midnight as zero-padded "HH:mm",
// normalizing into a single day.
func FormatMinutes(mins int) string {
	mins %= minutesPerDay
	if mins < 0 {
		mins += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// AddHours adds h hours to an "HH:mm" time, wrapping past midnight rather
// than carrying into the next date: AddHours("23:00", 3) == "02:00".
func AddHours(t string, h int) (string, error) {
	mins, err := MinutesOf(t)
	if err != nil {
		return "", err
	}
	return FormatMinutes(mins + h*60), nil
}

// RangesOverlap reports whether the half-open minute ranges [aStart, aEnd)
// and [bStart, bEnd) intersect. Touching endpoints do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
