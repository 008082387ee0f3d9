package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// parseOffset reads a fixed offset such as "+02:00" or "-0330".
func parseOffset(tz string) (*time.Location, bool) {
	if len(tz) < 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, false
	}
	var h, m int
	rest := tz[1:]
	if _, err := fmt.Sscanf(rest, "%2d:%2d", &h, &m); err != nil {
		if _, err := fmt.Sscanf(rest, "%2d%2d", &h, &m); err != nil {
			return nil, false
		}
	}
	if h < 0 || m < 0 || h > 14 || m > 59 {
		return nil, false
	}
	secs := h*3600 + m*60
	if tz[0] == '-' {
		secs = -secs
	}
	return time.FixedZone(tz, secs), true
}

// IsValid accepts IANA names and fixed offsets.
func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	if _, ok := parseOffset(tz); ok {
		return true
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz; empty or unknown zones fall back to UTC.
func Location(tz string) *time.Location {
	if loc, ok := parseOffset(tz); ok {
		return loc
	}
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Now is the clock every use case reads unless a test injects its own.
func Now() time.Time {
	return time.Now().UTC()
}
