package utils

import "time"

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return FormatRFC3339(time.Now())
}

// FormatRFC3339 formats a time as UTC RFC3339, the wire format for every
// stored timestamp
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
