package shaper

import (
	"errors"
	"strings"
	"time"
)

var errUnparsable = errors.New("not a recognised timestamp")

// Layouts written by the collector (JS toISOString and the journey legs) and
// the plain forms an operator is likely to type into the table by hand.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
}

func parseWith(layouts []string, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errUnparsable
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnparsable
}

// ParseInstant parses a fetch timestamp.
func ParseInstant(v string) (time.Time, error) {
	return parseWith(instantLayouts, v)
}

// ParseDeparture parses a departure as either a full instant or a bare time of day.
// The stored wall clock is kept; offsets are not normalised.
func ParseDeparture(v string) (time.Time, error) {
	if t, err := parseWith(instantLayouts, v); err == nil {
		return t, nil
	}
	return parseWith(clockLayouts, v)
}

// FormatJourneyDate renders a stored journey date as YYYY-MM-DD, or returns it
// unchanged when it is not a recognisable date.
func FormatJourneyDate(v string) string {
	if t, err := parseWith(instantLayouts, v); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := parseWith(dateLayouts, v); err == nil {
		return t.Format("2006-01-02")
	}
	return strings.TrimSpace(v)
}
