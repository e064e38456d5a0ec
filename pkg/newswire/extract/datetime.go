// Package extract holds the field-extraction helpers shared by the
// payload families: timestamp parsing with time-zone resolution, HTML
// body assembly, dateline construction and URL scanning.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// wireLayouts are the timestamp shapes the NewsML 1.2 family sends.
// "Z0700" matches both a literal Z and a numeric offset.
var wireLayouts = []string{
	"20060102T150405Z0700",
	"20060102T150405-0700",
	"20060102T150405",
}

// ParseWireTime parses a NewsML 1.2 timestamp. A timestamp without a
// zone is taken as UTC.
func ParseWireTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range wireLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Location() == time.UTC || layout != "20060102T150405" {
				return t, nil
			}
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable wire timestamp %q", s)
}

// ParseG2Time parses a NewsML-G2 timestamp (RFC 3339, with a seconds
// fallback for feeds that drop the sub-minute part).
func ParseG2Time(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02T15:04Z0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable g2 timestamp %q", s)
}

// ErrNoDate is returned when a cell expected to hold a date does not.
// The text is operator-visible in spreadsheet error annotations.
var ErrNoDate = errors.New("String does not contain a date")

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
	"January 2, 2006",
	"2 January 2006",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
}

// ParseDate parses a spreadsheet date cell.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoDate
}

// ParseClock parses a spreadsheet time-of-day cell.
func ParseClock(s string) (hour, min, sec int, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("unparseable time of day %q", s)
}

// ParseDateTime combines a date cell and a time cell.
func ParseDateTime(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(clock) == "" {
		return d, nil
	}
	h, m, s, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, s, 0, time.UTC), nil
}

// LocalToUTC interprets the wall-clock fields of t in the named zone
// and returns the UTC instant. The zone name is validated against the
// timezone database; "none" and the empty string mean UTC.
func LocalToUTC(zone string, t time.Time) (time.Time, error) {
	if zone == "" || zone == "none" {
		zone = "UTC"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown timezone %q: %w", zone, err)
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	return local.UTC(), nil
}

// EndOfDay expands an all-day end date to the last second of that
// local day, regardless of the end-time cell.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, 1).Add(-time.Second)
}
