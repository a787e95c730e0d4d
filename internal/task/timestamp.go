package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	timestampLayout        = "2006-01-02T15:04"
	timestampSecondsLayout = "2006-01-02T15:04:05"
)

// ErrInvalidDate is returned for input that is not a real calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidTime is returned for input that is not a valid hh:mm clock time.
var ErrInvalidTime = errors.New("invalid time")

// ParseDate parses a yyyy-mm-dd date made of three integer parts and returns
// midnight of that day in UTC. Non-existent days such as 2023-02-30 fail.
func ParseDate(s string) (time.Time, error) {
	parts, err := splitInts(s, "-", 3)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	year, month, day := parts[0], parts[1], parts[2]
	if year < 0 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseClock parses an hh:mm time of day.
func ParseClock(s string) (hour, minute int, err error) {
	parts, err := splitInts(s, ":", 2)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour, minute = parts[0], parts[1]
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hour, minute, nil
}

// WithDate replaces the calendar date of ts and keeps its time of day.
func WithDate(ts, date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC)
}

// WithClock replaces the time of day of ts and keeps its calendar date.
func WithClock(ts time.Time, hour, minute int) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

func formatTimestamp(ts time.Time) string {
	if ts.Second() != 0 {
		return ts.Format(timestampSecondsLayout)
	}
	return ts.Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{timestampLayout, timestampSecondsLayout} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", s)
}

func splitInts(s, sep string, n int) ([]int, error) {
	fields := strings.Split(strings.TrimSpace(s), sep)
	if len(fields) != n {
		return nil, fmt.Errorf("want %d parts, got %d", n, len(fields))
	}
	out := make([]int, 0, n)
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
