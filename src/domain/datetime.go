package domain

import (
	"errors"
	"time"
)

var ErrInvalidDateTime = errors.New("date time must be YYYY-MM-DDTHH:MM, YYYY-MM-DDTHH:MM:SS or RFC3339")

// 入力として受け付ける日時フォーマット（オフセットなし）
var wallClockLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseDateTime converts an API timestamp into a naive wall-clock time.
//
// Values without an offset are taken as wall-clock time of the service.
// Values with an offset (RFC3339) are first moved into loc. In both cases the
// result carries the wall clock in UTC so that DateOf never shifts the day.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return NaiveWallClock(t.In(loc)), nil
}

// NaiveWallClock drops the location of t while keeping its wall clock
func NaiveWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// MoveToDate keeps the time-of-day of t and replaces its date
func MoveToDate(t time.Time, d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
