package domain

import (
	"time"

	"canvas-tasks/internal/errors"
)

// LocalTime is a naive civil datetime: a wall-clock value with no attached
// offset, interpreted implicitly in the reference timezone. It is a distinct
// type from time.Time instants so that offset-aware and offset-naive values
// cannot intermix downstream of normalization. Two tasks are due at the same
// moment iff their LocalTime values are equal.
//
// Internally the wall-clock fields are pinned to UTC as a storage
// convention; the UTC location carries no meaning.
type LocalTime struct {
	t time.Time
}

// Layouts accepted for incoming timestamps. Canvas normally emits RFC 3339
// with an explicit offset; the naive layouts cover creation echoes and
// all-day date strings.
var localTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NewLocalTime builds a LocalTime from civil datetime components.
func NewLocalTime(year int, month time.Month, day, hour, min int) LocalTime {
	return LocalTime{t: time.Date(year, month, day, hour, min, 0, 0, time.UTC)}
}

// LocalTimeOf converts an absolute instant into the reference timezone and
// strips the offset.
func LocalTimeOf(t time.Time, reference *time.Location) LocalTime {
	in := t.In(reference)
	return LocalTime{t: time.Date(in.Year(), in.Month(), in.Day(),
		in.Hour(), in.Minute(), in.Second(), in.Nanosecond(), time.UTC)}
}

// NowIn returns the current time as a LocalTime in the reference timezone.
func NowIn(reference *time.Location) LocalTime {
	return LocalTimeOf(timeNow(), reference)
}

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// ParseLocalTime parses a timestamp into a LocalTime. An input carrying an
// explicit offset is converted to the reference timezone before the offset
// is stripped. An offset-naive input is taken as already expressed in the
// reference timezone and used as-is; this mirrors the behavior of earlier
// versions of the tool and is kept for compatibility.
func ParseLocalTime(value string, reference *time.Location) (LocalTime, error) {
	if value == "" {
		return LocalTime{}, errors.NewParseError("timestamp", value, nil)
	}

	// Offset-aware forms first: RFC 3339 always carries an offset or Z.
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return LocalTimeOf(t, reference), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999Z07:00", value); err == nil {
		return LocalTimeOf(t, reference), nil
	}

	// Offset-naive forms are wall-clock values in the reference zone.
	for _, layout := range localTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return LocalTime{t: t.UTC()}, nil
		}
	}

	return LocalTime{}, errors.NewParseError("timestamp", value, nil)
}

// IsZero reports whether the value is the zero LocalTime.
func (lt LocalTime) IsZero() bool {
	return lt.t.IsZero()
}

// Before reports whether lt is before other.
func (lt LocalTime) Before(other LocalTime) bool {
	return lt.t.Before(other.t)
}

// After reports whether lt is after other.
func (lt LocalTime) After(other LocalTime) bool {
	return lt.t.After(other.t)
}

// Equal reports whether lt and other are the same civil datetime.
func (lt LocalTime) Equal(other LocalTime) bool {
	return lt.t.Equal(other.t)
}

// Compare returns -1, 0 or +1 ordering lt against other.
func (lt LocalTime) Compare(other LocalTime) int {
	return lt.t.Compare(other.t)
}

// SameDay reports whether lt and other fall on the same civil date.
func (lt LocalTime) SameDay(other LocalTime) bool {
	y1, m1, d1 := lt.t.Date()
	y2, m2, d2 := other.t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// AddDays returns the LocalTime the given number of days later.
func (lt LocalTime) AddDays(days int) LocalTime {
	return LocalTime{t: lt.t.AddDate(0, 0, days)}
}

// Format renders the civil datetime using the given layout.
func (lt LocalTime) Format(layout string) string {
	return lt.t.Format(layout)
}

// Wire renders the canonical naive ISO form sent to the backend.
func (lt LocalTime) Wire() string {
	return lt.t.Format("2006-01-02T15:04:05")
}

// String renders the canonical naive ISO form.
func (lt LocalTime) String() string {
	return lt.Wire()
}
