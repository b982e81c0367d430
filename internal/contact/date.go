package contact

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the day.month.year text form of a birth date.
const DateLayout = "02.01.2006"

// Date is a calendar day with no time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses s in DateLayout. Day and month must be two digits, the
// year four and at least 0001, and the day must exist in that month
// (29.02.2021 fails).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	if t.Year() < 1 {
		return Date{}, fmt.Errorf("parse date %q: year out of range", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// IsZero reports whether d is the zero Date, which never names a real day.
func (d Date) IsZero() bool {
	return d == Date{}
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the date in DateLayout.
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

// Anniversary returns midnight of this date's month and day in year.
// A 29 February date falls on 1 March in years without a leap day.
func (d Date) Anniversary(year int, loc *time.Location) time.Time {
	return time.Date(year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// MarshalJSON encodes the date as a DateLayout string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a DateLayout string. An empty string decodes to
// the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
