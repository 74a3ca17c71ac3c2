// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package daterange

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical rendering of a Date.
const Layout = "2006-01-02"

var (
	ErrFormat   = errors.New("must be in specified format")
	ErrCalendar = errors.New("no such calendar day")
)

// FormatPattern is the date pattern accepted by the profile form.
// Both separators and one or two digit months and days are allowed.
var FormatPattern = regexp.MustCompile(`^\d{4}[/\-](0?[1-9]|1[012])[/\-](0?[1-9]|[12][0-9]|3[01])$`)

// Date is a calendar day without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the Date for year, month and day. Out-of-range values are
// normalized the way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime truncates t to its calendar day in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current day in the local time zone.
func Today() Date {
	return FromTime(time.Now())
}

// Parse reads a date in the form YYYY-MM-DD or YYYY/MM/DD.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if !FormatPattern.MatchString(s) {
		return Date{}, fmt.Errorf("%q: %w", s, ErrFormat)
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	d, _ := strconv.Atoi(parts[2])

	date := New(y, time.Month(m), d)
	if date.Year != y || int(date.Month) != m || date.Day != d {
		return Date{}, fmt.Errorf("%q: %w", s, ErrCalendar)
	}
	return date, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Ordinal is the number of days since 1970-01-01.
func (d Date) Ordinal() int {
	return int(d.Time().Unix() / 86400)
}

// IsZero reports whether d is the unset Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before and After compare calendar days.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// String formats d as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText and UnmarshalText use the String form; empty text is the
// zero Date.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes d as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Value stores the date as YYYY-MM-DD text so that lexical and calendar order
// agree in every backend.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan accepts the text written by Value as well as native DATE columns,
// which drivers return as time.Time. NULL scans to the zero Date.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case time.Time:
		*d = FromTime(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
