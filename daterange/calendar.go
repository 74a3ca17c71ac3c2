// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package daterange

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStartInPast     = errors.New("first day must not be in the past")
	ErrStopBeforeStart = errors.New("last day must not come before the first day")
	ErrMonthFormat     = errors.New("month must be in YYYY-MM format")
)

// Check validates a submitted range against the picker rules. Pass a zero
// today to skip the start check, e.g. when an existing range keeps its start.
func Check(today Date, r RangeState) error {
	if !today.IsZero() && !StartSelectable(today, r.Start) {
		return ErrStartInPast
	}
	if !StopSelectable(r.Start, r.Stop) {
		return ErrStopBeforeStart
	}
	return nil
}

// Contains reports whether d lies within the inclusive range.
func (r RangeState) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.Stop)
}

// Days is the inclusive length of the range.
func (r RangeState) Days() int {
	return r.Stop.Ordinal() - r.Start.Ordinal() + 1
}

// CalendarDay is one rendered cell of a month view.
type CalendarDay struct {
	Date            Date   `json:"date"`
	Weekday         string `json:"weekday"`
	StartSelectable bool   `json:"start_selectable"`
	StopSelectable  bool   `json:"stop_selectable"`
}

// ParseMonth reads YYYY-MM and returns the first day of that month.
func ParseMonth(s string) (Date, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Date{}, fmt.Errorf("%q: %w", s, ErrMonthFormat)
	}
	return FromTime(t), nil
}

// MonthDays renders every day of the month containing first, with the
// selectability both pickers would show for the given today and start.
func MonthDays(first, today, start Date) []CalendarDay {
	first = New(first.Year, first.Month, 1)

	var days []CalendarDay
	for d := first; d.Month == first.Month; d = d.AddDays(1) {
		days = append(days, CalendarDay{
			Date:            d,
			Weekday:         d.Time().Weekday().String()[:3],
			StartSelectable: StartSelectable(today, d),
			StopSelectable:  StopSelectable(start, d),
		})
	}
	return days
}
