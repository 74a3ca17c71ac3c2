// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package daterange keeps the first and last day of a network's lifetime
consistent while they are being picked.

# Dates

Date is a day-granular calendar date. Parse accepts the form's format
(YYYY-MM-DD or YYYY/MM/DD, one or two digit month and day) and rejects days
that do not exist:

	d, err := daterange.Parse("2024-3-10")   // 2024-03-10
	_, err = daterange.Parse("2024-02-30")   // ErrCalendar

# Coordinator

The Coordinator drives two Pickers:

	start := daterange.NewField("start", today)
	stop := daterange.NewField("stop", today)
	c := daterange.NewCoordinator(today, nil, start, stop)

	start.Select(daterange.MustParse("2024-03-20"))
	// stop is now 2024-03-20, start is hidden, stop has focus

Rules:

  - start days before today are disabled
  - stop days before the current start are disabled
  - a start after the current stop pulls the stop forward

The flow has two phases, AwaitingStart and AwaitingStop. Every start
selection moves to AwaitingStop.

# Server-side checks

Check applies the same rules to a submitted range, and MonthDays renders
a month with the selectability both pickers would show.
*/
package daterange
