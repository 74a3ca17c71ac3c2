// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/techlib/wifinator/daterange"
	"github.com/techlib/wifinator/middleware"
	"github.com/techlib/wifinator/models"
)

type CalendarHandler struct {
	today Clock
}

func NewCalendarHandler(today Clock) *CalendarHandler {
	if today == nil {
		today = daterange.Today
	}
	return &CalendarHandler{today: today}
}

// GetCalendar handles GET /calendar?month=YYYY-MM&start=YYYY-MM-DD
//
// Both parameters are optional: month defaults to the month of start, and
// start defaults to today.
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	query := r.URL.Query()

	start := today
	if s := query.Get("start"); s != "" {
		d, err := daterange.Parse(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid start date")
			return
		}
		start = d
	}

	month := daterange.New(start.Year, start.Month, 1)
	if m := query.Get("month"); m != "" {
		d, err := daterange.ParseMonth(m)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
		month = d
	}

	middleware.JSONResponse(w, http.StatusOK, models.CalendarResponse{
		Month: fmt.Sprintf("%04d-%02d", month.Year, int(month.Month)),
		Today: today,
		Start: start,
		Days:  daterange.MonthDays(month, today, start),
	})
}
