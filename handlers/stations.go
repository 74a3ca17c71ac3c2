// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"sort"

	"github.com/techlib/wifinator/aruba"
	"github.com/techlib/wifinator/db"
	"github.com/techlib/wifinator/middleware"
	"github.com/techlib/wifinator/models"
)

// UnknownLocation is reported for access points without a location.
const UnknownLocation = "Unknown"

// StationLister reads associated clients from the controller.
type StationLister interface {
	Login(ctx context.Context) error
	ListStations(ctx context.Context) (map[string]aruba.Station, error)
}

type StationsHandler struct {
	db         *sql.DB
	controller StationLister
}

func NewStationsHandler(db *sql.DB, controller StationLister) *StationsHandler {
	return &StationsHandler{db: db, controller: controller}
}

// GetStations handles GET /stations
func (h *StationsHandler) GetStations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	locations, err := db.Locations(ctx, h.db)
	if err != nil {
		slog.Error("failed to query locations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := h.controller.Login(ctx); err != nil {
		slog.Error("controller login failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Controller unavailable")
		return
	}
	stations, err := h.controller.ListStations(ctx)
	if err != nil {
		slog.Error("failed to list stations", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Controller unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, CountByLocation(stations, locations))
}

// CountByLocation counts stations per location of their access point,
// largest first.
func CountByLocation(stations map[string]aruba.Station, locations map[string]string) []models.LocationCount {
	counts := map[string]int{}
	for _, s := range stations {
		location, ok := locations[s.AP]
		if !ok {
			location = UnknownLocation
		}
		counts[location]++
	}

	result := make([]models.LocationCount, 0, len(counts))
	for location, n := range counts {
		result = append(result, models.LocationCount{Location: location, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Location < result[j].Location
	})
	return result
}
