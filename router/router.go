// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/techlib/wifinator/auth"
	"github.com/techlib/wifinator/cliparse"
	"github.com/techlib/wifinator/handlers"
	"github.com/techlib/wifinator/middleware"
	"github.com/techlib/wifinator/models"
)

// Deps are the collaborators of the handlers besides the database.
type Deps struct {
	Sync       handlers.Scheduler
	Controller handlers.StationLister
	// nil means the current local day
	Today handlers.Clock
}

func NewRouter(db *sql.DB, cfg cliparse.Config, deps Deps) *http.ServeMux {
	mux := http.NewServeMux()
	access := auth.NewAccessModel(cfg.Access)

	user := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequirePrivilege(access, models.PrivilegeUser, next))
	}
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequirePrivilege(access, models.PrivilegeAdmin, next))
	}

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(db, cfg, deps.Sync, deps.Today)
	calendarHandler := handlers.NewCalendarHandler(deps.Today)
	stationsHandler := handlers.NewStationsHandler(db, deps.Controller)
	syncHandler := handlers.NewSyncHandler(deps.Sync)
	sessionHandler := handlers.NewSessionHandler(access)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Caller identity (public)
	mux.HandleFunc("GET /me", middleware.WithLogging(sessionHandler.GetMe))

	// Profiles
	mux.HandleFunc("GET /profiles", user(profileHandler.ListProfiles))
	mux.HandleFunc("POST /profiles", admin(profileHandler.CreateProfile))
	mux.HandleFunc("GET /profiles/{id}", admin(profileHandler.GetProfile))
	mux.HandleFunc("PUT /profiles/{id}", admin(profileHandler.UpdateProfile))
	mux.HandleFunc("DELETE /profiles/{id}", admin(profileHandler.DeleteProfile))
	mux.HandleFunc("GET /profiles/{id}/qr.png", admin(profileHandler.QRCode))

	// Date pickers
	mux.HandleFunc("GET /calendar", user(calendarHandler.GetCalendar))

	// Controller
	mux.HandleFunc("GET /stations", user(stationsHandler.GetStations))
	mux.HandleFunc("POST /sync", admin(syncHandler.RequestSync))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("wifinator API v1"))
	})

	return mux
}
