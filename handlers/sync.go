// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/techlib/wifinator/auth"
	"github.com/techlib/wifinator/middleware"
	"github.com/techlib/wifinator/models"
)

type SyncHandler struct {
	sync Scheduler
}

func NewSyncHandler(sync Scheduler) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// RequestSync handles POST /sync. The body is optional.
func (h *SyncHandler) RequestSync(w http.ResponseWriter, r *http.Request) {
	var req models.SyncRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := auth.UserFromRequest(r)
	slog.Info("synchronization requested", "user", user.Name, "force", req.Force)
	h.sync.ScheduleSync(req.Force...)

	middleware.JSONResponse(w, http.StatusAccepted, models.SyncResponse{
		Scheduled: true,
		Force:     req.Force,
	})
}

type SessionHandler struct {
	access *auth.AccessModel
}

func NewSessionHandler(access *auth.AccessModel) *SessionHandler {
	return &SessionHandler{access: access}
}

// GetMe handles GET /me
func (h *SessionHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromRequest(r)
	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		ID:         user.ID,
		Name:       user.Name,
		Roles:      user.Roles,
		Privileges: h.access.Privileges(user.Roles),
	})
}
