// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/techlib/wifinator/auth"
	"github.com/techlib/wifinator/cliparse"
	"github.com/techlib/wifinator/daterange"
	"github.com/techlib/wifinator/db"
	"github.com/techlib/wifinator/middleware"
	"github.com/techlib/wifinator/models"
	"github.com/techlib/wifinator/validate"
)

// MsgProfileGone is returned when the profile was removed by someone else.
const MsgProfileGone = "Network disappeared in the meantime."

// RecentChanges is the number of audit entries listed with the profiles.
const RecentChanges = 50

// Scheduler requests a controller synchronization.
type Scheduler interface {
	ScheduleSync(force ...string)
}

// Clock returns the current day.
type Clock func() daterange.Date

type ProfileHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	sync  Scheduler
	today Clock
}

// NewProfileHandler creates a handler. A nil clock means daterange.Today.
func NewProfileHandler(db *sql.DB, cfg cliparse.Config, sync Scheduler, today Clock) *ProfileHandler {
	if today == nil {
		today = daterange.Today
	}
	return &ProfileHandler{db: db, cfg: cfg, sync: sync, today: today}
}

// ListProfiles handles GET /profiles
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := h.today()

	profiles, err := db.CurrentProfiles(ctx, h.db, today)
	if err != nil {
		slog.Error("failed to query profiles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	audit, err := db.RecentAudit(ctx, h.db, RecentChanges)
	if err != nil {
		slog.Error("failed to query audit", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileListResponse{
		Today:    today,
		Profiles: profiles,
		Changes:  DescribeChanges(audit),
	})
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	form := validate.ProfileForm{SSID: req.SSID, PSK: req.PSK, Start: req.Start, Stop: req.Stop}
	valid, fields := validate.CheckProfile(form, h.today())
	if len(fields) > 0 {
		middleware.ValidationResponse(w, fields)
		return
	}

	user := auth.UserFromRequest(r)
	profileID := uuid.NewString()
	data := &models.ProfileData{SSID: valid.SSID, PSK: valid.PSK, Start: valid.Range.Start, Stop: valid.Range.Stop}

	ctx := r.Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profile (id, ssid, psk, start_day, stop_day)
		VALUES ($1, $2, $3, $4, $5)
	`, profileID, data.SSID, data.PSK, data.Start, data.Stop)
	if err != nil {
		slog.Error("failed to insert profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	if err := db.InsertAudit(ctx, tx, user.Name, profileID, nil, data); err != nil {
		slog.Error("failed to record audit", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	slog.Info("profile created", "profile_id", profileID, "ssid", data.SSID, "user", user.Name)
	h.sync.ScheduleSync()

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProfileResponse{ProfileID: profileID})
}

// GetProfile handles GET /profiles/{id}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /profiles/{id}. Omitted fields keep their
// current value.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	old, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	form := validate.ProfileForm{
		SSID:  orDefault(req.SSID, old.SSID),
		PSK:   orDefault(req.PSK, old.PSK),
		Start: orDefault(req.Start, old.Start.String()),
		Stop:  orDefault(req.Stop, old.Stop.String()),
	}

	// a first day already in the past may stay where it is
	var today daterange.Date
	if start, err := daterange.Parse(form.Start); err != nil || start != old.Start {
		today = h.today()
	}

	valid, fields := validate.CheckProfile(form, today)
	if len(fields) > 0 {
		middleware.ValidationResponse(w, fields)
		return
	}

	user := auth.UserFromRequest(r)
	data := &models.ProfileData{SSID: valid.SSID, PSK: valid.PSK, Start: valid.Range.Start, Stop: valid.Range.Stop}

	ctx := r.Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE profile
		SET ssid = $1, psk = $2, start_day = $3, stop_day = $4
		WHERE id = $5
	`, data.SSID, data.PSK, data.Start, data.Stop, old.ID)
	if err != nil {
		slog.Error("failed to update profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, MsgProfileGone)
		return
	}

	if err := db.InsertAudit(ctx, tx, user.Name, old.ID, old.Data(), data); err != nil {
		slog.Error("failed to record audit", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	slog.Info("profile updated", "profile_id", old.ID, "ssid", data.SSID, "user", user.Name)
	h.sync.ScheduleSync(data.SSID)

	middleware.JSONResponse(w, http.StatusOK, models.Profile{
		ID:    old.ID,
		SSID:  data.SSID,
		PSK:   data.PSK,
		Start: data.Start,
		Stop:  data.Stop,
	})
}

// DeleteProfile handles DELETE /profiles/{id}
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	old, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	user := auth.UserFromRequest(r)
	ctx := r.Context()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM profile WHERE id = $1`, old.ID)
	if err != nil {
		slog.Error("failed to delete profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, MsgProfileGone)
		return
	}

	if err := db.InsertAudit(ctx, tx, user.Name, old.ID, old.Data(), nil); err != nil {
		slog.Error("failed to record audit", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit deletion", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	slog.Info("profile deleted", "profile_id", old.ID, "ssid", old.SSID, "user", user.Name)
	h.sync.ScheduleSync()

	w.WriteHeader(http.StatusNoContent)
}

// QRCode handles GET /profiles/{id}/qr.png
func (h *ProfileHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(WiFiURI(profile.SSID, profile.PSK), qrcode.Medium, 256)
	if err != nil {
		slog.Error("failed to encode QR code", "profile_id", profile.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// loadProfile writes the error response itself when it returns false.
func (h *ProfileHandler) loadProfile(w http.ResponseWriter, r *http.Request) (models.Profile, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "profile_id is required")
		return models.Profile{}, false
	}

	profile, err := db.GetProfile(r.Context(), h.db, id)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, MsgProfileGone)
		return models.Profile{}, false
	}
	if err != nil {
		slog.Error("failed to query profile", "profile_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Profile{}, false
	}
	return profile, true
}

var wifiEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)

// WiFiURI is the payload phones understand as a network to join.
func WiFiURI(ssid, psk string) string {
	return fmt.Sprintf("WIFI:S:%s;T:WPA;P:%s;;", wifiEscaper.Replace(ssid), wifiEscaper.Replace(psk))
}

// DescribeChanges turns audit entries into one line per changed attribute.
func DescribeChanges(entries []models.AuditEntry) []models.Change {
	changes := []models.Change{}
	for _, e := range entries {
		add := func(format string, args ...any) {
			changes = append(changes, models.Change{
				Time: e.Time,
				User: e.User,
				Desc: fmt.Sprintf(format, args...),
			})
		}

		switch before, after := e.OldData, e.NewData; {
		case before == nil && after == nil:
		case before == nil:
			add("created %s", after.SSID)
		case after == nil:
			add("removed %s", before.SSID)
		default:
			if before.SSID != after.SSID {
				add("renamed %s to %s", before.SSID, after.SSID)
			}
			if before.PSK != after.PSK {
				add("changed password of %s to %s", after.SSID, after.PSK)
			}
			if before.Start != after.Start {
				add("moved first day of %s to %s", after.SSID, after.Start)
			}
			if before.Stop != after.Stop {
				add("moved last day of %s to %s", after.SSID, after.Stop)
			}
		}
	}
	return changes
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
