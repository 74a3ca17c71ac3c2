package models

import (
	"time"

	"github.com/techlib/wifinator/daterange"
	"github.com/techlib/wifinator/validate"
)

// Privilege names used by the access model
const (
	PrivilegeUser  = "user"
	PrivilegeAdmin = "admin"
)

// Request types

// ProfileRequest is the body of POST /profiles and PUT /profiles/{id}.
// Dates are kept as strings so the form rules see exactly what was typed.
type ProfileRequest struct {
	SSID  string `json:"ssid"`
	PSK   string `json:"psk"`
	Start string `json:"start"`
	Stop  string `json:"stop"`
}

type SyncRequest struct {
	Force []string `json:"force"`
}

// Response types

type CreateProfileResponse struct {
	ProfileID string `json:"profile_id"`
}

type ProfileListResponse struct {
	Today    daterange.Date `json:"today"`
	Profiles []Profile      `json:"profiles"`
	Changes  []Change       `json:"changes"`
}

type CalendarResponse struct {
	Month string                  `json:"month"`
	Today daterange.Date          `json:"today"`
	Start daterange.Date          `json:"start"`
	Days  []daterange.CalendarDay `json:"days"`
}

// LocationCount is the number of stations associated to APs at a location
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// MeResponse describes the caller as seen through the proxy headers
type MeResponse struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Roles      []string `json:"roles"`
	Privileges []string `json:"privileges"`
}

type SyncResponse struct {
	Scheduled bool     `json:"scheduled"`
	Force     []string `json:"force,omitempty"`
}

// Domain types

// Profile is a network that should be broadcast from Start to Stop inclusive.
type Profile struct {
	ID    string         `json:"id"`
	SSID  string         `json:"ssid"`
	PSK   string         `json:"psk"`
	Start daterange.Date `json:"start"`
	Stop  daterange.Date `json:"stop"`
}

// Active reports whether the profile should be broadcast on day.
func (p Profile) Active(day daterange.Date) bool {
	return daterange.RangeState{Start: p.Start, Stop: p.Stop}.Contains(day)
}

// ProfileData is the audited snapshot of a profile.
type ProfileData struct {
	SSID  string         `json:"ssid"`
	PSK   string         `json:"psk"`
	Start daterange.Date `json:"start"`
	Stop  daterange.Date `json:"stop"`
}

func (p Profile) Data() *ProfileData {
	return &ProfileData{SSID: p.SSID, PSK: p.PSK, Start: p.Start, Stop: p.Stop}
}

// AuditEntry records one change. OldData is nil on creation and NewData is
// nil on removal.
type AuditEntry struct {
	ID        string       `json:"id"`
	User      string       `json:"user"`
	ProfileID string       `json:"profile_id"`
	OldData   *ProfileData `json:"old_data"`
	NewData   *ProfileData `json:"new_data"`
	Time      time.Time    `json:"time"`
}

// Change is a human readable line derived from an audit entry.
type Change struct {
	Time time.Time `json:"time"`
	User string    `json:"user"`
	Desc string    `json:"desc"`
}

// Error response

type ErrorResponse struct {
	Error   string                `json:"error"`
	Message string                `json:"message,omitempty"`
	Fields  []validate.FieldError `json:"fields,omitempty"`
}
