// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Wifinator API.

# Handler Types

Each handler is a struct with its dependencies:

  - ProfileHandler: network profile lifecycle, change log and QR codes
  - CalendarHandler: month grids for the start and stop day pickers
  - StationsHandler: connected station counts per location
  - SyncHandler: on-demand controller synchronization
  - SessionHandler: identity and privileges of the caller

Handlers are created via constructor functions:

	profiles := handlers.NewProfileHandler(db, cfg, manager, nil)

A nil Clock means the handler uses the current local day.

# Profile Lifecycle

	GET    /profiles            → ListProfiles (not yet ended + change log)
	POST   /profiles            → CreateProfile
	GET    /profiles/{id}       → GetProfile
	PUT    /profiles/{id}       → UpdateProfile (omitted fields are kept)
	DELETE /profiles/{id}       → DeleteProfile
	GET    /profiles/{id}/qr.png → QRCode

Every write stores the old and new snapshot in the audit table within the
same transaction and then asks the Scheduler for a synchronization. Updates
force the new SSID so a changed passphrase reaches the controller.

A profile whose first day already passed may be edited without moving that
day; a changed first day must not be in the past.

# Validation

Submitted forms go through validate.CheckProfile. Failures are returned as
400 with one entry per failed rule:

	{"error": "Bad Request", "message": "Must be between 8 and 30 characters long",
	 "fields": [{"field": "psk", "message": "Must be between 8 and 30 characters long"}]}
*/
package handlers
