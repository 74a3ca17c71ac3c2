// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - ProfileRequest: ssid, psk, start, stop (dates as typed in the form)
  - SyncRequest: force (SSIDs to push regardless of controller state)

# Response Types

  - CreateProfileResponse: profile_id
  - ProfileListResponse: today, profiles, changes
  - CalendarResponse: month view with picker selectability
  - LocationCount: station count per AP location
  - SyncResponse: scheduled, force
  - ErrorResponse: error, message, fields

# Domain Types

  - Profile: a network broadcast from Start to Stop inclusive
  - ProfileData: audited snapshot of a profile
  - AuditEntry: who changed what and when
  - Change: prose description of an audit entry

Dates are daterange.Date values and serialize as YYYY-MM-DD.
*/
package models
