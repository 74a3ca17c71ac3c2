// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package router defines HTTP routes for the Wifinator API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, router.Deps{
		Sync:       manager,
		Controller: arubaClient,
	})

# Endpoints

Public:

	GET /health - Liveness probe
	GET /me     - Caller identity and privileges

User privilege:

	GET /profiles - Profiles not yet ended and recent changes
	GET /calendar - Day grid for the date pickers
	GET /stations - Connected stations per location

Admin privilege:

	POST   /profiles              - Create profile
	GET    /profiles/{id}         - Profile details
	PUT    /profiles/{id}         - Edit profile
	DELETE /profiles/{id}         - Remove profile
	GET    /profiles/{id}/qr.png  - Join-network QR code
	POST   /sync                  - Schedule a controller synchronization

# Access Control

Privileges are granted to the roles a reverse proxy passes in X-Roles,
according to the access section of the configuration. Requests without a
granted role get 403 "RBAC Forbidden".
*/
package router
