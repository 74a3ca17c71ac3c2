// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Access Control

Reject requests whose X-Roles lack a privilege:

	middleware.RequirePrivilege(access, models.PrivilegeAdmin, handler)

# CORS Middleware

Only origins listed in http.cors-origins (or CORS_ORIGINS) receive CORS
headers, including Access-Control-Allow-Credentials.

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins, mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationResponse(w, fieldErrors)

	var req models.ProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
