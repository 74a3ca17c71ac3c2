// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package main provides the entry point for the Wifinator daemon.

Wifinator manages short-lived WPA networks on an Aruba wireless controller.
Staff schedule a network (SSID, passphrase, first and last day) and the
daemon keeps a pool of controller profiles in step with the schedule.

# Starting the Server

The server reads a TOML or YAML configuration file, the environment and
CLI flags, in increasing order of precedence:

	DATABASE_URL=file:wifinator.db ARUBA_ADDRESS=aruba.example.org go run .

Or with flags:

	go run . -c /etc/ntk/wifinator.toml -p 5000 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - ARUBA_ADDRESS (aruba.address): controller host name

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p) and HOST (-host): listen address (default: localhost:5000)
  - SYNC_INTERVAL (-sync-interval): period of unsolicited syncs (default: 5m)
  - ARUBA_PROFILE_PREFIX (aruba.profile-prefix): managed profiles (default: adhoc-)
  - CORS_ORIGINS (http.cors-origins): browser origins allowed to call the API
  - DEBUG (-debug): debug logging

# Architecture

  - daterange: calendar days and the start/stop picker coordination
  - validate: form rules for network profiles
  - aruba: controller web interface client
  - manager: periodic and on-demand controller synchronization
  - handlers: HTTP request handlers (profiles, calendar, stations, sync)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, RBAC, JSON helpers
  - models: Request/response types
  - auth: roles and user identity from proxy headers
  - db: connections, schema and shared queries
  - cliparse: Configuration parsing

The wifinatorctl command queries the controller directly; see cmd/wifinatorctl.
*/
package main
