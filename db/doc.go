// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package db handles database connections, schema creation, and the queries
shared between the API and the sync manager.

# Connections

Open accepts a database type and URL. PostgreSQL uses lib/pq, SQLite uses
the pure-Go modernc.org/sqlite driver:

	conn, err := db.Open(ctx, "postgres", "postgres://wifinator@localhost/wifinator")
	conn, err := db.Open(ctx, "sqlite", "file:wifinator.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - profile: SSID, PSK, first and last day (inclusive, YYYY-MM-DD)
  - audit: old and new profile snapshots as JSON, who and when
  - location: access point to location mapping

Audit rows reference a profile ID without a foreign key so that history
survives the profile's removal.

# Queries

ProfileStore.ActiveProfiles feeds the sync manager. CurrentProfiles,
GetProfile, InsertAudit, RecentAudit and Locations accept a Queryer so they
work inside a transaction.
*/
package db
