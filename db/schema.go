// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Days are stored as YYYY-MM-DD text, which orders the same way in
// PostgreSQL and SQLite.
const schema = `
-- Network profiles
CREATE TABLE IF NOT EXISTS profile (
    id TEXT PRIMARY KEY,
    ssid TEXT NOT NULL,
    psk TEXT NOT NULL,
    start_day TEXT NOT NULL,
    stop_day TEXT NOT NULL,
    CHECK (start_day <= stop_day)
);

CREATE INDEX IF NOT EXISTS idx_profile_days ON profile(start_day, stop_day);

-- Change history, kept after the profile is gone
CREATE TABLE IF NOT EXISTS audit (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    profile_id TEXT NOT NULL,
    old_data TEXT,
    new_data TEXT,
    changed_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_changed_at ON audit(changed_at);

-- Access point locations
CREATE TABLE IF NOT EXISTS location (
    ap TEXT PRIMARY KEY,
    location TEXT NOT NULL
);
`
