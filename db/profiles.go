// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/techlib/wifinator/daterange"
	"github.com/techlib/wifinator/models"
)

// Queryer is satisfied by *sql.DB and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ProfileStore reads profiles for the sync manager.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// ActiveProfiles returns the profiles broadcast on day.
func (s *ProfileStore) ActiveProfiles(ctx context.Context, day daterange.Date) ([]models.Profile, error) {
	current, err := CurrentProfiles(ctx, s.db, day)
	if err != nil {
		return nil, err
	}

	active := current[:0]
	for _, p := range current {
		if p.Active(day) {
			active = append(active, p)
		}
	}
	return active, nil
}

// CurrentProfiles returns the profiles that have not ended before day,
// ordered by first day.
func CurrentProfiles(ctx context.Context, q Queryer, day daterange.Date) ([]models.Profile, error) {
	return queryProfiles(ctx, q, `
		SELECT id, ssid, psk, start_day, stop_day
		FROM profile
		WHERE stop_day >= $1
		ORDER BY start_day, ssid
	`, day)
}

// GetProfile returns sql.ErrNoRows when the profile does not exist.
func GetProfile(ctx context.Context, q Queryer, id string) (models.Profile, error) {
	var p models.Profile
	err := q.QueryRowContext(ctx, `
		SELECT id, ssid, psk, start_day, stop_day
		FROM profile
		WHERE id = $1
	`, id).Scan(&p.ID, &p.SSID, &p.PSK, &p.Start, &p.Stop)
	return p, err
}

func queryProfiles(ctx context.Context, q Queryer, query string, args ...any) ([]models.Profile, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.SSID, &p.PSK, &p.Start, &p.Stop); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// InsertAudit records a change. The ID is time ordered so entries written in
// the same instant keep their order.
func InsertAudit(ctx context.Context, q Queryer, user, profileID string, oldData, newData *models.ProfileData) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate audit ID: %w", err)
	}

	oldJSON, err := marshalData(oldData)
	if err != nil {
		return err
	}
	newJSON, err := marshalData(newData)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO audit (id, username, profile_id, old_data, new_data, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id.String(), user, profileID, oldJSON, newJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert audit: %w", err)
	}
	return nil
}

// RecentAudit returns up to limit entries, newest first.
func RecentAudit(ctx context.Context, q Queryer, limit int) ([]models.AuditEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, username, profile_id, old_data, new_data, changed_at
		FROM audit
		ORDER BY changed_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var (
			e                models.AuditEntry
			oldJSON, newJSON sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.User, &e.ProfileID, &oldJSON, &newJSON, &e.Time); err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		if e.OldData, err = unmarshalData(oldJSON); err != nil {
			return nil, err
		}
		if e.NewData, err = unmarshalData(newJSON); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Locations maps access point names to their location.
func Locations(ctx context.Context, q Queryer) (map[string]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT ap, location FROM location`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := map[string]string{}
	for rows.Next() {
		var ap, location string
		if err := rows.Scan(&ap, &location); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations[ap] = location
	}
	return locations, rows.Err()
}

// SetLocation assigns an access point to a location, replacing any previous
// assignment.
func SetLocation(ctx context.Context, q Queryer, ap, location string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO location (ap, location)
		VALUES ($1, $2)
		ON CONFLICT (ap) DO UPDATE SET location = excluded.location
	`, ap, location)
	if err != nil {
		return fmt.Errorf("failed to set location: %w", err)
	}
	return nil
}

func marshalData(d *models.ProfileData) (sql.NullString, error) {
	if d == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode audit data: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalData(s sql.NullString) (*models.ProfileData, error) {
	if !s.Valid {
		return nil, nil
	}
	var d models.ProfileData
	if err := json.Unmarshal([]byte(s.String), &d); err != nil {
		return nil, fmt.Errorf("failed to decode audit data: %w", err)
	}
	return &d, nil
}
