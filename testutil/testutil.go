// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/techlib/wifinator/auth"
	"github.com/techlib/wifinator/cliparse"
	"github.com/techlib/wifinator/daterange"
	"github.com/techlib/wifinator/db"
	"github.com/techlib/wifinator/models"
)

// Headers a reverse proxy sets for an authenticated administrator
var AdminHeaders = map[string]string{
	"X-Roles":     "wifi_admin staff",
	"X-User-Id":   "42",
	"X-Full-Name": "Test Admin",
}

// Headers for a user without administrative roles
var UserHeaders = map[string]string{
	"X-Roles":     "staff",
	"X-User-Id":   "7",
	"X-Full-Name": "Test User",
}

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	conn, err := db.Open(context.Background(), db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Default()
	cfg.DatabaseType = db.TypeSQLite
	cfg.DatabaseURL = "file::memory:"
	cfg.Aruba.Address = "controller.test"
	cfg.Aruba.Username = "admin"
	cfg.Aruba.Password = "secret"
	cfg.Access = map[string][]string{
		models.PrivilegeUser:  {"staff", "wifi_admin"},
		models.PrivilegeAdmin: {"wifi_admin"},
	}
	return cfg
}

// GetTestAccessModel returns the access model of GetTestConfig
func GetTestAccessModel() *auth.AccessModel {
	return auth.NewAccessModel(GetTestConfig().Access)
}

// CreateTestProfile inserts a profile and returns its ID
func CreateTestProfile(t *testing.T, conn *sql.DB, ssid, psk string, start, stop daterange.Date) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO profile (id, ssid, psk, start_day, stop_day)
		VALUES ($1, $2, $3, $4, $5)
	`, id, ssid, psk, start, stop)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return id
}

// CreateTestLocation maps an access point to a location
func CreateTestLocation(t *testing.T, conn *sql.DB, ap, location string) {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO location (ap, location) VALUES ($1, $2)`, ap, location)
	if err != nil {
		t.Fatalf("Failed to create test location: %v", err)
	}
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
