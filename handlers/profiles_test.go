// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/techlib/wifinator/daterange"
	"github.com/techlib/wifinator/models"
	"github.com/techlib/wifinator/testutil"
)

var testToday = daterange.MustParse("2024-03-10")

func fixedClock() daterange.Date { return testToday }

// fakeScheduler records ScheduleSync calls
type fakeScheduler struct {
	mu    sync.Mutex
	calls [][]string
}

func (s *fakeScheduler) ScheduleSync(force ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, force)
}

func (s *fakeScheduler) Calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.calls...)
}

func newTestProfileHandler(t *testing.T) (*ProfileHandler, *fakeScheduler) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	sched := &fakeScheduler{}
	return NewProfileHandler(conn, testutil.GetTestConfig(), sched, fixedClock), sched
}

func withID(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}

func TestCreateProfile(t *testing.T) {
	tests := []struct {
		name           string
		request        interface{}
		expectedStatus int
		expectedField  string
		expectedMsg    string
	}{
		{
			name:           "valid profile",
			request:        models.ProfileRequest{SSID: "conference", PSK: "password1", Start: "2024-03-10", Stop: "2024-03-12"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "single day",
			request:        models.ProfileRequest{SSID: "guests", PSK: "password1", Start: "2024-03-15", Stop: "2024-03-15"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing ssid",
			request:        models.ProfileRequest{PSK: "password1", Start: "2024-03-10", Stop: "2024-03-12"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "ssid",
		},
		{
			name:           "ssid too long",
			request:        models.ProfileRequest{SSID: "abcdefghijklmnopqrstuvwxyz012345", PSK: "password1", Start: "2024-03-10", Stop: "2024-03-12"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "ssid",
			expectedMsg:    "Network name too long",
		},
		{
			name:           "password too short",
			request:        models.ProfileRequest{SSID: "conference", PSK: "short", Start: "2024-03-10", Stop: "2024-03-12"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "psk",
		},
		{
			name:           "start in the past",
			request:        models.ProfileRequest{SSID: "conference", PSK: "password1", Start: "2024-03-09", Stop: "2024-03-12"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "start",
			expectedMsg:    "First day must not be in the past",
		},
		{
			name:           "stop before start",
			request:        models.ProfileRequest{SSID: "conference", PSK: "password1", Start: "2024-03-12", Stop: "2024-03-11"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "stop",
			expectedMsg:    "Last day must not come before the first day",
		},
		{
			name:           "calendar invalid date",
			request:        models.ProfileRequest{SSID: "conference", PSK: "password1", Start: "2024-02-30", Stop: "2024-03-12"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "start",
			expectedMsg:    "Invalid date",
		},
		{
			name:           "invalid JSON",
			request:        "not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, sched := newTestProfileHandler(t)

			req := testutil.MakeRequest("POST", "/profiles", tc.request, testutil.AdminHeaders)
			w := httptest.NewRecorder()
			handler.CreateProfile(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusCreated {
				var resp models.CreateProfileResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ProfileID == "" {
					t.Error("Expected profile_id in response")
				}
				if n := testutil.CountRows(t, handler.db, "audit"); n != 1 {
					t.Errorf("Expected 1 audit row, got %d", n)
				}
				if len(sched.Calls()) != 1 {
					t.Errorf("Expected one scheduled sync, got %v", sched.Calls())
				}
				return
			}

			if n := testutil.CountRows(t, handler.db, "profile"); n != 0 {
				t.Errorf("Expected no profile to be stored, got %d", n)
			}
			if len(sched.Calls()) != 0 {
				t.Errorf("Expected no scheduled sync, got %v", sched.Calls())
			}

			if tc.expectedField == "" {
				return
			}
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			found := false
			for _, f := range resp.Fields {
				if f.Field == tc.expectedField && (tc.expectedMsg == "" || f.Message == tc.expectedMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error on %s (%q), got %+v", tc.expectedField, tc.expectedMsg, resp.Fields)
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	handler, _ := newTestProfileHandler(t)
	id := testutil.CreateTestProfile(t, handler.db, "conference", "password1", testToday, testToday.AddDays(2))

	w := httptest.NewRecorder()
	handler.GetProfile(w, withID(testutil.MakeRequest("GET", "/profiles/"+id, nil, testutil.AdminHeaders), id))
	testutil.AssertStatus(t, w, http.StatusOK)

	var p models.Profile
	testutil.AssertJSON(t, w, &p)
	if p.ID != id || p.SSID != "conference" || p.Stop != daterange.MustParse("2024-03-12") {
		t.Errorf("Unexpected profile: %+v", p)
	}

	w = httptest.NewRecorder()
	handler.GetProfile(w, withID(testutil.MakeRequest("GET", "/profiles/missing", nil, testutil.AdminHeaders), "missing"))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != MsgProfileGone {
		t.Errorf("Expected %q, got %q", MsgProfileGone, resp.Message)
	}
}

func TestUpdateProfile(t *testing.T) {
	handler, sched := newTestProfileHandler(t)

	// started yesterday, so its first day is already in the past
	id := testutil.CreateTestProfile(t, handler.db, "conference", "password1", testToday.AddDays(-1), testToday.AddDays(2))

	t.Run("keeps past start when unchanged", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/profiles/"+id, models.ProfileRequest{PSK: "password2"}, testutil.AdminHeaders)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, withID(req, id))
		testutil.AssertStatus(t, w, http.StatusOK)

		var p models.Profile
		testutil.AssertJSON(t, w, &p)
		if p.PSK != "password2" || p.SSID != "conference" || p.Start != testToday.AddDays(-1) {
			t.Errorf("Unexpected profile: %+v", p)
		}
	})

	t.Run("rejects moving start into the past", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/profiles/"+id, models.ProfileRequest{Start: "2024-03-08"}, testutil.AdminHeaders)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, withID(req, id))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects stop before start", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/profiles/"+id, models.ProfileRequest{Stop: "2024-03-01"}, testutil.AdminHeaders)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, withID(req, id))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("renames and forces sync", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/profiles/"+id, models.ProfileRequest{SSID: "workshop", Start: "2024-03-11"}, testutil.AdminHeaders)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, withID(req, id))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("missing profile", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/profiles/missing", models.ProfileRequest{PSK: "password3"}, testutil.AdminHeaders)
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, withID(req, "missing"))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	calls := sched.Calls()
	if len(calls) != 2 || len(calls[0]) != 1 || calls[0][0] != "conference" || calls[1][0] != "workshop" {
		t.Errorf("Expected forced syncs of conference then workshop, got %v", calls)
	}
	if n := testutil.CountRows(t, handler.db, "audit"); n != 2 {
		t.Errorf("Expected 2 audit rows, got %d", n)
	}
}

func TestDeleteProfile(t *testing.T) {
	handler, sched := newTestProfileHandler(t)
	id := testutil.CreateTestProfile(t, handler.db, "conference", "password1", testToday, testToday)

	w := httptest.NewRecorder()
	handler.DeleteProfile(w, withID(testutil.MakeRequest("DELETE", "/profiles/"+id, nil, testutil.AdminHeaders), id))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if n := testutil.CountRows(t, handler.db, "profile"); n != 0 {
		t.Errorf("Expected profile to be deleted, %d left", n)
	}
	if len(sched.Calls()) != 1 {
		t.Errorf("Expected one scheduled sync, got %v", sched.Calls())
	}

	// second delete finds nothing
	w = httptest.NewRecorder()
	handler.DeleteProfile(w, withID(testutil.MakeRequest("DELETE", "/profiles/"+id, nil, testutil.AdminHeaders), id))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListProfiles(t *testing.T) {
	handler, _ := newTestProfileHandler(t)
	testutil.CreateTestProfile(t, handler.db, "ended", "password1", testToday.AddDays(-5), testToday.AddDays(-1))
	testutil.CreateTestProfile(t, handler.db, "later", "password2", testToday.AddDays(3), testToday.AddDays(4))
	testutil.CreateTestProfile(t, handler.db, "now", "password3", testToday, testToday)

	w := httptest.NewRecorder()
	handler.ListProfiles(w, testutil.MakeRequest("GET", "/profiles", nil, testutil.UserHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ProfileListResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Today != testToday {
		t.Errorf("Expected today %s, got %s", testToday, resp.Today)
	}
	if len(resp.Profiles) != 2 || resp.Profiles[0].SSID != "now" || resp.Profiles[1].SSID != "later" {
		t.Errorf("Unexpected profiles: %+v", resp.Profiles)
	}
	if len(resp.Changes) != 0 {
		t.Errorf("Expected no changes, got %+v", resp.Changes)
	}
}

func TestQRCode(t *testing.T) {
	handler, _ := newTestProfileHandler(t)
	id := testutil.CreateTestProfile(t, handler.db, "conference", "password1", testToday, testToday)

	w := httptest.NewRecorder()
	handler.QRCode(w, withID(testutil.MakeRequest("GET", "/profiles/"+id+"/qr.png", nil, testutil.AdminHeaders), id))
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Errorf("Response is not a PNG: %v", err)
	}
}

func TestWiFiURI(t *testing.T) {
	if got := WiFiURI("conference", "password1"); got != "WIFI:S:conference;T:WPA;P:password1;;" {
		t.Errorf("Unexpected URI: %s", got)
	}
	if got := WiFiURI(`a;b`, `p:w"d`); got != `WIFI:S:a\;b;T:WPA;P:p\:w\"d;;` {
		t.Errorf("Special characters not escaped: %s", got)
	}
}

func TestDescribeChanges(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	base := models.ProfileData{SSID: "conference", PSK: "password1", Start: testToday, Stop: testToday.AddDays(2)}
	edited := models.ProfileData{SSID: "workshop", PSK: "password2", Start: testToday.AddDays(1), Stop: testToday.AddDays(3)}

	changes := DescribeChanges([]models.AuditEntry{
		{User: "Alice", NewData: &base, Time: at},
		{User: "Bob", OldData: &base, NewData: &edited, Time: at},
		{User: "Carol", OldData: &edited, Time: at},
	})

	want := []string{
		"created conference",
		"renamed conference to workshop",
		"changed password of workshop to password2",
		"moved first day of workshop to 2024-03-11",
		"moved last day of workshop to 2024-03-13",
		"removed workshop",
	}
	if len(changes) != len(want) {
		t.Fatalf("Expected %d changes, got %d: %+v", len(want), len(changes), changes)
	}
	for i, c := range changes {
		if c.Desc != want[i] {
			t.Errorf("change %d: expected %q, got %q", i, want[i], c.Desc)
		}
	}
	if changes[1].User != "Bob" || !changes[1].Time.Equal(at) {
		t.Errorf("Unexpected attribution: %+v", changes[1])
	}
}
