// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/techlib/wifinator/aruba"
	"github.com/techlib/wifinator/models"
	"github.com/techlib/wifinator/testutil"
)

type fakeStations struct {
	stations map[string]aruba.Station
	err      error
}

func (f *fakeStations) Login(context.Context) error { return f.err }

func (f *fakeStations) ListStations(context.Context) (map[string]aruba.Station, error) {
	return f.stations, nil
}

func TestGetStations(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestLocation(t, conn, "ap-1", "Lobby")
	testutil.CreateTestLocation(t, conn, "ap-2", "Reading room")

	ctrl := &fakeStations{stations: map[string]aruba.Station{
		"aa": {MAC: "aa", AP: "ap-1"},
		"bb": {MAC: "bb", AP: "ap-1"},
		"cc": {MAC: "cc", AP: "ap-2"},
		"dd": {MAC: "dd", AP: "ap-9"},
	}}
	handler := NewStationsHandler(conn, ctrl)

	w := httptest.NewRecorder()
	handler.GetStations(w, testutil.MakeRequest("GET", "/stations", nil, testutil.UserHeaders))
	testutil.AssertStatus(t, w, http.StatusOK)

	var counts []models.LocationCount
	testutil.AssertJSON(t, w, &counts)

	want := []models.LocationCount{
		{Location: "Lobby", Count: 2},
		{Location: "Reading room", Count: 1},
		{Location: UnknownLocation, Count: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %+v, got %+v", want, counts)
	}
}

func TestGetStationsControllerDown(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewStationsHandler(conn, &fakeStations{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	handler.GetStations(w, testutil.MakeRequest("GET", "/stations", nil, testutil.UserHeaders))
	testutil.AssertStatus(t, w, http.StatusBadGateway)
}
