// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/techlib/wifinator/daterange"
)

func TestValidateProfileRules(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   []FieldError
	}{
		{
			name:   "valid",
			values: map[string]string{"ssid": "Guest-Net", "psk": "abcd1234", "start": "2024-03-10", "stop": "2024/3/12"},
		},
		{
			name:   "empty form",
			values: map[string]string{},
			want: []FieldError{
				{"ssid", "Only alphanumeric symbols and minus sign allowed"},
				{"ssid", "Cannot be empty"},
				{"psk", "Must be between 8 and 30 characters long"},
				{"psk", "Only alphanumeric symbols allowed"},
				{"start", "Cannot be empty"},
				{"stop", "Cannot be empty"},
				{"start", "Must be in specified format"},
				{"stop", "Must be in specified format"},
			},
		},
		{
			name:   "bad characters",
			values: map[string]string{"ssid": "guest net", "psk": "abcd-1234", "start": "2024-03-10", "stop": "2024-03-10"},
			want: []FieldError{
				{"ssid", "Only alphanumeric symbols and minus sign allowed"},
				{"psk", "Only alphanumeric symbols allowed"},
			},
		},
		{
			name: "too long",
			values: map[string]string{
				"ssid":  "a123456789012345678901234567890",
				"psk":   "a123456789012345678901234567890",
				"start": "2024-03-10",
				"stop":  "2024-03-10",
			},
			want: []FieldError{
				{"ssid", "Network name too long"},
				{"psk", "Must be between 8 and 30 characters long"},
			},
		},
		{
			name:   "bad date format",
			values: map[string]string{"ssid": "guest", "psk": "abcd1234", "start": "10.3.2024", "stop": "2024-13-01"},
			want: []FieldError{
				{"start", "Must be in specified format"},
				{"stop", "Must be in specified format"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(ProfileRules, tt.values)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckProfile(t *testing.T) {
	today := daterange.MustParse("2024-03-10")

	t.Run("valid", func(t *testing.T) {
		p, errs := CheckProfile(ProfileForm{SSID: "guest", PSK: "abcd1234", Start: "2024-03-10", Stop: "2024-03-15"}, today)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if p.Range.Stop != daterange.MustParse("2024-03-15") {
			t.Errorf("Expected stop 2024-03-15, got %s", p.Range.Stop)
		}
	})

	t.Run("calendar invalid day passes regex but fails parse", func(t *testing.T) {
		_, errs := CheckProfile(ProfileForm{SSID: "guest", PSK: "abcd1234", Start: "2024-02-30", Stop: "2024-03-15"}, noToday)
		want := []FieldError{{"start", "Invalid date"}}
		if diff := cmp.Diff(want, errs); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("calendar errors reported with rule errors", func(t *testing.T) {
		_, errs := CheckProfile(ProfileForm{SSID: "guest net", PSK: "abcd1234", Start: "2024-02-30", Stop: "15.3.2024"}, today)
		want := []FieldError{
			{"ssid", "Only alphanumeric symbols and minus sign allowed"},
			{"stop", "Must be in specified format"},
			{"start", "Invalid date"},
		}
		if diff := cmp.Diff(want, errs); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("start in the past", func(t *testing.T) {
		_, errs := CheckProfile(ProfileForm{SSID: "guest", PSK: "abcd1234", Start: "2024-03-09", Stop: "2024-03-15"}, today)
		if !Failed(errs, "start") {
			t.Errorf("Expected start error, got %v", errs)
		}
	})

	t.Run("start in the past allowed without today", func(t *testing.T) {
		_, errs := CheckProfile(ProfileForm{SSID: "guest", PSK: "abcd1234", Start: "2024-03-09", Stop: "2024-03-15"}, noToday)
		if len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("stop before start", func(t *testing.T) {
		_, errs := CheckProfile(ProfileForm{SSID: "guest", PSK: "abcd1234", Start: "2024-03-12", Stop: "2024-03-11"}, today)
		want := []FieldError{{"stop", "Last day must not come before the first day"}}
		if diff := cmp.Diff(want, errs); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

// noToday disables the start-in-the-past check.
var noToday daterange.Date
