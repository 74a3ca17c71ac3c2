// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package validate

import (
	"errors"

	"github.com/techlib/wifinator/daterange"
)

// ProfileForm is a submitted network profile.
type ProfileForm struct {
	SSID  string
	PSK   string
	Start string
	Stop  string
}

// Profile is a ProfileForm that passed validation.
type Profile struct {
	SSID  string
	PSK   string
	Range daterange.RangeState
}

func (f ProfileForm) values() map[string]string {
	return map[string]string{
		"ssid":  f.SSID,
		"psk":   f.PSK,
		"start": f.Start,
		"stop":  f.Stop,
	}
}

// CheckProfile validates f with ProfileRules and then the date range.
// Days that passed the form rules are also checked against the calendar,
// so one response lists every field error; the range is checked only for
// an otherwise valid form.
//
// today disables start days in the past; pass the zero Date when the start
// day is allowed to stay where it already is.
func CheckProfile(f ProfileForm, today daterange.Date) (Profile, []FieldError) {
	errs := Validate(ProfileRules, f.values())

	var start, stop daterange.Date
	if !Failed(errs, "start") {
		var err error
		if start, err = daterange.Parse(f.Start); err != nil {
			errs = append(errs, FieldError{Field: "start", Message: "Invalid date"})
		}
	}
	if !Failed(errs, "stop") {
		var err error
		if stop, err = daterange.Parse(f.Stop); err != nil {
			errs = append(errs, FieldError{Field: "stop", Message: "Invalid date"})
		}
	}
	if len(errs) > 0 {
		return Profile{}, errs
	}

	r := daterange.RangeState{Start: start, Stop: stop}
	if err := daterange.Check(today, r); err != nil {
		switch {
		case errors.Is(err, daterange.ErrStartInPast):
			errs = append(errs, FieldError{Field: "start", Message: "First day must not be in the past"})
		default:
			errs = append(errs, FieldError{Field: "stop", Message: "Last day must not come before the first day"})
		}
		return Profile{}, errs
	}

	return Profile{SSID: f.SSID, PSK: f.PSK, Range: r}, nil
}
