// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/techlib/wifinator/daterange"
)

// Check decides whether a single field value passes.
type Check func(value string) bool

// Rule ties a check to a form field and the message shown when it fails.
type Rule struct {
	Field   string
	Check   Check
	Message string
}

// FieldError is a failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Pattern passes values matching re.
func Pattern(re *regexp.Regexp) Check {
	return re.MatchString
}

// Presence passes non-blank values.
func Presence() Check {
	return func(v string) bool {
		return strings.TrimSpace(v) != ""
	}
}

// BetweenLength passes values of min to max characters inclusive.
func BetweenLength(min, max int) Check {
	return func(v string) bool {
		n := utf8.RuneCountInString(v)
		return n >= min && n <= max
	}
}

// MaxLength passes values of at most max characters.
func MaxLength(max int) Check {
	return BetweenLength(0, max)
}

var (
	ssidPattern = regexp.MustCompile(`(?i)^[a-z0-9\-]+$`)
	pskPattern  = regexp.MustCompile(`(?i)^[a-z0-9]+$`)
)

// ProfileRules are the rules of the network profile form.
var ProfileRules = []Rule{
	{"ssid", Pattern(ssidPattern), "Only alphanumeric symbols and minus sign allowed"},
	{"ssid", Presence(), "Cannot be empty"},
	{"ssid", MaxLength(30), "Network name too long"},
	{"psk", BetweenLength(8, 30), "Must be between 8 and 30 characters long"},
	{"psk", Pattern(pskPattern), "Only alphanumeric symbols allowed"},
	{"start", Presence(), "Cannot be empty"},
	{"stop", Presence(), "Cannot be empty"},
	{"start", Pattern(daterange.FormatPattern), "Must be in specified format"},
	{"stop", Pattern(daterange.FormatPattern), "Must be in specified format"},
}

// Validate runs rules against values and returns every failure in rule
// order. Missing fields validate as empty strings.
func Validate(rules []Rule, values map[string]string) []FieldError {
	var errs []FieldError
	for _, rule := range rules {
		if !rule.Check(values[rule.Field]) {
			errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}
	return errs
}

// Failed reports whether field has at least one error.
func Failed(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
