// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Headers set by the authenticating reverse proxy
const (
	HeaderRoles    = "X-Roles"
	HeaderUserID   = "X-User-Id"
	HeaderFullName = "X-Full-Name"
)

// RoleNobody is assigned to requests that carry no roles at all.
const RoleNobody = "impotent"

var ErrForbidden = errors.New("RBAC Forbidden")

var roleWord = regexp.MustCompile(`\w+`)

// AccessModel maps privileges to the roles that hold them.
type AccessModel struct {
	privileges map[string]map[string]bool
}

// NewAccessModel builds a model from privilege -> roles pairs, as read from
// the access section of the configuration.
func NewAccessModel(access map[string][]string) *AccessModel {
	m := &AccessModel{privileges: map[string]map[string]bool{}}
	for privilege, roles := range access {
		set := map[string]bool{}
		for _, role := range roles {
			set[role] = true
		}
		m.privileges[privilege] = set
	}
	return m
}

// HavePrivilege reports whether any of roles grants privilege.
func (m *AccessModel) HavePrivilege(privilege string, roles []string) bool {
	set := m.privileges[privilege]
	for _, role := range roles {
		if set[role] {
			return true
		}
	}
	return false
}

// Privileges lists every privilege roles hold, sorted.
func (m *AccessModel) Privileges(roles []string) []string {
	out := []string{}
	for privilege := range m.privileges {
		if m.HavePrivilege(privilege, roles) {
			out = append(out, privilege)
		}
	}
	sort.Strings(out)
	return out
}

// ParseRoles extracts role words from the roles header. A missing header or
// the literal "(null)" yields RoleNobody.
func ParseRoles(header string) []string {
	if header == "" || header == "(null)" {
		return []string{RoleNobody}
	}
	roles := roleWord.FindAllString(header, -1)
	if len(roles) == 0 {
		return []string{RoleNobody}
	}
	return roles
}

// User identifies the person behind a request.
type User struct {
	ID    int
	Name  string
	Roles []string
}

// UserFromRequest reads the proxy headers. Unknown users are "Someone" with
// ID 0.
func UserFromRequest(r *http.Request) User {
	u := User{Name: "Someone", Roles: ParseRoles(r.Header.Get(HeaderRoles))}

	if id, err := strconv.Atoi(r.Header.Get(HeaderUserID)); err == nil {
		u.ID = id
	}
	if name := r.Header.Get(HeaderFullName); name != "" {
		u.Name = DecodeHeader(name)
	}
	return u
}

// DecodeHeader returns header values that are valid UTF-8 unchanged and
// reads anything else as ISO-8859-1.
func DecodeHeader(v string) string {
	if utf8.ValidString(v) {
		return v
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(v)
	if err != nil {
		return v
	}
	return decoded
}
