// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package auth provides role-based access control for requests authenticated
by a reverse proxy.

# Identity

The proxy in front of the service sets three headers:

  - X-Roles: role names, any non-word characters separate them
  - X-User-Id: numeric user ID
  - X-Full-Name: display name, UTF-8 or ISO-8859-1

	user := auth.UserFromRequest(r)

A request without roles (or with the literal "(null)") gets the single role
"impotent", which no sane configuration grants anything to.

# Access Model

The access model maps privileges to roles:

	access := auth.NewAccessModel(map[string][]string{
		"user":  {"staff", "wifi_admin"},
		"admin": {"wifi_admin"},
	})
	ok := access.HavePrivilege("admin", user.Roles)

Privileges are not hierarchical: grant "user" to admin roles explicitly.
*/
package auth
