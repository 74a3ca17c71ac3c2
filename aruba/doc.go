// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package aruba is a small client for the web management interface of an Aruba
wireless controller.

# Session

The controller authenticates with a form login and a SESSION cookie. Every
command request repeats the cookie value in the UIDARUBA query parameter:

	c, err := aruba.New(aruba.Options{
		Address:  "aruba.example.org",
		Username: "admin",
		Password: "secret",
	})
	if err := c.Login(ctx); err != nil {
		return err
	}

Login first probes "show roleinfo" and skips the form when the current
session is still valid.

# Commands

Commands are plain CLI strings. Responses are XML documents holding a
single <t> table whose first row is the header:

	rows, err := c.RequestTable(ctx, "show station-table")
	dict, err := c.RequestDict(ctx, "show wlan ssid-profile adhoc-1")

ListProfiles, ListStations and EditProfile wrap the commands the sync
manager needs. ESSIDStats and APStats count connected stations.
*/
package aruba
