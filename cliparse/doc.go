// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings of the daemon:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Load builds the same Config without flags, for the command-line client:

	cfg, err := cliparse.Load(path)

# Sources

Later sources override earlier ones:

 1. built-in defaults (Default)
 2. the configuration file: -c, WIFINATOR_CONFIG or /etc/ntk/wifinator.toml
 3. environment variables, including a .env file in the working directory
 4. CLI flags

The configuration file is TOML unless its name ends in .yaml or .yml:

	[http]
	host = "localhost"
	port = 5000

	[database]
	type = "postgres"
	url = "postgres://wifinator@localhost/wifinator"

	[aruba]
	address = "aruba.example.org"
	username = "admin"
	password = "secret"
	profile-prefix = "adhoc-"

	[sync]
	interval = "5m"

	[access]
	user = ["staff", "wifi_admin"]
	admin = ["wifi_admin"]

# Environment Variables

	PORT, HOST, DEBUG
	DATABASE_URL, DATABASE_TYPE
	ARUBA_ADDRESS, ARUBA_USERNAME, ARUBA_PASSWORD, ARUBA_PROFILE_PREFIX
	SYNC_INTERVAL

# CLI Flags

	-c              Configuration file
	-p              Server port
	-host           Server host
	-d              Database URL
	-t              Database type (sqlite or postgres)
	-debug          Enable debug logging
	-sync-interval  Controller synchronization interval

# Validation

ParseFlags returns an error if the database URL or the controller address
is missing, or the sync interval is not positive.
*/
package cliparse
