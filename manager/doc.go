// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

/*
Package manager keeps the wireless controller in step with the profile
database.

# Profile Pool

The controller holds a fixed pool of SSID profiles whose names start with a
configured prefix (adhoc- by default). Profiles outside the prefix are
foreign: they are never modified and their SSIDs are never handed out, so
an event network cannot shadow a permanent one.

# Synchronization

Sync loads the profiles active today and walks the pool in name order:

  - a profile already broadcasting a wanted SSID is kept, and re-enabled
    when inactive or when its SSID is forced
  - any other profile is renamed back to its own name with a placeholder
    passphrase and disabled
  - wanted SSIDs still without a profile take the free ones in order

Forcing is used right after an edit so that a new passphrase reaches the
controller even though the SSID is already on the air.

# Scheduling

Run performs a Sync every interval. ScheduleSync requests an extra run
without blocking; requests that arrive while a run is pending are merged:

	m := manager.New(db.NewProfileStore(conn), client, "adhoc-", 5*time.Minute)
	go m.Run(ctx)
	m.ScheduleSync("conference")
*/
package manager
