// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package aruba

import (
	"context"
	"fmt"
)

// Profile is an SSID profile configured on the controller.
type Profile struct {
	Name   string
	SSID   string
	Active bool
}

// Station is a client associated to an access point.
type Station struct {
	MAC     string `json:"mac"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Age     string `json:"age"`
	Auth    string `json:"auth"`
	AP      string `json:"ap"`
	ESSID   string `json:"essid"`
	Phy     string `json:"phy"`
	Remote  string `json:"remote"`
	Profile string `json:"profile"`
}

// StationColumns is the column order of the station table.
var StationColumns = []string{"mac", "name", "role", "age", "auth", "ap", "essid", "phy", "remote", "profile"}

// Record returns the station as a row in StationColumns order.
func (s Station) Record() []string {
	return []string{s.MAC, s.Name, s.Role, s.Age, s.Auth, s.AP, s.ESSID, s.Phy, s.Remote, s.Profile}
}

// ListProfiles returns SSID profiles keyed by profile name.
func (c *Client) ListProfiles(ctx context.Context) (map[string]Profile, error) {
	names, err := c.RequestDict(ctx, "show wlan ssid-profile")
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make(map[string]Profile, len(names))
	for name := range names {
		detail, err := c.RequestDict(ctx, "show wlan ssid-profile "+name)
		if err != nil {
			return nil, fmt.Errorf("show profile %s: %w", name, err)
		}
		profiles[name] = Profile{
			Name:   name,
			SSID:   detail["ESSID"],
			Active: detail["SSID enable"] == "Enabled",
		}
	}
	return profiles, nil
}

// ListStations returns associated clients keyed by MAC address.
func (c *Client) ListStations(ctx context.Context) (map[string]Station, error) {
	rows, err := c.RequestTable(ctx, "show station-table")
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}

	stations := make(map[string]Station, len(rows))
	for _, r := range rows {
		if len(r) < len(StationColumns) {
			continue
		}
		stations[r[0]] = Station{
			MAC:     r[0],
			Name:    r[1],
			Role:    r[2],
			Age:     r[3],
			Auth:    r[4],
			AP:      r[5],
			ESSID:   r[6],
			Phy:     r[7],
			Remote:  r[8],
			Profile: r[9],
		}
	}
	return stations, nil
}

// ESSIDStats counts stations per ESSID.
func (c *Client) ESSIDStats(ctx context.Context) (map[string]int, error) {
	return c.countStations(ctx, func(s Station) string { return s.ESSID })
}

// APStats counts stations per access point.
func (c *Client) APStats(ctx context.Context) (map[string]int, error) {
	return c.countStations(ctx, func(s Station) string { return s.AP })
}

func (c *Client) countStations(ctx context.Context, key func(Station) string) (map[string]int, error) {
	stations, err := c.ListStations(ctx)
	if err != nil {
		return nil, err
	}

	stats := map[string]int{}
	for _, s := range stations {
		stats[key(s)]++
	}
	return stats, nil
}

// EditProfile sets the SSID and plain-text passphrase of a profile and
// enables or disables its broadcast.
func (c *Client) EditProfile(ctx context.Context, profile, ssid, psk string, active bool) error {
	commands := []string{
		fmt.Sprintf("wlan ssid-profile %s essid %s", profile, ssid),
		fmt.Sprintf("wlan ssid-profile %s wpa-passphrase %s", profile, psk),
	}
	if active {
		commands = append(commands, fmt.Sprintf("wlan ssid-profile %s ssid-enable", profile))
	} else {
		commands = append(commands, fmt.Sprintf("wlan ssid-profile %s no ssid-enable", profile))
	}

	for _, cmd := range commands {
		if _, err := c.Request(ctx, cmd); err != nil {
			return fmt.Errorf("edit profile %s: %w", profile, err)
		}
	}
	return nil
}
