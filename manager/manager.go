// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/techlib/wifinator/aruba"
	"github.com/techlib/wifinator/daterange"
	"github.com/techlib/wifinator/models"
)

// PlaceholderPSK is set on profiles that are taken off the air.
const PlaceholderPSK = "xxx"

// DefaultInterval is the period between unsolicited synchronizations.
const DefaultInterval = 5 * time.Minute

// Store returns the profiles that should be on the air on a given day.
type Store interface {
	ActiveProfiles(ctx context.Context, day daterange.Date) ([]models.Profile, error)
}

// Controller is the part of the wireless controller the manager drives.
type Controller interface {
	Login(ctx context.Context) error
	ListProfiles(ctx context.Context) (map[string]aruba.Profile, error)
	EditProfile(ctx context.Context, profile, ssid, psk string, active bool) error
}

// Edit is one reconfiguration of a controller profile.
type Edit struct {
	Profile string
	SSID    string
	PSK     string
	Active  bool
}

// Report summarizes a synchronization run.
type Report struct {
	Edits []Edit
	// SSIDs already broadcast by a profile outside the managed prefix
	Conflicts []string
	// SSIDs left off the air because no managed profile was free
	Unassigned []string
}

type Manager struct {
	store      Store
	controller Controller
	prefix     string
	interval   time.Duration
	today      func() daterange.Date

	// serializes Sync
	syncMu sync.Mutex

	mu      sync.Mutex
	pending bool
	force   map[string]struct{}
	wake    chan struct{}
}

// New creates a manager for profiles whose name starts with prefix.
// A zero interval means DefaultInterval.
func New(store Store, controller Controller, prefix string, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{
		store:      store,
		controller: controller,
		prefix:     prefix,
		interval:   interval,
		today:      daterange.Today,
		force:      map[string]struct{}{},
		wake:       make(chan struct{}, 1),
	}
}

// SetClock replaces the source of the current day.
func (m *Manager) SetClock(today func() daterange.Date) {
	m.today = today
}

// Sync reconfigures the controller to broadcast exactly the profiles active
// today. SSIDs listed in force are rewritten even when already on the air.
func (m *Manager) Sync(ctx context.Context, force ...string) (Report, error) {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	var report Report
	today := m.today()

	slog.Info("starting synchronization", "day", today)

	active, err := m.store.ActiveProfiles(ctx, today)
	if err != nil {
		return report, fmt.Errorf("failed to load active profiles: %w", err)
	}
	desired := make(map[string]string, len(active))
	for _, p := range active {
		if _, dup := desired[p.SSID]; dup {
			slog.Warn("duplicate active SSID", "ssid", p.SSID, "profile_id", p.ID)
		}
		desired[p.SSID] = p.PSK
	}

	if err := m.controller.Login(ctx); err != nil {
		return report, fmt.Errorf("controller login: %w", err)
	}
	current, err := m.controller.ListProfiles(ctx)
	if err != nil {
		return report, err
	}

	forced := make(map[string]bool, len(force))
	for _, ssid := range force {
		forced[ssid] = true
	}

	foreign := map[string]bool{}
	var managed []aruba.Profile
	for _, name := range sortedKeys(current) {
		p := current[name]
		if !strings.HasPrefix(name, m.prefix) {
			foreign[p.SSID] = true
			continue
		}
		managed = append(managed, p)
	}

	edit := func(profile, ssid, psk string, on bool) error {
		slog.Info("edit profile", "profile", profile, "ssid", ssid, "active", on)
		if err := m.controller.EditProfile(ctx, profile, ssid, psk, on); err != nil {
			return err
		}
		report.Edits = append(report.Edits, Edit{Profile: profile, SSID: ssid, PSK: psk, Active: on})
		return nil
	}

	var free []string
	for _, p := range managed {
		psk, wanted := desired[p.SSID]
		switch {
		case wanted:
			if !p.Active || forced[p.SSID] {
				if err := edit(p.Name, p.SSID, psk, true); err != nil {
					return report, err
				}
			}
			delete(desired, p.SSID)
			continue

		case p.SSID == p.Name:
			if p.Active {
				if err := edit(p.Name, p.Name, PlaceholderPSK, false); err != nil {
					return report, err
				}
			}

		default:
			if err := edit(p.Name, p.Name, PlaceholderPSK, false); err != nil {
				return report, err
			}
		}
		free = append(free, p.Name)
	}

	for _, ssid := range sortedKeys(desired) {
		if foreign[ssid] {
			slog.Warn("conflicting SSID", "ssid", ssid)
			report.Conflicts = append(report.Conflicts, ssid)
			continue
		}
		if len(free) == 0 {
			slog.Error("no free profile left", "ssid", ssid, "prefix", m.prefix)
			report.Unassigned = append(report.Unassigned, ssid)
			continue
		}

		name := free[0]
		free = free[1:]
		if err := edit(name, ssid, desired[ssid], true); err != nil {
			return report, err
		}
	}

	slog.Info("synchronization finished", "edits", len(report.Edits))
	return report, nil
}

// ScheduleSync asks Run to synchronize soon. It never blocks; requests made
// before Run picks them up are merged into one run.
func (m *Manager) ScheduleSync(force ...string) {
	m.mu.Lock()
	m.pending = true
	for _, ssid := range force {
		m.force[ssid] = struct{}{}
	}
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// takePending returns the merged force set of the outstanding requests.
func (m *Manager) takePending() ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.pending {
		return nil, false
	}
	force := sortedKeys(m.force)
	m.pending = false
	clear(m.force)
	return force, true
}

// Run synchronizes every interval and whenever ScheduleSync is called, until
// ctx is cancelled. Failed runs are logged and retried on the next tick.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// catch up with the controller right away
	m.ScheduleSync()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.runOnce(ctx, nil)
		case <-m.wake:
			if force, ok := m.takePending(); ok {
				m.runOnce(ctx, force)
			}
		}
	}
}

func (m *Manager) runOnce(ctx context.Context, force []string) {
	if _, err := m.Sync(ctx, force...); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.Error("synchronization failed", "error", err)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
