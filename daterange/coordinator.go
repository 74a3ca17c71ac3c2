// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package daterange

import "log/slog"

// Phase is the step of the start-then-stop flow.
type Phase int

const (
	AwaitingStart Phase = iota
	AwaitingStop
)

func (p Phase) String() string {
	switch p {
	case AwaitingStart:
		return "awaiting-start"
	case AwaitingStop:
		return "awaiting-stop"
	default:
		return "unknown"
	}
}

// RangeState is the pair of days being edited. Start never exceeds Stop.
type RangeState struct {
	Start Date
	Stop  Date
}

// NewRangeState returns a state with both ends on today.
func NewRangeState(today Date) *RangeState {
	return &RangeState{Start: today, Stop: today}
}

// Coordinator keeps a start picker and a stop picker consistent.
//
// Start days before today are disabled, stop days before the current start
// are disabled, and picking a start after the current stop drags the stop
// along. All handlers run on the caller's goroutine; the coordinator is not
// safe for concurrent use, just like the widgets it drives.
type Coordinator struct {
	today Date
	state *RangeState
	phase Phase
	start Picker
	stop  Picker
}

// NewCoordinator wires the two pickers to state. A nil state starts both ends
// on today; a state violating Start <= Stop is repaired by moving Stop.
func NewCoordinator(today Date, state *RangeState, start, stop Picker) *Coordinator {
	if state == nil {
		state = NewRangeState(today)
	}
	if state.Stop.Before(state.Start) {
		state.Stop = state.Start
	}

	c := &Coordinator{
		today: today,
		state: state,
		phase: AwaitingStart,
		start: start,
		stop:  stop,
	}

	start.SetSelectable(c.IsStartDateSelectable)
	stop.SetSelectable(c.IsStopDateSelectable)
	start.OnChange(func(d Date) { c.OnStartChanged(d) })
	stop.OnChange(func(d Date) { c.OnStopChanged(d) })

	start.SetValue(state.Start)
	stop.SetValue(state.Stop)
	return c
}

func (c *Coordinator) State() RangeState { return *c.state }
func (c *Coordinator) Phase() Phase      { return c.phase }
func (c *Coordinator) Today() Date       { return c.today }

// IsStartDateSelectable reports whether d may be picked as the first day.
func (c *Coordinator) IsStartDateSelectable(d Date) bool {
	return StartSelectable(c.today, d)
}

// IsStopDateSelectable reports whether d may be picked as the last day given
// the current start.
func (c *Coordinator) IsStopDateSelectable(d Date) bool {
	return StopSelectable(c.state.Start, d)
}

// OnStartChanged applies a start selection. It returns false when d is a
// disabled day, in which case nothing changes.
func (c *Coordinator) OnStartChanged(d Date) bool {
	if !c.IsStartDateSelectable(d) {
		slog.Debug("start day rejected", "day", d, "today", c.today)
		c.start.SetValue(c.state.Start)
		return false
	}

	c.state.Start = d
	if d.After(c.state.Stop) {
		c.state.Stop = d
		c.stop.SetValue(d)
	} else {
		// Re-render so days before the new start become disabled.
		c.stop.Fill()
	}

	c.start.Hide()
	c.stop.Focus()
	c.phase = AwaitingStop
	return true
}

// OnStopChanged applies a stop selection. Start is never adjusted; a stop
// before start is rejected and returns false.
func (c *Coordinator) OnStopChanged(d Date) bool {
	if !c.IsStopDateSelectable(d) {
		slog.Debug("stop day rejected", "day", d, "start", c.state.Start)
		c.stop.SetValue(c.state.Stop)
		return false
	}

	c.state.Stop = d
	c.stop.Hide()
	return true
}

// StartSelectable is the start predicate for a given today.
func StartSelectable(today, d Date) bool {
	return !d.Before(today)
}

// StopSelectable is the stop predicate for a given start.
func StopSelectable(start, d Date) bool {
	return !d.Before(start)
}
