// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package daterange

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr error
	}{
		{"2024-03-10", New(2024, time.March, 10), nil},
		{"2024/03/10", New(2024, time.March, 10), nil},
		{"2024-3-9", New(2024, time.March, 9), nil},
		{"2024/12-31", New(2024, time.December, 31), nil},
		{" 2024-02-29 ", New(2024, time.February, 29), nil},
		{"2024-02-30", Date{}, ErrCalendar},
		{"2023-02-29", Date{}, ErrCalendar},
		{"2024-04-31", Date{}, ErrCalendar},
		{"2024-13-01", Date{}, ErrFormat},
		{"2024-00-10", Date{}, ErrFormat},
		{"24-03-10", Date{}, ErrFormat},
		{"2024.03.10", Date{}, ErrFormat},
		{"", Date{}, ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareIgnoresTimeOfDay(t *testing.T) {
	morning := FromTime(time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC))
	evening := FromTime(time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, 0, morning.Compare(evening))
	assert.True(t, morning.Before(MustParse("2024-03-11")))
	assert.True(t, MustParse("2025-01-01").After(MustParse("2024-12-31")))
	assert.Equal(t, 1, MustParse("2024-03-01").Ordinal()-MustParse("2024-02-29").Ordinal())
}

func TestAddDaysCrossesMonths(t *testing.T) {
	assert.Equal(t, MustParse("2024-03-01"), MustParse("2024-02-28").AddDays(2))
	assert.Equal(t, MustParse("2023-12-31"), MustParse("2024-01-01").AddDays(-1))
}

func TestJSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		Stop  Date `json:"stop"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024/3/10","stop":""}`), &payload))
	assert.Equal(t, MustParse("2024-03-10"), payload.Start)
	assert.True(t, payload.Stop.IsZero())

	out, err := json.Marshal(payload.Start)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-10"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"2024-02-30"}`), &payload))
}

func TestScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-03-10"))
	assert.Equal(t, MustParse("2024-03-10"), d)

	require.NoError(t, d.Scan([]byte("2024-03-11")))
	assert.Equal(t, MustParse("2024-03-11"), d)

	require.NoError(t, d.Scan(time.Date(2024, 3, 12, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParse("2024-03-12"), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := MustParse("2024-03-10").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", v)
}

func TestCheck(t *testing.T) {
	today := MustParse("2024-03-10")

	assert.NoError(t, Check(today, RangeState{Start: today, Stop: today}))
	assert.ErrorIs(t, Check(today, RangeState{Start: MustParse("2024-03-09"), Stop: today}), ErrStartInPast)
	assert.ErrorIs(t, Check(today, RangeState{Start: MustParse("2024-03-12"), Stop: MustParse("2024-03-11")}), ErrStopBeforeStart)
	assert.NoError(t, Check(Date{}, RangeState{Start: MustParse("2024-01-01"), Stop: MustParse("2024-01-02")}))
}

func TestMonthDays(t *testing.T) {
	first, err := ParseMonth("2024-02")
	require.NoError(t, err)

	days := MonthDays(first, MustParse("2024-02-10"), MustParse("2024-02-20"))
	require.Len(t, days, 29)

	assert.Equal(t, MustParse("2024-02-01"), days[0].Date)
	assert.Equal(t, "Thu", days[0].Weekday)
	assert.False(t, days[8].StartSelectable)
	assert.True(t, days[9].StartSelectable)
	assert.False(t, days[18].StopSelectable)
	assert.True(t, days[19].StopSelectable)

	_, err = ParseMonth("2024-2-1")
	assert.ErrorIs(t, err, ErrMonthFormat)
}

func TestRangeContains(t *testing.T) {
	r := RangeState{Start: MustParse("2024-03-10"), Stop: MustParse("2024-03-12")}

	assert.True(t, r.Contains(MustParse("2024-03-10")))
	assert.True(t, r.Contains(MustParse("2024-03-12")))
	assert.False(t, r.Contains(MustParse("2024-03-13")))
	assert.Equal(t, 3, r.Days())
}
