// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package commands

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/techlib/wifinator/aruba"
)

func essidStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "essid-stats",
		Short: "Output CSV-formatted ESSID user counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return countCommand(cmd, opts, "essid", controller.ESSIDStats)
		},
	}
}

func apStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ap-stats",
		Short: "Output CSV-formatted access point user counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return countCommand(cmd, opts, "ap", controller.APStats)
		},
	}
}

func stationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "Output full CSV-formatted station listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect(cmd.Context(), opts)
			if err != nil {
				return err
			}
			stations, err := c.ListStations(cmd.Context())
			if err != nil {
				return err
			}
			return writeStations(cmd.OutOrStdout(), stations)
		},
	}
}

func countCommand(cmd *cobra.Command, opts *options, column string, stats func(controller, context.Context) (map[string]int, error)) error {
	c, err := connect(cmd.Context(), opts)
	if err != nil {
		return err
	}
	counts, err := stats(c, cmd.Context())
	if err != nil {
		return err
	}
	return writeCounts(cmd.OutOrStdout(), column, counts)
}

// writeCounts writes count,<column> rows, largest count first.
func writeCounts(w io.Writer, column string, counts map[string]int) error {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	out := csv.NewWriter(w)
	out.Write([]string{"count", column})
	for _, k := range keys {
		out.Write([]string{strconv.Itoa(counts[k]), k})
	}
	out.Flush()
	return out.Error()
}

// writeStations writes one row per station, ordered by MAC address.
func writeStations(w io.Writer, stations map[string]aruba.Station) error {
	macs := make([]string, 0, len(stations))
	for mac := range stations {
		macs = append(macs, mac)
	}
	sort.Strings(macs)

	out := csv.NewWriter(w)
	out.Write(aruba.StationColumns)
	for _, mac := range macs {
		out.Write(stations[mac].Record())
	}
	out.Flush()
	return out.Error()
}
