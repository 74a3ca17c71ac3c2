// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package commands

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/techlib/wifinator/db"
)

func locationCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage access point locations",
	}
	cmd.AddCommand(locationListCmd(opts), locationSetCmd(opts))
	return cmd
}

func locationListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Output CSV-formatted access point locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(cmd, opts)
			if err != nil {
				return err
			}
			defer conn.Close()

			locations, err := db.Locations(cmd.Context(), conn)
			if err != nil {
				return err
			}

			aps := make([]string, 0, len(locations))
			for ap := range locations {
				aps = append(aps, ap)
			}
			sort.Strings(aps)

			out := csv.NewWriter(cmd.OutOrStdout())
			out.Write([]string{"ap", "location"})
			for _, ap := range aps {
				out.Write([]string{ap, locations[ap]})
			}
			out.Flush()
			return out.Error()
		},
	}
}

func locationSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set AP LOCATION",
		Short: "Assign an access point to a location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB(cmd, opts)
			if err != nil {
				return err
			}
			defer conn.Close()

			return db.SetLocation(cmd.Context(), conn, args[0], args[1])
		},
	}
}

func openDB(cmd *cobra.Command, opts *options) (*sql.DB, error) {
	if opts.cfg.DatabaseURL == "" {
		return nil, errors.New("database URL required (database.url or DATABASE_URL env)")
	}
	conn, err := db.Open(cmd.Context(), opts.cfg.DatabaseType, opts.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
