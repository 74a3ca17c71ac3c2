// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/techlib/wifinator/aruba"
	"github.com/techlib/wifinator/cliparse"
)

const version = "0.1.0"

// controller is what the station commands need from the wireless controller.
type controller interface {
	Login(ctx context.Context) error
	ListStations(ctx context.Context) (map[string]aruba.Station, error)
	ESSIDStats(ctx context.Context) (map[string]int, error)
	APStats(ctx context.Context) (map[string]int, error)
}

// newController is replaced in tests.
var newController = func(cfg cliparse.Config) (controller, error) {
	return aruba.New(aruba.Options{
		Address:   cfg.Aruba.Address,
		Username:  cfg.Aruba.Username,
		Password:  cfg.Aruba.Password,
		VerifyTLS: cfg.Aruba.VerifyTLS,
	})
}

type options struct {
	configPath string
	cfg        cliparse.Config
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "wifinatorctl",
		Short: "Wifinator command-line client utility",
		Long: `Wifinator command-line client utility.

Queries the wireless controller for connected devices and their users,
manages access point locations and tries out the date range pickers.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (default "+cliparse.DefaultConfigPath+")")

	root.AddCommand(
		essidStatsCmd(opts),
		apStatsCmd(opts),
		stationsCmd(opts),
		locationCmd(opts),
		rangeCmd(),
	)
	return root
}

// connect creates a controller client and logs in.
func connect(ctx context.Context, opts *options) (controller, error) {
	c, err := newController(opts.cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
