// Copyright (c) 2025 NTK.
// Licensed under the MIT License. See LICENSE.

package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techlib/wifinator/daterange"
)

func rangeCmd() *cobra.Command {
	var today, start, stop string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Pick a date range interactively",
		Long: `Pick a date range the way the web form does.

Reads commands from standard input, one per line:

  start YYYY-MM-DD   select the first day
  stop YYYY-MM-DD    select the last day
  show               print the current range
  quit               stop reading

Days that the pickers disable are refused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := daterange.Today()
			if today != "" {
				d, err := daterange.Parse(today)
				if err != nil {
					return err
				}
				day = d
			}

			state := daterange.NewRangeState(day)
			if start != "" {
				d, err := daterange.Parse(start)
				if err != nil {
					return err
				}
				state.Start = d
			}
			if stop != "" {
				d, err := daterange.Parse(stop)
				if err != nil {
					return err
				}
				state.Stop = d
			}

			return runRange(cmd.InOrStdin(), cmd.OutOrStdout(), day, state)
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "override the current day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "initial first day")
	cmd.Flags().StringVar(&stop, "stop", "", "initial last day")
	return cmd
}

func runRange(in io.Reader, out io.Writer, today daterange.Date, state *daterange.RangeState) error {
	startField := daterange.NewField("start", state.Start)
	stopField := daterange.NewField("stop", state.Stop)
	c := daterange.NewCoordinator(today, state, startField, stopField)

	show := func() {
		s := c.State()
		fmt.Fprintf(out, "%s .. %s (%d days, %s)\n", s.Start, s.Stop, s.Days(), c.Phase())
	}

	show()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "show":
			show()
			continue
		case "start", "stop":
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
			continue
		}

		if len(fields) != 2 {
			fmt.Fprintf(out, "usage: %s YYYY-MM-DD\n", fields[0])
			continue
		}
		d, err := daterange.Parse(fields[1])
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		field := startField
		if fields[0] == "stop" {
			field = stopField
		}
		field.Open()
		if !field.Select(d) {
			field.Blur()
			fmt.Fprintf(out, "%s is not selectable as %s day\n", d, fields[0])
			continue
		}
		show()
	}
	return scanner.Err()
}
