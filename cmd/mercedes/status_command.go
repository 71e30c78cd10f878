package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's last reported state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ctx.daemonStatus()
			if err != nil {
				return err
			}
			lay, err := ctx.layoutValue()
			if err != nil {
				return err
			}

			now := time.Now()
			rows := [][]string{
				{"Health", status.Health().String()},
				{"Last update success", formatRecorded(status.LastUpdateSuccess, status.SuccessRecorded)},
				{"Last update time", formatMillis(status.LastUpdateTime)},
				{"Report age", formatAge(status.LastUpdateTime, now)},
				{"Recently updated", fmt.Sprintf("%t", status.RecentlyUpdated)},
				{"Status file", lay.StatusPath()},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, ctx.plain()))
			return nil
		},
	}
}
