package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercedes/internal/artifact"
	"mercedes/internal/logging"
	"mercedes/internal/record"
)

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "records <groupId> <artifactId> [version]",
		Short: "Inspect the artifact's freshness records without writing anything",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := artifact.Key{GroupID: args[0], ArtifactID: args[1]}
			if len(args) == 3 {
				key.Version = args[2]
			}

			lay, err := ctx.layoutValue()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "record")

			daemonRecord := record.Load(lay.ArtifactInfoPath(key), logger)
			checkRecord := record.Load(lay.UpdateInfoPath(key), logger)

			rows := [][]string{
				{"Daemon record", formatRecord(daemonRecord), lay.ArtifactInfoPath(key)},
				{"Check record", formatRecord(checkRecord), lay.UpdateInfoPath(key)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Record", "State", "Path"}, rows, ctx.plain()))
			return nil
		},
	}
}
