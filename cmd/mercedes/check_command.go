package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercedes/internal/artifact"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var lastModified int64

	cmd := &cobra.Command{
		Use:   "check <groupId> <artifactId> [version]",
		Short: "Run one skip decision, including its bookkeeping write",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := artifact.Key{GroupID: args[0], ArtifactID: args[1]}
			if len(args) == 3 {
				key.Version = args[2]
			}

			checker, err := ctx.checker()
			if err != nil {
				return err
			}

			decision, err := checker.Evaluate(lastModified, key)
			if err != nil {
				return err
			}

			verdict := "perform remote check"
			if decision.Skip {
				verdict = "skip remote check"
			}
			rows := [][]string{
				{"Artifact", key.Coordinates()},
				{"Verdict", verdict},
				{"Reason", string(decision.Reason)},
				{"Daemon record", formatRecord(decision.DaemonRecord)},
				{"Check record", formatRecord(decision.CheckRecord)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, ctx.plain()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&lastModified, "last-modified", 0, "Client's last-known modification time in epoch milliseconds")
	return cmd
}
