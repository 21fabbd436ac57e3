package main

import "github.com/spf13/cobra"

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStats(cmd.OutOrStdout(), a.tasks.Stats())
		},
	}
}
