package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <options.yaml>",
	Short: "Build a descriptor from an option file and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := buildFromFile("build", args[0])
		if err != nil {
			return err
		}
		slog.Default().Info("descriptor built", "model", q.Model().Name, "conditions", len(q.Conditions()))
		fmt.Fprintln(cmd.OutOrStdout(), q)
		return nil
	},
}
