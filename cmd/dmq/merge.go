package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <base.yaml> <other.yaml>",
	Short: "Merge two option files for the same model and print the result",
	Long: `Builds a descriptor from each option file and combines them under the
conflict-resolution rules: boolean flags stick once set, bounds keep their
more permissive value, in-set and not conditions union, equality and like
conditions are overwritten by the second file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := buildFromFile("merge", args[0])
		if err != nil {
			return err
		}
		other, err := buildFromFile("merge", args[1])
		if err != nil {
			return err
		}

		merged, err := base.Merge(other)
		if err != nil {
			return &CLIError{Operation: "merge", Cause: err.Error(), Underlying: err}
		}
		slog.Default().Info("descriptors merged",
			"model", merged.Model().Name,
			"conditions", len(merged.Conditions()),
		)
		fmt.Fprintln(cmd.OutOrStdout(), merged)
		return nil
	},
}
