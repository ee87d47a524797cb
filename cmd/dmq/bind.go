package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bindCmd = &cobra.Command{
	Use:   "bind <options.yaml>",
	Short: "Print the bind values an executor would receive, in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := buildFromFile("bind", args[0])
		if err != nil {
			return err
		}
		for _, value := range q.BindValues() {
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
		}
		return nil
	},
}
